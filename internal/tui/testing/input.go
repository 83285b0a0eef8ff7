// Package testing provides key constructors and output helpers for driving
// bubbletea models in tests.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

func key(t tea.KeyType) func() tea.KeyMsg {
	return func() tea.KeyMsg { return tea.KeyMsg{Type: t} }
}

// Special keys used by the ledger key map.
var (
	KeyUp        = key(tea.KeyUp)
	KeyDown      = key(tea.KeyDown)
	KeyLeft      = key(tea.KeyLeft)
	KeyRight     = key(tea.KeyRight)
	KeyEnter     = key(tea.KeyEnter)
	KeyEsc       = key(tea.KeyEsc)
	KeyTab       = key(tea.KeyTab)
	KeyShiftTab  = key(tea.KeyShiftTab)
	KeyBackspace = key(tea.KeyBackspace)
	KeyCtrlC     = key(tea.KeyCtrlC)
)

// KeyPress creates a printable key message for s.
func KeyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// WindowSize creates a resize message.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}

// InputSequence is an ordered list of messages fed to a model.
type InputSequence struct {
	msgs []tea.Msg
}

// NewInputSequence starts a sequence with msgs.
func NewInputSequence(msgs ...tea.Msg) *InputSequence {
	return &InputSequence{msgs: msgs}
}

// Add appends msg to the sequence.
func (s *InputSequence) Add(msg tea.Msg) *InputSequence {
	s.msgs = append(s.msgs, msg)
	return s
}

// Type appends one key press per rune of text.
func (s *InputSequence) Type(text string) *InputSequence {
	for _, r := range text {
		s.msgs = append(s.msgs, KeyPress(string(r)))
	}
	return s
}

// Apply feeds every message to model and returns the resulting model with
// the non-nil commands it produced. Commands are not executed.
func (s *InputSequence) Apply(model tea.Model) (tea.Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range s.msgs {
		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return model, cmds
}
