package tui

import (
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/service"
	"github.com/Veraticus/dual-count/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea model for the ledger. It owns the current
// ledger.State and replaces it with the result of ledger.Transition on every
// user action.
type Model struct {
	persister   service.Persister
	theme       themes.Theme
	keymap      KeyMap
	help        help.Model
	leftInput   textinput.Model
	rightInput  textinput.Model
	rateInput   textinput.Model
	cellInput   textinput.Model
	config      Config
	state       ledger.State
	revision    uint64
	width       int
	height      int
	selectedRow int
	focus       focus
	selectedCol ledger.Column
	editing     bool
	quitting    bool
}

// NewModel creates a model showing state. Editing flags left behind by an
// earlier session are cleared.
func NewModel(state ledger.State, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := Model{
		config:     cfg,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		persister:  cfg.Persister,
		state:      state.ClearEditing(),
		width:      cfg.Width,
		height:     cfg.Height,
		leftInput:  newInput(cfg.LeftCurrency),
		rightInput: newInput(cfg.RightCurrency),
		rateInput:  newInput(cfg.LeftCurrency),
		cellInput:  newInput(""),
	}
	m.help.Width = cfg.Width
	m.rateInput.Width = 8
	m.rateInput.SetValue(ledger.FormatRate(state.Rate))
	m.syncDrafts()
	m.setFocus(focusLeftDraft)
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = themes.CellWidth
	return ti
}

// State returns the current ledger state.
func (m Model) State() ledger.State {
	return m.state
}

// Revision counts the transitions applied since the model was created.
func (m Model) Revision() uint64 {
	return m.revision
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m, cmd = m.updateFocusedInput(msg)
	return m, cmd
}

// handleKey routes a key to the global bindings first and then to the
// focused widget.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		if entry, ok := m.selectedEntry(); ok && m.editing {
			var persistCmd tea.Cmd
			m, persistCmd = m.stopEditing(entry.ID)
			return m, tea.Batch(persistCmd, tea.Quit)
		}
		return m, tea.Quit

	case m.editing:
		return m.handleCellKey(msg)

	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.NextPane):
		m.setFocus(m.nextFocus(1))
		return m, nil

	case key.Matches(msg, m.keymap.PrevPane):
		m.setFocus(m.nextFocus(-1))
		return m, nil
	}

	switch m.focus {
	case focusLeftDraft:
		return m.handleDraftKey(msg, ledger.Left)
	case focusRightDraft:
		return m.handleDraftKey(msg, ledger.Right)
	case focusRate:
		return m.handleRateKey(msg)
	default:
		return m.handleEntriesKey(msg)
	}
}

// handleDraftKey implements the draft fields: the confirm key adds the
// draft, any other key is a no-op that may also change the draft text.
func (m Model) handleDraftKey(msg tea.KeyMsg, column ledger.Column) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Confirm) {
		cmd := m.dispatch(ledger.Add{})
		m.selectedRow = len(m.state.Entries) - 1
		return m, cmd
	}

	input := m.draftInput(column)
	before := input.Value()
	updated, inputCmd := input.Update(msg)
	m.setDraftInput(column, updated)

	msgs := []ledger.Msg{ledger.Noop{}}
	if text := updated.Value(); text != before {
		msgs = append(msgs, ledger.UpdateDraft{Text: text, Column: column})
	}
	persistCmd := m.dispatch(msgs...)
	return m, tea.Batch(inputCmd, persistCmd)
}

func (m Model) handleRateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.rateInput.Value()
	var inputCmd tea.Cmd
	m.rateInput, inputCmd = m.rateInput.Update(msg)

	if text := m.rateInput.Value(); text != before {
		persistCmd := m.dispatch(ledger.UpdateRate{Text: text})
		return m, tea.Batch(inputCmd, persistCmd)
	}
	return m, inputCmd
}

func (m Model) handleEntriesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.selectedRow < len(m.state.Entries)-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keymap.Left):
		m.selectedCol = ledger.Left
	case key.Matches(msg, m.keymap.Right):
		m.selectedCol = ledger.Right
	case key.Matches(msg, m.keymap.Edit):
		return m.startEditing()
	}
	return m, nil
}

// startEditing opens the selected cell seeded with the value it displays.
func (m Model) startEditing() (Model, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}

	m.editing = true
	m.cellInput.SetValue(m.cellText(entry, m.selectedCol))
	m.cellInput.CursorEnd()
	focusCmd := m.cellInput.Focus()
	persistCmd := m.dispatch(ledger.EditEntry{ID: entry.ID, Editing: true})
	return m, tea.Batch(focusCmd, persistCmd)
}

func (m Model) handleCellKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	entry, ok := m.selectedEntry()
	if !ok {
		m.editing = false
		m.cellInput.Blur()
		return m, nil
	}

	if key.Matches(msg, m.keymap.Confirm, m.keymap.Cancel) {
		return m.stopEditing(entry.ID)
	}

	before := m.cellInput.Value()
	var inputCmd tea.Cmd
	m.cellInput, inputCmd = m.cellInput.Update(msg)

	if text := m.cellInput.Value(); text != before {
		persistCmd := m.dispatch(ledger.UpdateEntry{
			Text:   text,
			ID:     entry.ID,
			Column: m.selectedCol,
		})
		return m, tea.Batch(inputCmd, persistCmd)
	}
	return m, inputCmd
}

func (m Model) stopEditing(id uint64) (Model, tea.Cmd) {
	m.editing = false
	m.cellInput.Blur()
	m.cellInput.SetValue("")
	persistCmd := m.dispatch(ledger.EditEntry{ID: id, Editing: false})
	return m, persistCmd
}

// dispatch applies msgs in order and saves the resulting state once.
func (m *Model) dispatch(msgs ...ledger.Msg) tea.Cmd {
	for _, msg := range msgs {
		m.state = ledger.Transition(m.state, msg)
		m.revision++
	}
	m.syncDrafts()
	return saveCmd(m.persister, m.revision, m.state)
}

// syncDrafts shows the draft only in the field its column selects.
func (m *Model) syncDrafts() {
	for _, c := range []ledger.Column{ledger.Left, ledger.Right} {
		input := m.draftInput(c)
		if want := m.state.DraftFor(c); input.Value() != want {
			input.SetValue(want)
			m.setDraftInput(c, input)
		}
	}
}

func (m Model) draftInput(c ledger.Column) textinput.Model {
	if c == ledger.Left {
		return m.leftInput
	}
	return m.rightInput
}

func (m *Model) setDraftInput(c ledger.Column, input textinput.Model) {
	if c == ledger.Left {
		m.leftInput = input
	} else {
		m.rightInput = input
	}
}

// setFocus moves key input to f. Leaving the rate field resyncs it to the
// stored rate; leaving the entry list ends any edit.
func (m *Model) setFocus(f focus) {
	if m.focus == focusRate && f != focusRate {
		m.rateInput.SetValue(ledger.FormatRate(m.state.Rate))
	}

	m.leftInput.Blur()
	m.rightInput.Blur()
	m.rateInput.Blur()

	switch f {
	case focusLeftDraft:
		m.leftInput.Focus()
	case focusRightDraft:
		m.rightInput.Focus()
	case focusRate:
		m.rateInput.Focus()
		m.rateInput.CursorEnd()
	case focusEntries:
		if m.selectedRow >= len(m.state.Entries) {
			m.selectedRow = max(len(m.state.Entries)-1, 0)
		}
	}
	m.focus = f
}

// nextFocus walks the focus ring. The rate field only exists in the dual
// variant.
func (m Model) nextFocus(step int) focus {
	ring := []focus{focusLeftDraft, focusRightDraft, focusRate, focusEntries}
	if m.config.Variant == ledger.VariantCounter {
		ring = []focus{focusLeftDraft, focusRightDraft, focusEntries}
	}

	idx := 0
	for i, f := range ring {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(ring)) % len(ring)
	return ring[idx]
}

func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.editing:
		m.cellInput, cmd = m.cellInput.Update(msg)
	case m.focus == focusLeftDraft:
		m.leftInput, cmd = m.leftInput.Update(msg)
	case m.focus == focusRightDraft:
		m.rightInput, cmd = m.rightInput.Update(msg)
	case m.focus == focusRate:
		m.rateInput, cmd = m.rateInput.Update(msg)
	}
	return m, cmd
}

func (m Model) selectedEntry() (ledger.Entry, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.state.Entries) {
		return ledger.Entry{}, false
	}
	return m.state.Entries[m.selectedRow], true
}

// cellText is the text a cell displays: the converted amount in the dual
// variant, or the raw description in its own column for the counter variant.
func (m Model) cellText(e ledger.Entry, c ledger.Column) string {
	if m.config.Variant == ledger.VariantCounter {
		if e.Column == c {
			return e.Description
		}
		return ""
	}

	left, right := ledger.Convert(e, m.state.Rate)
	if c == ledger.Left {
		return ledger.FormatAmount(left)
	}
	return ledger.FormatAmount(right)
}
