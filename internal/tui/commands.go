package tui

import (
	"context"

	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// saveCmd hands state to the persister off the event loop. Out-of-order
// completion is resolved by the persister using revision.
func saveCmd(p service.Persister, revision uint64, state ledger.State) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		err := p.Save(context.Background(), revision, state)
		return savedMsg{revision: revision, err: err}
	}
}
