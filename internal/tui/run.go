package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Run loads the ledger once, runs the interactive program until the user
// quits and returns the final state. Every transition is saved in the
// background; the final state is saved once more on exit because bubbletea
// drops commands still in flight when it quits.
func Run(ctx context.Context, persister service.Persister, opts ...Option) (ledger.State, error) {
	state := ledger.New()
	if persister != nil {
		state = persister.Load(ctx)
	}

	opts = append([]Option{WithPersister(persister)}, opts...)
	m := NewModel(state, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if m.config.Input != nil {
		programOpts = append(programOpts, tea.WithInput(m.config.Input))
	}
	if m.config.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(m.config.Output))
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		return state, fmt.Errorf("TUI error: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return state, fmt.Errorf("unexpected model type %T", final)
	}

	if persister != nil && fm.Revision() > 0 {
		if err := persister.Save(context.WithoutCancel(ctx), fm.Revision(), fm.State()); err != nil {
			common.LogWarn(err, "Final save failed", common.Fields{"revision": fm.Revision()})
		}
	}

	common.LogDebug("TUI exited", common.Fields{
		"entries":  fm.State().EntryCount(),
		"revision": fm.Revision(),
	})
	return fm.State(), nil
}
