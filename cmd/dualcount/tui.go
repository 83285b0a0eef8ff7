package main

import (
	"github.com/Veraticus/dual-count/internal/tui"
	"github.com/Veraticus/dual-count/internal/tui/themes"
	"github.com/spf13/cobra"
)

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	_, err = tui.Run(ctx, a.newPersister(store),
		tui.WithVariant(a.variant()),
		tui.WithCurrencies(a.cfg.UI.LeftCurrency, a.cfg.UI.RightCurrency),
		tui.WithTheme(themes.GetTheme(a.cfg.UI.Theme)),
		tui.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
	)
	return err
}
