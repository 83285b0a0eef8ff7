package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/dual-count/internal/cli"
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/ofx"
	"github.com/spf13/cobra"
)

func (a *app) resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over with an empty ledger",
		Long: `Reset replaces the ledger with an empty one at the default rate.

This cannot be undone unless a checkpoint was created first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !force {
				current, err := a.loadState(ctx)
				if err != nil {
					return err
				}
				if current.EntryCount() == 0 && current.PendingValue == "" && current.Rate == ledger.DefaultRate {
					writeLine(out, "Ledger is already empty. Nothing to reset.")
					return nil
				}

				writeLine(out, fmt.Sprintf("This will delete %d entries.", current.EntryCount()))
				ok, err := cli.NewPrompt(cmd.InOrStdin(), out).Confirm(ctx, "Are you sure you want to continue?")
				if err != nil {
					return err
				}
				if !ok {
					writeLine(out, "Reset canceled.")
					return nil
				}
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if _, err := a.mutateStore(ctx, store, func(ledger.State) (ledger.State, error) {
				return ledger.New(), nil
			}); err != nil {
				return err
			}
			if err := ofx.SaveImported(ctx, store, nil); err != nil {
				slog.Warn("Failed to clear import history", "error", err)
			}

			writeLine(out, cli.FormatSuccess("Ledger reset"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
