package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/dual-count/internal/cli"
	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/spf13/cobra"
)

func (a *app) addCmd() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add an entry",
		Long: `Add an entry to one of the two columns. The amount is stored as typed;
text that is not a number counts as zero in every total.`,
		Example: `  dualcount add 12.50
  dualcount add --column right 88`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := ledger.ParseColumn(column)
			if err != nil {
				return common.NewUserError("invalid --column", err)
			}

			state, err := a.mutate(cmd.Context(), func(s ledger.State) (ledger.State, error) {
				pending := ledger.UpdateDraft{Text: s.PendingValue, Column: s.PendingColumn}
				return ledger.Apply(s,
					ledger.UpdateDraft{Text: args[0], Column: col},
					ledger.Add{},
					pending,
				), nil
			})
			if err != nil {
				return err
			}

			e := state.Entries[len(state.Entries)-1]
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Added entry %d: %s %s", e.ID, e.Description, a.currency(e.Column))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "left", "column to add to (left, right)")
	return cmd
}

func (a *app) setCmd() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "set <id> <amount>",
		Short: "Change an existing entry",
		Long: `Replace the amount of an entry. With --column the entry also moves to that
column; otherwise it keeps its current one.`,
		Example: `  dualcount set 3 14.25
  dualcount set 3 --column right 70`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("invalid entry id %q", args[0]), err)
			}

			var col ledger.Column
			moved := cmd.Flags().Changed("column")
			if moved {
				if col, err = ledger.ParseColumn(column); err != nil {
					return common.NewUserError("invalid --column", err)
				}
			}

			state, err := a.mutate(cmd.Context(), func(s ledger.State) (ledger.State, error) {
				e, ok := s.Find(id)
				if !ok {
					return s, common.NewUserError(fmt.Sprintf("no entry with id %d", id), common.ErrNotFound)
				}
				if !moved {
					col = e.Column
				}
				return ledger.Transition(s, ledger.UpdateEntry{ID: id, Column: col, Text: args[1]}), nil
			})
			if err != nil {
				return err
			}

			e, _ := state.Find(id)
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Updated entry %d: %s %s", e.ID, e.Description, a.currency(e.Column))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "left", "move the entry to this column (left, right)")
	return cmd
}

func (a *app) rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <rate>",
		Short: "Set the exchange rate",
		Long: fmt.Sprintf(`Set how many left-currency units one right-currency unit is worth.
Text that is not a number resets the rate to %s.`, ledger.FormatRate(ledger.DefaultRate)),
		Example: `  dualcount rate 5.12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.mutate(cmd.Context(), func(s ledger.State) (ledger.State, error) {
				return ledger.Transition(s, ledger.UpdateRate{Text: args[0]}), nil
			})
			if err != nil {
				return err
			}

			if _, ok := ledger.ParseAmount(args[0]); !ok {
				writeLine(cmd.ErrOrStderr(), cli.FormatWarning(
					fmt.Sprintf("%q is not a number, using the default rate", args[0])))
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Rate set to %s %s per %s",
					ledger.FormatRate(state.Rate), a.cfg.UI.LeftCurrency, a.cfg.UI.RightCurrency)))
			return nil
		},
	}
}
