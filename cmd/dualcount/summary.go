package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/report"
	"github.com/spf13/cobra"
)

func (a *app) summaryCmd() *cobra.Command {
	var (
		format string
		style  string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the ledger totals",
		Long: `Print every entry with its value in both currencies and the column totals.
The counter variant prints per-column entry counts instead.`,
		Example: `  dualcount summary
  dualcount summary --format markdown --style dark
  dualcount summary --format json | jq .totals`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.loadState(cmd.Context())
			if err != nil {
				return err
			}
			r := a.buildReport(state)
			out := cmd.OutOrStdout()

			switch format {
			case "text":
				_, err = io.WriteString(out, report.Text(r))
			case "markdown", "md":
				var rendered string
				if rendered, err = report.RenderMarkdown(r, style); err == nil {
					_, err = io.WriteString(out, rendered)
				}
			case "json":
				err = report.WriteJSON(out, r)
			default:
				return common.NewUserError(fmt.Sprintf("unknown format %q (text, markdown, json)", format), common.ErrInvalidConfig)
			}
			if err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, markdown, json)")
	cmd.Flags().StringVar(&style, "style", "notty", "glamour style for markdown (notty, dark, light, ascii)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV",
		Long:  `Write one CSV row per entry with its id, column, typed amount and value in both currencies.`,
		Example: `  dualcount export > expenses.csv
  dualcount export --output ~/expenses.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.loadState(cmd.Context())
			if err != nil {
				return err
			}
			r := a.buildReport(state)

			if output == "" || output == "-" {
				return report.WriteCSV(cmd.OutOrStdout(), r)
			}

			path := filepath.Clean(output)
			f, err := os.Create(path) // #nosec G304 -- path is chosen by the user
			if err != nil {
				return common.NewUserError("could not create export file", err)
			}
			if err := report.WriteCSV(f, r); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close export file: %w", err)
			}

			writeLine(cmd.ErrOrStderr(), fmt.Sprintf("Exported %d entries to %s", len(r.Rows), path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
