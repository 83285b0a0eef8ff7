package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/dual-count/internal/cli"
	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/ofx"
	"github.com/spf13/cobra"
)

var errNoFiles = errors.New("no files found to import")

func (a *app) importOFXCmd() *cobra.Command {
	var (
		column string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Add statement transactions from OFX/QFX files",
		Long: `Add every transaction of one or more OFX or QFX statements as an entry.
The entry holds the absolute amount with two decimals. Transactions repeated
across files, or added by an earlier import, are skipped. A reset forgets
which transactions were imported.`,
		Example: `  dualcount import-ofx ~/Downloads/visa_march.qfx
  dualcount import-ofx --column right ~/Downloads/*.ofx
  dualcount import-ofx --dry-run statement.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := ledger.ParseColumn(column)
			if err != nil {
				return common.NewUserError("invalid --column", err)
			}

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			seen, err := ofx.LoadImported(ctx, store)
			if err != nil {
				slog.Warn("Ignoring unreadable import history", "error", err)
				seen = make(map[string]bool)
			}

			txns, err := parseStatements(cmd, files, seen)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(txns) == 0 {
				writeLine(out, cli.FormatWarning("No new transactions found"))
				return nil
			}

			if dryRun {
				for _, tx := range txns {
					writeLine(out, fmt.Sprintf("  %s  %s %s  %s",
						tx.Posted.Format("2006-01-02"), tx.Amount, a.currency(col), tx.Name))
				}
				writeLine(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d entries would be added", len(txns))))
				return nil
			}

			state, err := a.mutateStore(ctx, store, func(s ledger.State) (ledger.State, error) {
				return ofx.Import(s, txns, col), nil
			})
			if err != nil {
				return err
			}
			if err := ofx.SaveImported(ctx, store, seen); err != nil {
				slog.Warn("Failed to record imported transactions", "error", err)
			}

			writeLine(out, cli.FormatSuccess(fmt.Sprintf("Added %d entries (%d total)", len(txns), state.EntryCount())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "left", "column to add entries to (left, right)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the entries without saving")
	return cmd
}

// expandFiles resolves glob patterns. Patterns matching nothing are kept
// when they name an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("invalid pattern %s", pattern), err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("nothing to import", errNoFiles)
	}
	return files, nil
}

// parseStatements reads every file in order and drops transactions already
// in seen, adding the rest to it. Unreadable files are logged and skipped.
func parseStatements(cmd *cobra.Command, files []string, seen map[string]bool) ([]ofx.Transaction, error) {
	ctx := cmd.Context()
	parser := ofx.NewParser()
	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Reading statements")

	var all []ofx.Transaction
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		txns, err := parseFile(cmd, parser, path)
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
		} else {
			unique := ofx.Dedupe(txns, seen)
			slog.Info("Processed file",
				"file", filepath.Base(path),
				"transactions_found", len(txns),
				"added", len(unique),
				"duplicates", len(txns)-len(unique))
			all = append(all, unique...)
		}

		if err := bar.Add(1); err != nil {
			slog.Debug("Failed to update progress bar", "error", err)
		}
	}
	return all, nil
}

func parseFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]ofx.Transaction, error) {
	f, err := os.Open(filepath.Clean(path)) // #nosec G304 -- path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(cmd.Context(), f)
}
