package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/dual-count/internal/cli"
	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/storage"
	"github.com/spf13/cobra"
)

func (a *app) checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage ledger checkpoints",
		Long: `Create, list, restore, and delete ledger checkpoints.

Checkpoints keep a copy of the ledger so it can be put back later. They are
only available with the sqlite backend.`,
		Example: `  # Save the ledger before importing a statement
  dualcount checkpoint create --tag pre-march
  
  # List all checkpoints
  dualcount checkpoint list
  
  # Put the saved ledger back
  dualcount checkpoint restore pre-march
  
  # Delete an old checkpoint
  dualcount checkpoint delete pre-march`,
	}

	cmd.AddCommand(a.createCheckpointCmd())
	cmd.AddCommand(a.listCheckpointsCmd())
	cmd.AddCommand(a.restoreCheckpointCmd())
	cmd.AddCommand(a.deleteCheckpointCmd())

	return cmd
}

// withCheckpoints runs fn with a checkpoint manager on the configured store.
func (a *app) withCheckpoints(ctx context.Context, fn func(*storage.CheckpointManager) error) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	s, err := sqliteStore(store)
	if err != nil {
		return err
	}
	return fn(s.NewCheckpointManager())
}

func (a *app) createCheckpointCmd() *cobra.Command {
	var (
		tag         string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Long:  `Save a copy of the current ledger.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCheckpoints(cmd.Context(), func(cm *storage.CheckpointManager) error {
				info, err := cm.Create(cmd.Context(), ledger.StorageKey, tag, description)
				if err != nil {
					return checkpointError("create", err)
				}

				writeLine(cmd.OutOrStdout(), fmt.Sprintf("%s Created checkpoint %s (%s)",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(info.ID),
					formatSize(info.Size)))
				if info.Description != "" {
					writeLine(cmd.OutOrStdout(), "  Description: "+info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "checkpoint tag (generated from the time if empty)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the checkpoint")
	return cmd
}

func (a *app) listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all checkpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCheckpoints(cmd.Context(), func(cm *storage.CheckpointManager) error {
				checkpoints, err := cm.List(cmd.Context())
				if err != nil {
					return checkpointError("list", err)
				}

				out := cmd.OutOrStdout()
				if len(checkpoints) == 0 {
					writeLine(out, cli.FormatInfo("No checkpoints found"))
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				writeLine(w, cli.TableHeaderStyle.Render("TAG")+"\t"+
					cli.TableHeaderStyle.Render("CREATED")+"\t"+
					cli.TableHeaderStyle.Render("SIZE")+"\t"+
					cli.TableHeaderStyle.Render("DESCRIPTION"))
				for _, cp := range checkpoints {
					writeLine(w, fmt.Sprintf("%s\t%s\t%s\t%s",
						cp.ID, formatAge(cp.CreatedAt), formatSize(cp.Size), cp.Description))
				}
				return w.Flush()
			})
		},
	}
}

func (a *app) restoreCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <tag>",
		Short: "Restore the ledger from a checkpoint",
		Long:  `Replace the current ledger with the copy saved in a checkpoint.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCheckpoints(cmd.Context(), func(cm *storage.CheckpointManager) error {
				info, err := cm.Restore(cmd.Context(), args[0])
				if err != nil {
					return checkpointError("restore", err)
				}
				writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Restored checkpoint %s from %s",
					info.ID, info.CreatedAt.Local().Format("2006-01-02 15:04"))))
				return nil
			})
		},
	}
}

func (a *app) deleteCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCheckpoints(cmd.Context(), func(cm *storage.CheckpointManager) error {
				if err := cm.Delete(cmd.Context(), args[0]); err != nil {
					return checkpointError("delete", err)
				}
				writeLine(cmd.OutOrStdout(), cli.FormatSuccess("Deleted checkpoint "+args[0]))
				return nil
			})
		},
	}
}

func checkpointError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrCheckpointNotFound):
		return common.NewUserError("no such checkpoint", err)
	case errors.Is(err, storage.ErrCheckpointExists):
		return common.NewUserError("a checkpoint with that tag already exists", err)
	case errors.Is(err, storage.ErrInvalidTag):
		return common.NewUserError("invalid checkpoint tag", err)
	case errors.Is(err, common.ErrNotFound):
		return common.NewUserError("the ledger is empty, nothing to checkpoint", err)
	default:
		return fmt.Errorf("failed to %s checkpoint: %w", op, err)
	}
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return t.Local().Format("2006-01-02 15:04")
	}
}
