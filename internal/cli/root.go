package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/daybook/internal/buildinfo"
)

// Command builds the root command tree.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "daybook",
		Short:         "Daybook - local diary storage and sync",
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.inspectCommand(),
		a.repairCommand(),
		a.syncCommand(),
		a.listCommand(),
	)
	return root
}

func (a *App) repairCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repair <key>",
		Short: "Normalize a storage key into the canonical array shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Repair(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("repair %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "repaired %s\n", args[0])
			return nil
		},
	}
}

func (a *App) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Drain the offline queue and push unsynced records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			synced, failed := a.queue.Drain(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "queue: %d synced, %d still pending\n", synced, failed)
			if failed == 0 {
				if err := a.queue.Compact(ctx); err != nil {
					return err
				}
			}

			for name, sync := range map[string]func() error{
				"journal":     func() error { return a.journal.Sync(ctx) },
				"start-day":   func() error { return a.startDay.Sync(ctx) },
				"reflections": func() error { return a.reflections.Sync(ctx) },
			} {
				if err := sync(); err != nil {
					// One entity failing must not block the others.
					a.log.Warn(ctx, "push sync failed", "entity", name, "error", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: pushed\n", name)
			}
			return nil
		},
	}
}
