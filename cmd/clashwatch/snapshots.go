package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventvol/clashwatch/internal/cli"
)

func snapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage persisted record snapshots",
	}

	cmd.AddCommand(snapshotsListCmd())
	cmd.AddCommand(snapshotsPruneCmd())

	return cmd
}

func snapshotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted snapshots, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			snaps, err := a.store.Snapshots(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Snapshots"))
			if len(snaps) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No snapshots persisted yet."))
				return nil
			}

			w := newTabWriter()
			fmt.Fprintln(w, cli.HeaderStyle.Render("ID\tFETCHED AT\tROWS"))
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%s\t%d\n", s.ID, s.FetchedAt.Format(time.RFC3339), s.RowCount)
			}
			return w.Flush()
		},
	}
}

func snapshotsPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if keep <= 0 {
				keep = a.cfg.SnapshotKeep
			}

			pruned, err := a.store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Pruned %d snapshots, kept the newest %d", pruned, keep)))
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "snapshots to keep (default from config)")

	return cmd
}
