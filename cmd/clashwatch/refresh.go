package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/eventvol/clashwatch/internal/cli"
)

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force-fetch the record table and persist a snapshot",
		Long: `Fetches the record export immediately regardless of cache staleness,
persists it as a snapshot, and prunes old snapshots. A fetch failure is
reported and leaves the previously persisted snapshots untouched.`,
		RunE: runRefresh,
	}
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Fetching records"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan error, 1)
	go func() { done <- a.cache.Refresh(ctx) }()

	var refreshErr error
wait:
	for {
		select {
		case refreshErr = <-done:
			break wait
		case <-time.After(100 * time.Millisecond):
			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()

	if refreshErr != nil {
		fmt.Println(cli.ErrorStyle.Render("✗ Refresh failed"))
		return refreshErr
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Fetched %d records at %s",
		a.cache.Len(), a.cache.FetchedAt().Format(time.RFC3339))))

	pruned, err := a.store.Prune(ctx, a.cfg.SnapshotKeep)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	if pruned > 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Pruned %d old snapshots", pruned)))
	}

	return nil
}
