package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eventvol/clashwatch/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		Long: `Starts the HTTP server that exposes clash tables, risk rollups, conflicts,
and reports to the dashboards, refreshing the record table in the background.`,
		RunE: runServe,
	}

	cmd.Flags().String("listen", "", "listen address (default :8050)")
	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	// Warm the cache before accepting traffic. A cold failure is tolerated
	// here; the cache falls back to the latest snapshot on first read.
	if err := a.cache.Refresh(ctx); err != nil {
		slog.Warn("Initial record fetch failed; will serve the latest snapshot until the source recovers", "error", err)
	}
	a.cache.Start(a.cfg.RefreshInterval)

	srv := server.New(a.cache, a.doc)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving dashboard API", "addr", a.cfg.ListenAddr)
		errCh <- srv.Listen(a.cfg.ListenAddr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server")
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
