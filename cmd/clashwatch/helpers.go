package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/config"
	"github.com/eventvol/clashwatch/internal/model"
	"github.com/eventvol/clashwatch/internal/source"
	"github.com/eventvol/clashwatch/internal/storage"
)

// app bundles the wiring every command needs: resolved config, the rules
// document, the snapshot store, and the record cache in front of the fetcher.
type app struct {
	cfg   config.Config
	doc   config.Document
	store *storage.Store
	cache *source.Cache
}

// newApp wires the application from the resolved configuration: rules
// document, snapshot store, and the record cache in front of the fetcher.
// Without a source URL the cache reads the last persisted snapshot instead.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.Load()

	doc, err := config.LoadDocument(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate snapshot store: %w", err)
	}

	var (
		fetcher   source.Fetcher
		snapStore source.SnapshotStore
	)
	if cfg.SourceURL != "" {
		fetcher = source.NewHTTPFetcher(cfg.SourceURL)
		snapStore = store
	} else {
		// Offline mode reads the latest persisted snapshot. The cache must
		// not persist what it just read back, or every cold read would write
		// a duplicate snapshot stamped with the current time.
		fetcher = snapshotFetcher{store: store}
	}

	return &app{
		cfg:   cfg,
		doc:   doc,
		store: store,
		cache: source.NewCache(fetcher, cfg.CacheTTL, snapStore),
	}, nil
}

func (a *app) close() {
	if a.cache != nil {
		a.cache.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}

// snapshotFetcher serves the latest persisted snapshot when no source URL is
// configured, so offline commands still work against the last good table.
type snapshotFetcher struct {
	store *storage.Store
}

func (f snapshotFetcher) Fetch(ctx context.Context) ([]model.Record, error) {
	records, _, err := f.store.LatestRecords(ctx)
	return records, err
}

// filterFlags are the shared record filter flags.
type filterFlags struct {
	start     string
	end       string
	gmsIDs    []string
	names     []string
	campaigns []string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.start, "start", "", "start date (inclusive, YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.end, "end", "", "end date (inclusive, YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&ff.gmsIDs, "gms-id", nil, "filter by GMS id (repeatable)")
	cmd.Flags().StringSliceVar(&ff.names, "name", nil, "filter by person name (repeatable)")
	cmd.Flags().StringSliceVar(&ff.campaigns, "campaign", nil, "filter by campaign id (repeatable)")
}

func (ff *filterFlags) build() (clash.Filter, error) {
	var f clash.Filter

	if ff.start != "" {
		t, err := time.Parse("2006-01-02", ff.start)
		if err != nil {
			return f, fmt.Errorf("invalid --start date %q", ff.start)
		}
		f.Start = t
	}
	if ff.end != "" {
		t, err := time.Parse("2006-01-02", ff.end)
		if err != nil {
			return f, fmt.Errorf("invalid --end date %q", ff.end)
		}
		f.End = t
	}
	f.GMSIDs = ff.gmsIDs
	f.Names = ff.names
	f.Campaigns = ff.campaigns

	return f, nil
}

// newTabWriter returns the tabwriter commands render tables with.
func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
