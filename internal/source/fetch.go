package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/eventvol/clashwatch/internal/common"
	"github.com/eventvol/clashwatch/internal/model"
)

// Fetcher retrieves the full record table from a backing source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.Record, error)
}

// HTTPFetcher downloads the CSV export from the document share.
type HTTPFetcher struct {
	client *http.Client
	url    string
	retry  common.RetryOptions
}

// NewHTTPFetcher creates a fetcher for the given export URL.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		url: url,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
		},
	}
}

// Fetch downloads and parses the export, retrying transient failures.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]model.Record, error) {
	var records []model.Record

	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		records, fetchErr = f.fetchOnce(ctx)
		return fetchErr
	}, f.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}

	return records, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context) ([]model.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d fetching records", resp.StatusCode)
		// Auth failures won't heal on retry; server errors might.
		return nil, &common.RetryableError{Err: err, Retryable: resp.StatusCode >= 500}
	}

	records, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}

	return records, nil
}
