package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// DownloadError indicates a document URL could not be fetched. It carries
// the URL and the observed condition (HTTP status or transport failure).
type DownloadError struct {
	URL    string
	Status string
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("failed to download %s: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves raw document bytes over HTTP. It performs no retries;
// retry policy belongs to the caller.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Default is 60 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a fetcher with a bounded default timeout.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default().With("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the raw bytes at url. Succeeds only on a 2xx status; any
// other status or network failure returns a *DownloadError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.logger.Debug("downloading document", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("download failed", "url", url, "err", err)
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Error("download failed", "url", url, "status", resp.Status)
		return nil, &DownloadError{URL: url, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	f.logger.Debug("downloaded document", "url", url, "bytes", len(data))
	return data, nil
}
