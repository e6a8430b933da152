// Package data provides fetching of remote playlist and EPG documents.
package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnexpectedStatus is returned when the HTTP response has an unexpected status code.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Fetcher retrieves remote documents over HTTP with a bounded timeout.
type Fetcher struct {
	client *http.Client
	logger *logrus.Logger
}

// NewFetcher creates a new fetcher instance.
func NewFetcher(timeout time.Duration, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the document at url and returns its body. Errors always
// name the URL that failed.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.logger.WithField("url", url).Debug("Fetching document")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %w: %d", url, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	return body, nil
}
