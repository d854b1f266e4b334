// Package dataset loads the skytterlag dataset: a single JSON document of
// range records fetched over HTTP, then normalized for the map.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mkleiven/stevnekart/internal/skytebane"
)

const (
	// DefaultURL is the published location of the range dataset.
	DefaultURL = "https://kart.dfs-data.no/skytebaner.json"
	UserAgent  = "stevnekart/1.0 (github.com/mkleiven/stevnekart)"
	Timeout    = 30 * time.Second

	maxRetries = 3
)

// Loader fetches the range dataset.
type Loader struct {
	client *http.Client
	url    string
}

// New creates a Loader for the default dataset URL.
func New() *Loader {
	return NewWithURL(DefaultURL)
}

// NewWithURL creates a Loader for a specific dataset URL.
func NewWithURL(url string) *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// Fetch downloads and decodes the raw range records. Transient failures are
// retried with exponential backoff; a client error from the server is
// terminal. No partial result is ever returned.
func (l *Loader) Fetch() ([]*skytebane.Range, error) {
	var ranges []*skytebane.Range

	op := func() error {
		req, err := http.NewRequest("GET", l.url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := l.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching dataset: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading dataset: %w", err)
		}

		ranges = nil
		if err := json.Unmarshal(body, &ranges); err != nil {
			return backoff.Permanent(fmt.Errorf("parsing dataset: %w", err))
		}
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return ranges, nil
}

// Load fetches the dataset and normalizes it: implausible coordinates are
// dropped and synthetic stevner are attached where real ones are missing.
func (l *Loader) Load() ([]*skytebane.Range, error) {
	raw, err := l.Fetch()
	if err != nil {
		return nil, err
	}
	return skytebane.Normalize(raw), nil
}
