package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// FeedEntry mirrors one element of the price feed payload. Date is
// carried by the feed but unused here.
type FeedEntry struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
}

// Source fetches the price feed over HTTP.
type Source struct {
	client         *http.Client
	url            string
	logger         *zap.Logger
	maxElapsedTime time.Duration
}

// SourceOptions configures a Source.
type SourceOptions struct {
	Timeout        time.Duration
	MaxElapsedTime time.Duration
}

// DefaultSourceOptions returns settings suitable for an interactive
// session.
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Timeout:        10 * time.Second,
		MaxElapsedTime: 15 * time.Second,
	}
}

// NewSource creates a price feed client for the given URL.
func NewSource(url string, logger *zap.Logger, opts ...SourceOptions) *Source {
	options := DefaultSourceOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	return &Source{
		client: &http.Client{
			Timeout: options.Timeout,
		},
		url:            url,
		logger:         logger.Named("price_source"),
		maxElapsedTime: options.MaxElapsedTime,
	}
}

// Fetch retrieves the current feed and builds a catalog from it.
// Transient failures are retried with exponential backoff; a malformed
// payload aborts immediately. Any returned error means "catalog
// unavailable" to callers, the same as a feed that has not loaded yet.
func (s *Source) Fetch(ctx context.Context) (*Catalog, error) {
	op := func() (*Catalog, error) {
		return s.fetchOnce(ctx)
	}

	catalog, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(s.maxElapsedTime),
	)
	if err != nil {
		return nil, fmt.Errorf("price feed unavailable: %w", err)
	}

	s.logger.Debug("Price feed fetched",
		zap.Int("symbols", catalog.Len()))
	return catalog, nil
}

func (s *Source) fetchOnce(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err // network errors are retryable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected feed status: %d", resp.StatusCode)
		if resp.StatusCode >= 500 {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var entries []FeedEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("malformed feed payload: %w", err))
	}

	tokens := make([]Token, 0, len(entries))
	for _, e := range entries {
		tokens = append(tokens, Token{Symbol: e.Currency, Price: e.Price})
	}
	return BuildCatalog(tokens), nil
}
