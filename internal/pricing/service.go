package pricing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RefreshCallback is invoked with each fresh catalog snapshot.
type RefreshCallback func(catalog *Catalog)

// Fetcher is implemented by Source; kept as an interface for tests.
type Fetcher interface {
	Fetch(ctx context.Context) (*Catalog, error)
}

// Service periodically refreshes the price catalog and hands snapshots
// to a callback. The current snapshot is also readable directly; it
// stays nil until the first successful fetch and keeps the previous
// value when a refresh fails.
type Service struct {
	source   Fetcher
	interval time.Duration
	logger   *zap.Logger
	callback RefreshCallback

	mu      sync.RWMutex
	current *Catalog

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a refresher over the given source.
func NewService(source Fetcher, interval time.Duration, logger *zap.Logger, callback RefreshCallback) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		source:   source,
		interval: interval,
		logger:   logger.Named("price_service"),
		callback: callback,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run refreshes immediately and then on every tick until Stop is called
// or ctx is cancelled. It blocks, so callers run it in a goroutine.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("Starting price refresher",
		zap.Duration("interval", s.interval))

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-ctx.Done():
			s.logger.Debug("Price refresher stopped")
			return ctx.Err()
		case <-s.ctx.Done():
			s.logger.Debug("Price refresher stopped")
			return nil
		}
	}
}

// Stop halts the refresh loop.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Current returns the latest snapshot, or nil before the first
// successful fetch.
func (s *Service) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Service) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	catalog, err := s.source.Fetch(fetchCtx)
	if err != nil {
		// Soft condition: keep the previous snapshot, stay unready if
		// there was none.
		s.logger.Warn("Price refresh failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.current = catalog
	s.mu.Unlock()

	if s.callback != nil {
		s.callback(catalog)
	}
}
