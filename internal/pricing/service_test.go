package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fetchResult struct {
	catalog *Catalog
	err     error
}

// fakeFetcher replays a scripted sequence of results; the last result
// repeats once the script is exhausted.
type fakeFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	f.calls++
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i].catalog, f.results[i].err
}

func TestServiceRefreshReplacesSnapshot(t *testing.T) {
	first := BuildCatalog([]Token{{Symbol: "ETH", Price: 3000}})
	second := BuildCatalog([]Token{{Symbol: "ETH", Price: 3100}, {Symbol: "BTC", Price: 50000}})

	fetcher := &fakeFetcher{results: []fetchResult{{catalog: first}, {catalog: second}}}

	var mu sync.Mutex
	var seen []*Catalog
	svc := NewService(fetcher, 10*time.Millisecond, zaptest.NewLogger(t), func(c *Catalog) {
		mu.Lock()
		seen = append(seen, c)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = svc.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Same(t, first, seen[0])
	assert.Equal(t, 2, svc.Current().Len())
}

func TestServiceKeepsSnapshotOnFailure(t *testing.T) {
	catalog := BuildCatalog([]Token{{Symbol: "ETH", Price: 3000}})
	fetcher := &fakeFetcher{results: []fetchResult{
		{catalog: catalog},
		{err: errors.New("feed down")},
	}}

	svc := NewService(fetcher, 5*time.Millisecond, zaptest.NewLogger(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = svc.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		fetcher.mu.Lock()
		defer fetcher.mu.Unlock()
		return fetcher.calls >= 2
	}, 2*time.Second, time.Millisecond)

	cancel()
	<-done

	require.NotNil(t, svc.Current(), "failed refresh must keep the previous snapshot")
	price, ok := svc.Current().Lookup("ETH")
	require.True(t, ok)
	assert.Equal(t, 3000.0, price)
}

func TestServiceCurrentNilBeforeFirstFetch(t *testing.T) {
	svc := NewService(&fakeFetcher{results: []fetchResult{{err: errors.New("down")}}}, time.Hour, zaptest.NewLogger(t), nil)
	assert.Nil(t, svc.Current())
}
