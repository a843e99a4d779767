package swap

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/swap-terminal/internal/pricing"
)

func testCatalog(tokens ...pricing.Token) *pricing.Catalog {
	return pricing.BuildCatalog(tokens)
}

func newTestEngine(t *testing.T, settler Settler) *Engine {
	t.Helper()
	if settler == nil {
		settler = NewSimulatedSettler(time.Millisecond, zaptest.NewLogger(t))
	}
	return NewEngine(settler, nil, zaptest.NewLogger(t))
}

func TestDeriveAmountTo(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	engine.SetAmountFrom(2)

	assert.Equal(t, "0.120000", engine.DeriveAmountTo())
}

func TestDeriveAmountToBlankCases(t *testing.T) {
	catalog := testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
		pricing.Token{Symbol: "DED", Price: 0},
	)

	tests := []struct {
		name  string
		setup func(e *Engine)
	}{
		{
			name:  "no catalog",
			setup: func(e *Engine) { e.SetAmountFrom(2) },
		},
		{
			name: "zero amount",
			setup: func(e *Engine) {
				e.SetCatalog(catalog)
			},
		},
		{
			name: "negative amount",
			setup: func(e *Engine) {
				e.SetCatalog(catalog)
				e.SetAmountFrom(-1)
			},
		},
		{
			name: "zero destination price",
			setup: func(e *Engine) {
				e.SetCatalog(catalog)
				e.SelectToken(SideTo, "DED")
				e.SetAmountFrom(2)
			},
		},
		{
			name: "zero source price",
			setup: func(e *Engine) {
				e.SetCatalog(catalog)
				e.SelectToken(SideFrom, "DED")
				e.SetAmountFrom(2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t, nil)
			tt.setup(engine)
			assert.Equal(t, "", engine.DeriveAmountTo())
		})
	}
}

func TestAutoSelection(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "A", Price: 1},
		pricing.Token{Symbol: "B", Price: 2},
		pricing.Token{Symbol: "C", Price: 3},
	))

	st := engine.State()
	assert.Equal(t, "A", st.FromSymbol)
	assert.Equal(t, "B", st.ToSymbol)
}

func TestAutoSelectionIsOneTime(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "A", Price: 1},
		pricing.Token{Symbol: "B", Price: 2},
	))
	engine.SelectToken(SideFrom, "B") // no-op: B is the other side
	engine.SelectToken(SideTo, "A")   // no-op: A is the other side

	// A refresh with a different order must not override the selection.
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "X", Price: 9},
		pricing.Token{Symbol: "Y", Price: 8},
		pricing.Token{Symbol: "A", Price: 1},
		pricing.Token{Symbol: "B", Price: 2},
	))

	st := engine.State()
	assert.Equal(t, "A", st.FromSymbol)
	assert.Equal(t, "B", st.ToSymbol)
}

func TestAutoSelectionNeedsTwoSymbols(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(pricing.Token{Symbol: "A", Price: 1}))

	st := engine.State()
	assert.Empty(t, st.FromSymbol)
	assert.Empty(t, st.ToSymbol)
}

func TestSelectTokenRejectsSelfPair(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
		pricing.Token{Symbol: "SOL", Price: 150},
	))

	// from=ETH, to=BTC after auto-selection.
	engine.SelectToken(SideTo, "ETH")
	st := engine.State()
	assert.Equal(t, "ETH", st.FromSymbol)
	assert.Equal(t, "BTC", st.ToSymbol, "selecting the from-side token must leave to unchanged")

	engine.SelectToken(SideFrom, "BTC")
	st = engine.State()
	assert.Equal(t, "ETH", st.FromSymbol, "selecting the to-side token must leave from unchanged")

	engine.SelectToken(SideTo, "SOL")
	assert.Equal(t, "SOL", engine.State().ToSymbol)
}

func TestReverseSwapsPairAndCarriesOutput(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	engine.SetAmountFrom(2)

	engine.Reverse()

	st := engine.State()
	assert.Equal(t, "BTC", st.FromSymbol)
	assert.Equal(t, "ETH", st.ToSymbol)
	assert.Equal(t, 0.12, st.AmountFrom, "you send becomes the previous you receive")
}

func TestReverseWithBlankOutputResetsAmount(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	// No amount typed: derived output is blank.
	engine.Reverse()

	st := engine.State()
	assert.Equal(t, "BTC", st.FromSymbol)
	assert.Zero(t, st.AmountFrom)
}

func TestReversePairingIsIdempotent(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	engine.SetAmountFrom(2)

	engine.Reverse()
	engine.Reverse()

	// The pair is restored; the amount may differ by recomputation.
	st := engine.State()
	assert.Equal(t, "ETH", st.FromSymbol)
	assert.Equal(t, "BTC", st.ToSymbol)
}

func TestCanSubmit(t *testing.T) {
	engine := newTestEngine(t, nil)
	assert.False(t, engine.CanSubmit(), "no catalog yet")

	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	assert.False(t, engine.CanSubmit(), "no amount yet")

	engine.SetAmountFrom(2)
	assert.True(t, engine.CanSubmit())

	engine.SetAmountFrom(-5)
	assert.False(t, engine.CanSubmit())
}

func TestSubmitResetsAmountAndReportsMessage(t *testing.T) {
	engine := newTestEngine(t, nil)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	engine.SetAmountFrom(2)

	resultCh, err := engine.Submit(context.Background())
	require.NoError(t, err)

	result := <-resultCh
	require.NoError(t, result.Err)
	assert.Equal(t, "Successfully swapped 2 ETH to 0.120000 BTC!", result.Message)
	assert.NotEmpty(t, result.Receipt.ID)

	st := engine.State()
	assert.False(t, st.Submitting)
	assert.Zero(t, st.AmountFrom, "amount resets after completion")
}

// blockingSettler holds settlement until released, to test the
// re-entrancy guard.
type blockingSettler struct {
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (s *blockingSettler) Settle(ctx context.Context, order Order) (Receipt, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	<-s.release
	return Receipt{ID: "blocked", Order: order, CompletedAt: time.Now()}, nil
}

func TestSubmitGuardRejectsReentry(t *testing.T) {
	settler := &blockingSettler{release: make(chan struct{})}
	engine := newTestEngine(t, settler)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	engine.SetAmountFrom(2)

	first, err := engine.Submit(context.Background())
	require.NoError(t, err)

	// While in flight: submit rejected, mutations ignored.
	_, err = engine.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitRejected)
	assert.False(t, engine.CanSubmit())

	engine.SetAmountFrom(42)
	engine.SelectToken(SideFrom, "BTC")
	engine.Reverse()
	st := engine.State()
	assert.Equal(t, "ETH", st.FromSymbol)
	assert.Equal(t, 2.0, st.AmountFrom)

	close(settler.release)
	result := <-first
	require.NoError(t, result.Err)

	settler.mu.Lock()
	calls := settler.calls
	settler.mu.Unlock()
	assert.Equal(t, 1, calls, "exactly one settlement must run")
	assert.False(t, engine.State().Submitting, "submitting returns to false exactly once")
}

// failingSettler models a real backend with a failure path.
type failingSettler struct{ err error }

func (s *failingSettler) Settle(ctx context.Context, order Order) (Receipt, error) {
	return Receipt{}, s.err
}

func TestSubmitSettlerFailureKeepsAmount(t *testing.T) {
	settler := &failingSettler{err: assert.AnError}
	engine := newTestEngine(t, settler)
	engine.SetCatalog(testCatalog(
		pricing.Token{Symbol: "ETH", Price: 3000},
		pricing.Token{Symbol: "BTC", Price: 50000},
	))
	engine.SetAmountFrom(2)

	resultCh, err := engine.Submit(context.Background())
	require.NoError(t, err)

	result := <-resultCh
	require.ErrorIs(t, result.Err, assert.AnError)

	st := engine.State()
	assert.False(t, st.Submitting, "submitting must be reinstated to false on failure")
	assert.Equal(t, 2.0, st.AmountFrom, "typed amount survives a failed settlement")
	assert.True(t, engine.CanSubmit(), "the user can retry")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr error
	}{
		{"2", 2, nil},
		{" 0.5 ", 0.5, nil},
		{"", 0, ErrAmountNotNumber},
		{"abc", 0, ErrAmountNotNumber},
		{"NaN", 0, ErrAmountNotNumber},
		{"Inf", 0, ErrAmountNotNumber},
		{"0", 0, ErrAmountNotPositive},
		{"-3", -3, ErrAmountNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
