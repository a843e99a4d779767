package swap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSimulatedSettlerResolvesAfterLatency(t *testing.T) {
	settler := NewSimulatedSettler(20*time.Millisecond, zaptest.NewLogger(t))
	order := Order{FromSymbol: "ETH", ToSymbol: "BTC", AmountFrom: 2, AmountTo: "0.120000"}

	start := time.Now()
	receipt, err := settler.Settle(context.Background(), order)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, order, receipt.Order)
	assert.False(t, receipt.CompletedAt.IsZero())
}

func TestSimulatedSettlerIgnoresCancellation(t *testing.T) {
	settler := NewSimulatedSettler(10*time.Millisecond, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Once submitted, the simulated settlement always completes.
	receipt, err := settler.Settle(ctx, Order{FromSymbol: "ETH", ToSymbol: "BTC"})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
}

func TestSuccessMessage(t *testing.T) {
	msg := SuccessMessage(Order{
		FromSymbol: "ETH",
		ToSymbol:   "BTC",
		AmountFrom: 2.5,
		AmountTo:   "0.150000",
	})
	assert.Equal(t, "Successfully swapped 2.5 ETH to 0.150000 BTC!", msg)
}
