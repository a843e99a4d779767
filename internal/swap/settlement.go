package swap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Order captures the amounts of a swap at the moment it is submitted. A
// price refresh landing mid-settlement does not touch an in-flight
// order.
type Order struct {
	FromSymbol string
	ToSymbol   string
	AmountFrom float64
	AmountTo   string
}

// Receipt is the result of a settled order.
type Receipt struct {
	ID          string
	Order       Order
	CompletedAt time.Time
}

// Settler performs the settlement of a submitted order. Implementations
// with a real backend are expected to return an error on failure; the
// engine then clears its in-flight state without consuming the typed
// amount.
type Settler interface {
	Settle(ctx context.Context, order Order) (Receipt, error)
}

// SimulatedSettler resolves every order after a fixed latency. It never
// fails and does not honor cancellation: once submitted, an order
// always completes.
type SimulatedSettler struct {
	latency time.Duration
	logger  *zap.Logger
}

// DefaultSettleLatency mirrors the confirmation delay users expect from
// the simulated backend.
const DefaultSettleLatency = 1500 * time.Millisecond

// NewSimulatedSettler creates a settler with the given latency.
func NewSimulatedSettler(latency time.Duration, logger *zap.Logger) *SimulatedSettler {
	if latency <= 0 {
		latency = DefaultSettleLatency
	}
	return &SimulatedSettler{
		latency: latency,
		logger:  logger.Named("settler"),
	}
}

// Settle waits out the simulated latency and confirms the order.
func (s *SimulatedSettler) Settle(ctx context.Context, order Order) (Receipt, error) {
	s.logger.Debug("Settling order",
		zap.String("from", order.FromSymbol),
		zap.String("to", order.ToSymbol),
		zap.Float64("amount_from", order.AmountFrom),
		zap.Duration("latency", s.latency))

	time.Sleep(s.latency)

	receipt := Receipt{
		ID:          uuid.New().String(),
		Order:       order,
		CompletedAt: time.Now(),
	}

	s.logger.Info("Order settled",
		zap.String("receipt_id", receipt.ID),
		zap.String("from", order.FromSymbol),
		zap.String("to", order.ToSymbol))

	return receipt, nil
}
