package swap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/swap-terminal/internal/events"
	"github.com/rovshanmuradov/swap-terminal/internal/pricing"
)

// Side identifies which half of the pair a token selection targets.
type Side string

const (
	SideFrom Side = "from"
	SideTo   Side = "to"
)

// Amount validation errors, surfaced next to the amount field by the
// presentation layer.
var (
	ErrAmountNotNumber   = errors.New("please enter a valid amount")
	ErrAmountNotPositive = errors.New("amount must be greater than 0")
)

// ErrSubmitRejected is returned when Submit is called while the engine
// cannot submit (already settling, catalog not loaded, invalid pair or
// amount).
var ErrSubmitRejected = errors.New("swap cannot be submitted")

// State is a snapshot of the engine's swap selection.
type State struct {
	FromSymbol string
	ToSymbol   string
	AmountFrom float64
	Submitting bool
}

// Result reports the outcome of a settled submission.
type Result struct {
	Receipt Receipt
	Message string
	Err     error
}

// Engine is the swap state machine. One engine lives for the session
// and is mutated only through its operations; derived values are
// recomputed from the current state and catalog on every read.
//
// The submitting flag is the sole re-entrancy guard: it is checked and
// set under the engine mutex, so a second Submit while one is in flight
// is rejected, never queued.
type Engine struct {
	mu      sync.Mutex
	catalog *pricing.Catalog
	state   State
	settler Settler
	bus     *events.Bus
	logger  *zap.Logger
}

// NewEngine creates an engine. The bus is optional.
func NewEngine(settler Settler, bus *events.Bus, logger *zap.Logger) *Engine {
	return &Engine{
		settler: settler,
		bus:     bus,
		logger:  logger.Named("swap_engine"),
	}
}

// SetCatalog installs a fresh price snapshot. While both sides are
// still unset and the snapshot has at least two symbols, the first two
// are auto-selected as the pair; this happens once, later refreshes
// never override a user's selection.
func (e *Engine) SetCatalog(catalog *pricing.Catalog) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog = catalog

	if e.state.FromSymbol == "" && e.state.ToSymbol == "" {
		symbols := catalog.Symbols()
		if len(symbols) > 1 {
			e.state.FromSymbol = symbols[0]
			e.state.ToSymbol = symbols[1]
			e.logger.Debug("Auto-selected initial pair",
				zap.String("from", symbols[0]),
				zap.String("to", symbols[1]))
		}
	}
}

// Loaded reports whether a catalog has been installed.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog != nil
}

// Symbols returns the selectable symbols in feed order.
func (e *Engine) Symbols() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Symbols()
}

// State returns a snapshot of the current swap selection.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SelectToken sets one side of the pair. Selecting the other side's
// current token is a silent no-op so the pair can never collapse to
// from==to. Selections are ignored while a submission is in flight.
func (e *Engine) SelectToken(side Side, symbol string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Submitting {
		return
	}

	other := e.state.ToSymbol
	if side == SideTo {
		other = e.state.FromSymbol
	}
	if symbol == other {
		return
	}

	switch side {
	case SideFrom:
		e.state.FromSymbol = symbol
	case SideTo:
		e.state.ToSymbol = symbol
	}
}

// Reverse swaps the pair direction. The new input amount becomes the
// previously derived output, so "you send" shows what was just "you
// receive"; if that output was blank the amount resets to zero.
// Requires both sides set; ignored while submitting.
func (e *Engine) Reverse() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Submitting {
		return
	}
	if e.state.FromSymbol == "" || e.state.ToSymbol == "" {
		return
	}

	derived := e.deriveAmountToLocked()

	e.state.FromSymbol, e.state.ToSymbol = e.state.ToSymbol, e.state.FromSymbol

	if v, err := strconv.ParseFloat(derived, 64); err == nil {
		e.state.AmountFrom = v
	} else {
		e.state.AmountFrom = 0
	}
}

// SetAmountFrom stores the input amount as typed, without clamping.
// Validity is judged separately by CanSubmit. Ignored while submitting.
func (e *Engine) SetAmountFrom(amount float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Submitting {
		return
	}
	e.state.AmountFrom = amount
}

// DeriveAmountTo computes the output amount from the current state and
// catalog: amountFrom * priceFrom / priceTo, fixed to six fractional
// digits. It returns "" when the value cannot be computed: missing
// side, non-positive input, absent or zero price on either side.
func (e *Engine) DeriveAmountTo() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deriveAmountToLocked()
}

func (e *Engine) deriveAmountToLocked() string {
	st := e.state
	if st.FromSymbol == "" || st.ToSymbol == "" {
		return ""
	}
	if st.AmountFrom <= 0 || math.IsNaN(st.AmountFrom) || math.IsInf(st.AmountFrom, 0) {
		return ""
	}

	priceFrom, ok := e.catalog.Lookup(st.FromSymbol)
	if !ok || priceFrom == 0 {
		return ""
	}
	priceTo, ok := e.catalog.Lookup(st.ToSymbol)
	if !ok || priceTo == 0 {
		return ""
	}

	value := st.AmountFrom * priceFrom / priceTo
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	return strconv.FormatFloat(value, 'f', 6, 64)
}

// CanSubmit reports whether Submit would be accepted right now.
func (e *Engine) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canSubmitLocked()
}

func (e *Engine) canSubmitLocked() bool {
	st := e.state
	switch {
	case st.Submitting:
		return false
	case e.catalog == nil:
		return false
	case st.FromSymbol == "" || st.ToSymbol == "":
		return false
	case st.FromSymbol == st.ToSymbol:
		return false
	case st.AmountFrom <= 0 || math.IsNaN(st.AmountFrom) || math.IsInf(st.AmountFrom, 0):
		return false
	}
	return true
}

// Submit starts settlement of the current selection. The guard check
// and the submitting transition are one critical section, so at most
// one settlement is ever in flight. The returned channel delivers
// exactly one Result when the settler resolves.
//
// On success the typed amount resets to zero; on a settler error it is
// kept so the user can retry.
func (e *Engine) Submit(ctx context.Context) (<-chan Result, error) {
	e.mu.Lock()

	if !e.canSubmitLocked() {
		e.mu.Unlock()
		return nil, ErrSubmitRejected
	}

	order := Order{
		FromSymbol: e.state.FromSymbol,
		ToSymbol:   e.state.ToSymbol,
		AmountFrom: e.state.AmountFrom,
		AmountTo:   e.deriveAmountToLocked(),
	}
	e.state.Submitting = true
	e.mu.Unlock()

	e.publish(events.SwapSubmittedEvent{
		BaseEvent:  events.NewBase(events.SwapSubmitted),
		FromSymbol: order.FromSymbol,
		ToSymbol:   order.ToSymbol,
		AmountFrom: order.AmountFrom,
		AmountTo:   order.AmountTo,
	})

	e.logger.Info("Swap submitted",
		zap.String("from", order.FromSymbol),
		zap.String("to", order.ToSymbol),
		zap.Float64("amount_from", order.AmountFrom),
		zap.String("amount_to", order.AmountTo))

	resultCh := make(chan Result, 1)
	go e.settle(ctx, order, resultCh)
	return resultCh, nil
}

func (e *Engine) settle(ctx context.Context, order Order, resultCh chan<- Result) {
	receipt, err := e.settler.Settle(ctx, order)

	e.mu.Lock()
	e.state.Submitting = false
	if err == nil {
		e.state.AmountFrom = 0
	}
	e.mu.Unlock()

	result := Result{Receipt: receipt, Err: err}
	if err == nil {
		result.Message = SuccessMessage(order)
	} else {
		e.logger.Error("Settlement failed", zap.Error(err))
	}

	e.publish(events.SwapCompletedEvent{
		BaseEvent: events.NewBase(events.SwapCompleted),
		ReceiptID: receipt.ID,
		Message:   result.Message,
		Err:       err,
	})

	resultCh <- result
}

func (e *Engine) publish(event events.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(event); err != nil {
		e.logger.Debug("Event dropped", zap.Error(err))
	}
}

// SuccessMessage renders the human-readable confirmation for a settled
// order.
func SuccessMessage(order Order) string {
	return fmt.Sprintf("Successfully swapped %s %s to %s %s!",
		FormatInputAmount(order.AmountFrom), order.FromSymbol,
		order.AmountTo, order.ToSymbol)
}

// FormatInputAmount renders a typed amount without trailing zeros.
func FormatInputAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// ParseAmount validates raw amount input from the presentation layer.
// A non-numeric string or a non-positive value is a local validation
// failure for the amount field, not an engine error.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrAmountNotNumber
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrAmountNotNumber
	}
	if v <= 0 {
		return v, ErrAmountNotPositive
	}
	return v, nil
}
