// internal/events/types.go
package events

import (
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// Catalog events
	CatalogRefreshed EventType = "catalog.refreshed"

	// Swap events
	SwapSubmitted EventType = "swap.submitted"
	SwapCompleted EventType = "swap.completed"

	// Balance events
	BalancesRanked EventType = "balances.ranked"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// NewBase stamps a BaseEvent with the current time.
func NewBase(t EventType) BaseEvent {
	return BaseEvent{EventType: t, EventTime: time.Now()}
}

// CatalogRefreshedEvent is emitted when a fresh price snapshot replaces
// the catalog.
type CatalogRefreshedEvent struct {
	BaseEvent
	Symbols int
}

// SwapSubmittedEvent is emitted when a swap enters settlement.
type SwapSubmittedEvent struct {
	BaseEvent
	FromSymbol string
	ToSymbol   string
	AmountFrom float64
	AmountTo   string
}

// SwapCompletedEvent is emitted when settlement resolves.
type SwapCompletedEvent struct {
	BaseEvent
	ReceiptID string
	Message   string
	Err       error
}

// BalancesRankedEvent is emitted when the display balance list is
// recomputed.
type BalancesRankedEvent struct {
	BaseEvent
	Shown    int
	TotalUSD float64
}
