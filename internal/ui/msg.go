package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/swap-terminal/internal/pricing"
	"github.com/rovshanmuradov/swap-terminal/internal/swap"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// CatalogMsg carries a fresh price snapshot to the screens
type CatalogMsg struct {
	Catalog *pricing.Catalog
}

// SwapResultMsg reports a settled submission
type SwapResultMsg struct {
	Result swap.Result
}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// SuccessMsg represents success conditions
type SuccessMsg struct {
	Message string
	Title   string
}

// Event Bus for UI communication
var (
	// Bus is the global event bus for UI communication
	Bus = make(chan tea.Msg, 1024)
)

// PublishCatalog publishes a price snapshot to the UI bus
func PublishCatalog(catalog *pricing.Catalog) {
	select {
	case Bus <- CatalogMsg{Catalog: catalog}:
	default:
		// Bus is full, drop the update
	}
}

// PublishError publishes an error message to the UI bus
func PublishError(err error, title string) {
	select {
	case Bus <- ErrorMsg{Error: err, Title: title}:
	default:
	}
}

// PublishSuccess publishes a success message to the UI bus
func PublishSuccess(message, title string) {
	select {
	case Bus <- SuccessMsg{Message: message, Title: title}:
	default:
	}
}

// ListenBus returns a tea.Cmd that listens to the event bus
func ListenBus() tea.Cmd {
	return func() tea.Msg {
		return <-Bus
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteMainMenu Route = iota
	RouteSwap
	RouteBalances
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteMainMenu:
		return "main_menu"
	case RouteSwap:
		return "swap"
	case RouteBalances:
		return "balances"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
