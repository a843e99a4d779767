package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Tab   key.Binding

	// Swap screen
	Reverse key.Binding
	Submit  key.Binding

	// Balances screen
	Export key.Binding

	// Menu shortcuts
	Swap     key.Binding
	Balances key.Binding
	Logs     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous token"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next token"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),

		Reverse: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reverse pair"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "confirm swap"),
		),

		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),

		Swap: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swap"),
		),
		Balances: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "balances"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "logs"),
		),
	}
}

// ContextualHelp returns the bindings relevant on a given screen
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteSwap:
		return []key.Binding{k.Tab, k.Left, k.Right, k.Reverse, k.Submit, k.Back, k.Quit}
	case RouteBalances:
		return []key.Binding{k.Export, k.Back, k.Quit}
	case RouteLogs:
		return []key.Binding{k.Back, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Quit}
	}
}
