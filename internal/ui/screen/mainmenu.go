package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/swap-terminal/internal/ui"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/component"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/router"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/style"
)

// MenuItem represents a menu item
type MenuItem struct {
	Label       string
	Description string
	Route       ui.Route
}

// MainMenuScreen is the landing screen
type MainMenuScreen struct {
	services *ui.Services
	width    int
	height   int
	keyMap   ui.KeyMap

	helpBar *component.HelpBar

	selectedIndex int
	menuItems     []MenuItem

	titleStyle       lipgloss.Style
	menuItemStyle    lipgloss.Style
	selectedStyle    lipgloss.Style
	descriptionStyle lipgloss.Style
	statusStyle      lipgloss.Style
}

// NewMainMenuScreen creates the landing screen
func NewMainMenuScreen(services *ui.Services) *MainMenuScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	menuItems := []MenuItem{
		{
			Label:       "⇄ Swap",
			Description: "Quote and submit a token swap",
			Route:       ui.RouteSwap,
		},
		{
			Label:       "💰 Balances",
			Description: "View wallet balances ranked by chain",
			Route:       ui.RouteBalances,
		},
		{
			Label:       "📜 Logs",
			Description: "View application logs and activity",
			Route:       ui.RouteLogs,
		},
	}

	helpBar := component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteMainMenu))

	return &MainMenuScreen{
		services:  services,
		keyMap:    keyMap,
		menuItems: menuItems,
		helpBar:   helpBar,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0).
			Align(lipgloss.Center),

		menuItemStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 2).
			Margin(0, 0, 1, 0),

		selectedStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 2).
			Margin(0, 0, 1, 0).
			Bold(true),

		descriptionStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 4).
			Margin(0, 0, 1, 0).
			Italic(true),

		statusStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 2),
	}
}

// Init initializes the main menu screen
func (m *MainMenuScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates
func (m *MainMenuScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Up):
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}
		case key.Matches(msg, m.keyMap.Down):
			if m.selectedIndex < len(m.menuItems)-1 {
				m.selectedIndex++
			}
		case key.Matches(msg, m.keyMap.Enter):
			return m, router.Navigate(m.menuItems[m.selectedIndex].Route)
		case key.Matches(msg, m.keyMap.Swap):
			return m, router.Navigate(ui.RouteSwap)
		case key.Matches(msg, m.keyMap.Balances):
			return m, router.Navigate(ui.RouteBalances)
		case key.Matches(msg, m.keyMap.Logs):
			return m, router.Navigate(ui.RouteLogs)
		}

	}

	return m, nil
}

// View renders the main menu
func (m *MainMenuScreen) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Width(m.width).Render("SWAP TERMINAL"))
	b.WriteString("\n\n")

	for i, item := range m.menuItems {
		if i == m.selectedIndex {
			b.WriteString(m.selectedStyle.Render(item.Label))
		} else {
			b.WriteString(m.menuItemStyle.Render(item.Label))
		}
		b.WriteString("\n")
		b.WriteString(m.descriptionStyle.Render(item.Description))
		b.WriteString("\n")
	}

	status := "prices: loading…"
	if m.services != nil && m.services.Engine.Loaded() {
		status = "prices: live"
	}
	b.WriteString(m.statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(m.helpBar.SetWidth(m.width).View())

	return b.String()
}

// SetSize updates the screen dimensions
func (m *MainMenuScreen) SetSize(width, height int) {
	m.width = width
	m.height = height
}
