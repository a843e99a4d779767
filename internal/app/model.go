package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/swap-terminal/internal/ui"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/router"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/screen"
)

// appModel is the root bubbletea model. It owns the route-to-screen
// mapping; everything else is delegated to the router.
type appModel struct {
	router   *router.Router
	services *ui.Services
}

func newAppModel(r *router.Router, services *ui.Services) *appModel {
	return &appModel{
		router:   r,
		services: services,
	}
}

// Init initializes the root model
func (m *appModel) Init() tea.Cmd {
	return tea.Batch(m.router.Init(), ui.ListenBus())
}

// Update routes messages to the navigation stack
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ui.RouterMsg:
		return m, m.navigate(msg.To)

	case ui.CatalogMsg, ui.ErrorMsg, ui.SuccessMsg:
		// Bus-borne messages; re-arm the single listener here so
		// screens never have to.
		cmds = append(cmds, ui.ListenBus())
	}

	_, cmd := m.router.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the current screen
func (m *appModel) View() string {
	return m.router.View()
}

func (m *appModel) navigate(route ui.Route) tea.Cmd {
	switch route {
	case ui.RouteSwap:
		return m.router.Push(screen.NewSwapScreen(m.services))
	case ui.RouteBalances:
		return m.router.Push(screen.NewBalancesScreen(m.services))
	case ui.RouteLogs:
		return m.router.Push(screen.NewLogsScreen(m.services))
	case ui.RouteMainMenu:
		return m.router.Pop()
	default:
		return nil
	}
}
