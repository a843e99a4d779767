package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/swap-terminal/internal/events"
	"github.com/rovshanmuradov/swap-terminal/internal/export"
	"github.com/rovshanmuradov/swap-terminal/internal/pricing"
	"github.com/rovshanmuradov/swap-terminal/internal/ui"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/component"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/router"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/style"
	"github.com/rovshanmuradov/swap-terminal/internal/wallet"
)

// BalancesScreen shows the wallet balances ranked by category priority
// with their USD values. The ranked list is rebuilt from the live
// catalog on every refresh, never cached across snapshots.
type BalancesScreen struct {
	services *ui.Services
	width    int
	height   int
	keyMap   ui.KeyMap

	helpBar *component.HelpBar

	ranked []wallet.RankedBalance
	total  float64

	statusLine string
	statusErr  bool

	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	rowStyle    lipgloss.Style
	mutedStyle  lipgloss.Style
	totalStyle  lipgloss.Style
	panelStyle  lipgloss.Style
}

// NewBalancesScreen creates the ranked balances screen
func NewBalancesScreen(services *ui.Services) *BalancesScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	s := &BalancesScreen{
		services: services,
		keyMap:   keyMap,
		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteBalances)),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Bold(true),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		totalStyle: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true).
			Margin(1, 0, 0, 0),

		panelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2),
	}
	s.recompute()
	return s
}

// Init initializes the balances screen
func (s *BalancesScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates
func (s *BalancesScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Export):
			s.export()
			return s, nil
		}

	case ui.CatalogMsg:
		s.recompute()
		return s, nil
	}
	return s, nil
}

// recompute rebuilds the ranked list from the current catalog and
// announces the result on the event bus.
func (s *BalancesScreen) recompute() {
	var catalog *pricing.Catalog
	if s.services.Prices != nil {
		catalog = s.services.Prices.Current()
	}
	balances := s.services.Balances.Balances()

	s.ranked = s.services.Ranker.Rank(balances, catalog.Lookup)
	s.total = wallet.TotalUSD(s.ranked)

	if s.services.Events != nil {
		_ = s.services.Events.Publish(events.BalancesRankedEvent{
			BaseEvent: events.NewBase(events.BalancesRanked),
			Shown:     len(s.ranked),
			TotalUSD:  s.total,
		})
	}
}

func (s *BalancesScreen) export() {
	if s.services.Exporter == nil || len(s.ranked) == 0 {
		s.statusLine = "Nothing to export"
		s.statusErr = true
		return
	}

	path, err := s.services.Exporter.Export(s.ranked, export.Options{
		Format: export.FormatCSV,
	})
	if err != nil {
		s.statusLine = "Export failed: " + err.Error()
		s.statusErr = true
		return
	}
	s.statusLine = "Exported to " + path
	s.statusErr = false
}

// View renders the balances table
func (s *BalancesScreen) View() string {
	var b strings.Builder
	b.WriteString(s.titleStyle.Render("◆ BALANCES"))
	b.WriteString("\n")

	if len(s.ranked) == 0 {
		b.WriteString(s.panelStyle.Render(s.mutedStyle.Render("No ranked balances to show.")))
		b.WriteString("\n")
		b.WriteString(s.helpBar.SetWidth(s.width).View())
		return b.String()
	}

	var table strings.Builder
	table.WriteString(s.headerStyle.Render(fmt.Sprintf("%-12s %-8s %14s %14s", "CHAIN", "TOKEN", "AMOUNT", "USD VALUE")))
	table.WriteString("\n")

	for _, row := range s.ranked {
		usd := "—"
		if row.Priced {
			usd = fmt.Sprintf("$%.2f", row.USDValue)
		}
		line := fmt.Sprintf("%-12s %-8s %14s %14s", row.Category, row.Symbol, row.FormattedAmount, usd)
		if row.Priced {
			table.WriteString(s.rowStyle.Render(line))
		} else {
			table.WriteString(s.mutedStyle.Render(line))
		}
		table.WriteString("\n")
	}

	table.WriteString(s.totalStyle.Render(fmt.Sprintf("Total: $%.2f", s.total)))

	b.WriteString(s.panelStyle.Render(table.String()))
	b.WriteString("\n")

	if s.statusLine != "" {
		if s.statusErr {
			b.WriteString(s.mutedStyle.Render(s.statusLine))
		} else {
			b.WriteString(s.totalStyle.Render(s.statusLine))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.helpBar.SetWidth(s.width).View())
	return b.String()
}

// SetSize updates the screen dimensions
func (s *BalancesScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}
