package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/rovshanmuradov/swap-terminal/internal/ui"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/component"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/router"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/style"
)

const logRefreshInterval = 500 * time.Millisecond

type logTickMsg time.Time

// LogsScreen tails the in-memory log buffer.
type LogsScreen struct {
	services *ui.Services
	width    int
	height   int
	keyMap   ui.KeyMap

	helpBar *component.HelpBar

	titleStyle lipgloss.Style
	timeStyle  lipgloss.Style
	mutedStyle lipgloss.Style
	lineStyle  lipgloss.Style
	warnStyle  lipgloss.Style
	errStyle   lipgloss.Style
	panelStyle lipgloss.Style
}

// NewLogsScreen creates the log viewer screen
func NewLogsScreen(services *ui.Services) *LogsScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	return &LogsScreen{
		services: services,
		keyMap:   keyMap,
		helpBar: component.NewHelpBar().
			SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		timeStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		lineStyle: lipgloss.NewStyle().
			Foreground(palette.Text),

		warnStyle: lipgloss.NewStyle().
			Foreground(palette.Warning),

		errStyle: lipgloss.NewStyle().
			Foreground(palette.Error),

		panelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2),
	}
}

func logTick() tea.Cmd {
	return tea.Tick(logRefreshInterval, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

// Init initializes the logs screen
func (s *LogsScreen) Init() tea.Cmd {
	return logTick()
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, s.keyMap.Quit) {
			return s, tea.Quit
		}

	case logTickMsg:
		return s, logTick()
	}
	return s, nil
}

// View renders the recent log entries
func (s *LogsScreen) View() string {
	var b strings.Builder
	b.WriteString(s.titleStyle.Render("≡ LOGS"))
	b.WriteString("\n")

	limit := s.height - 10
	if limit < 5 {
		limit = 5
	}
	entries := s.services.LogBuffer.Recent(limit)

	if len(entries) == 0 {
		b.WriteString(s.panelStyle.Render(s.mutedStyle.Render("No log entries yet.")))
		b.WriteString("\n")
		b.WriteString(s.helpBar.SetWidth(s.width).View())
		return b.String()
	}

	var body strings.Builder
	for i, entry := range entries {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(s.timeStyle.Render(entry.Timestamp.Format("15:04:05")))
		body.WriteString(" ")
		body.WriteString(s.levelStyle(entry.Level).Render(entry.Level.CapitalString()))
		body.WriteString(" ")
		body.WriteString(s.lineStyle.Render(entry.Message))
	}

	total := s.services.LogBuffer.Total()
	if uint64(len(entries)) < total {
		body.WriteString("\n")
		body.WriteString(s.mutedStyle.Render(fmt.Sprintf("showing last %d of %d entries", len(entries), total)))
	}

	b.WriteString(s.panelStyle.Render(body.String()))
	b.WriteString("\n")
	b.WriteString(s.helpBar.SetWidth(s.width).View())
	return b.String()
}

func (s *LogsScreen) levelStyle(level zapcore.Level) lipgloss.Style {
	switch {
	case level >= zapcore.ErrorLevel:
		return s.errStyle
	case level == zapcore.WarnLevel:
		return s.warnStyle
	default:
		return s.mutedStyle
	}
}

// SetSize updates the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}
