package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/swap-terminal/internal/ui/style"
)

// HelpBar renders the keyboard shortcuts available on a screen
type HelpBar struct {
	keyBindings []key.Binding
	width       int

	keyStyle       lipgloss.Style
	descStyle      lipgloss.Style
	sepStyle       lipgloss.Style
	containerStyle lipgloss.Style
}

// NewHelpBar creates a new help bar component
func NewHelpBar() *HelpBar {
	palette := style.DefaultPalette()

	return &HelpBar{
		keyBindings: make([]key.Binding, 0),
		width:       80,

		keyStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		descStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		sepStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		containerStyle: lipgloss.NewStyle().
			Padding(0, 1).
			Margin(1, 0, 0, 0),
	}
}

// SetKeyBindings sets the key bindings to display
func (h *HelpBar) SetKeyBindings(bindings []key.Binding) *HelpBar {
	h.keyBindings = bindings
	return h
}

// SetWidth sets the help bar width
func (h *HelpBar) SetWidth(width int) *HelpBar {
	h.width = width
	return h
}

// View renders the help bar
func (h *HelpBar) View() string {
	if len(h.keyBindings) == 0 {
		return ""
	}

	items := make([]string, 0, len(h.keyBindings))
	for _, binding := range h.keyBindings {
		if !binding.Enabled() {
			continue
		}
		help := binding.Help()
		items = append(items,
			h.keyStyle.Render(help.Key)+" "+h.descStyle.Render(help.Desc))
	}

	separator := h.sepStyle.Render(" • ")
	return h.containerStyle.Width(h.width).Render(strings.Join(items, separator))
}
