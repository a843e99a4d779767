package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/swap-terminal/internal/swap"
	"github.com/rovshanmuradov/swap-terminal/internal/ui"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/component"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/router"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/style"
)

type focusArea int

const (
	focusAmount focusArea = iota
	focusFrom
	focusTo
	focusSubmit
	focusAreaCount
)

// SwapScreen is the swap form: amount in, pair selection, live derived
// output, submit. All swap state lives in the engine; the screen only
// forwards intents and renders snapshots.
type SwapScreen struct {
	services *ui.Services
	width    int
	height   int
	keyMap   ui.KeyMap

	helpBar     *component.HelpBar
	amountInput textinput.Model

	focus      focusArea
	amountErr  error
	statusLine string
	statusErr  bool

	titleStyle    lipgloss.Style
	labelStyle    lipgloss.Style
	valueStyle    lipgloss.Style
	tokenStyle    lipgloss.Style
	focusedStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	successStyle  lipgloss.Style
	mutedStyle    lipgloss.Style
	buttonStyle   lipgloss.Style
	buttonFocus   lipgloss.Style
	disabledStyle lipgloss.Style
	panelStyle    lipgloss.Style
}

// NewSwapScreen creates the swap form screen
func NewSwapScreen(services *ui.Services) *SwapScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	amountInput := textinput.New()
	amountInput.Placeholder = "0.0"
	amountInput.CharLimit = 24
	amountInput.Width = 20
	amountInput.Focus()

	helpBar := component.NewHelpBar().
		SetKeyBindings(keyMap.ContextualHelp(ui.RouteSwap))

	return &SwapScreen{
		services:    services,
		keyMap:      keyMap,
		helpBar:     helpBar,
		amountInput: amountInput,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Width(14),

		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text),

		tokenStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		focusedStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1).
			Bold(true),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error),

		successStyle: lipgloss.NewStyle().
			Foreground(palette.Success),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		buttonStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		buttonFocus: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Secondary).
			Padding(0, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Secondary).
			Bold(true),

		disabledStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.BackgroundAlt),

		panelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2),
	}
}

// Init initializes the swap screen
func (s *SwapScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles screen updates
func (s *SwapScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case ui.CatalogMsg:
		// Derived values are recomputed from the engine on render; the
		// snapshot itself is already installed.
		return s, nil

	case ui.SwapResultMsg:
		s.onResult(msg.Result)
		return s, nil

	case ui.ErrorMsg:
		s.statusLine = msg.Error.Error()
		s.statusErr = true
		return s, nil

	case ui.SuccessMsg:
		s.statusLine = msg.Message
		s.statusErr = false
		return s, nil
	}

	if s.focus == focusAmount {
		return s, s.updateAmount(msg)
	}
	return s, nil
}

func (s *SwapScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keyMap.Tab):
		s.cycleFocus()
		return s, nil

	case key.Matches(msg, s.keyMap.Reverse):
		s.services.Engine.Reverse()
		s.syncAmountFromEngine()
		return s, nil

	case key.Matches(msg, s.keyMap.Submit):
		return s, s.submit()

	case key.Matches(msg, s.keyMap.Enter):
		if s.focus == focusSubmit {
			return s, s.submit()
		}

	case key.Matches(msg, s.keyMap.Left):
		s.cycleToken(-1)
		return s, nil

	case key.Matches(msg, s.keyMap.Right):
		s.cycleToken(1)
		return s, nil
	}

	if s.focus == focusAmount {
		return s, s.updateAmount(msg)
	}
	return s, nil
}

func (s *SwapScreen) cycleFocus() {
	s.focus = (s.focus + 1) % focusAreaCount
	if s.focus == focusAmount {
		s.amountInput.Focus()
	} else {
		s.amountInput.Blur()
	}
}

// cycleToken moves the focused side's selection through the catalog's
// symbol list, skipping the other side's token so from==to is never
// requested.
func (s *SwapScreen) cycleToken(dir int) {
	var side swap.Side
	switch s.focus {
	case focusFrom:
		side = swap.SideFrom
	case focusTo:
		side = swap.SideTo
	default:
		return
	}

	symbols := s.services.Engine.Symbols()
	if len(symbols) < 2 {
		return
	}

	st := s.services.Engine.State()
	current, other := st.FromSymbol, st.ToSymbol
	if side == swap.SideTo {
		current, other = st.ToSymbol, st.FromSymbol
	}

	idx := 0
	for i, sym := range symbols {
		if sym == current {
			idx = i
			break
		}
	}

	for range symbols {
		idx = (idx + dir + len(symbols)) % len(symbols)
		if symbols[idx] != other {
			break
		}
	}
	s.services.Engine.SelectToken(side, symbols[idx])
}

// updateAmount feeds a message to the amount field and mirrors its
// value into the engine. A non-numeric value is a field-level
// validation failure; it never blocks other interactions.
func (s *SwapScreen) updateAmount(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.amountInput, cmd = s.amountInput.Update(msg)

	raw := strings.TrimSpace(s.amountInput.Value())
	if raw == "" {
		s.amountErr = nil
		s.services.Engine.SetAmountFrom(0)
		return cmd
	}

	value, err := swap.ParseAmount(raw)
	switch {
	case errors.Is(err, swap.ErrAmountNotNumber):
		s.amountErr = err
		s.services.Engine.SetAmountFrom(0)
	default:
		// Non-positive values are stored unclamped; CanSubmit judges
		// them separately.
		s.amountErr = err
		s.services.Engine.SetAmountFrom(value)
	}
	return cmd
}

func (s *SwapScreen) syncAmountFromEngine() {
	st := s.services.Engine.State()
	if st.AmountFrom == 0 {
		s.amountInput.SetValue("")
	} else {
		s.amountInput.SetValue(swap.FormatInputAmount(st.AmountFrom))
	}
	s.amountErr = nil
}

func (s *SwapScreen) submit() tea.Cmd {
	if _, err := swap.ParseAmount(s.amountInput.Value()); err != nil {
		s.amountErr = err
		return nil
	}

	resultCh, err := s.services.Engine.Submit(context.Background())
	if err != nil {
		s.statusLine = "Swap is not available right now"
		s.statusErr = true
		return nil
	}

	s.statusLine = "Submitting swap…"
	s.statusErr = false

	return func() tea.Msg {
		return ui.SwapResultMsg{Result: <-resultCh}
	}
}

func (s *SwapScreen) onResult(result swap.Result) {
	if result.Err != nil {
		s.statusLine = "Swap failed: " + result.Err.Error()
		s.statusErr = true
		return
	}
	s.statusLine = result.Message
	s.statusErr = false
	s.amountInput.SetValue("")
	s.amountErr = nil
}

// View renders the swap form
func (s *SwapScreen) View() string {
	engine := s.services.Engine
	st := engine.State()

	var b strings.Builder
	b.WriteString(s.titleStyle.Render("⇄ SWAP"))
	b.WriteString("\n")

	if !engine.Loaded() {
		b.WriteString(s.mutedStyle.Render("Loading prices…"))
		b.WriteString("\n")
		b.WriteString(s.helpBar.SetWidth(s.width).View())
		return b.String()
	}

	fromToken := s.renderToken(st.FromSymbol, s.focus == focusFrom)
	toToken := s.renderToken(st.ToSymbol, s.focus == focusTo)

	var form strings.Builder
	form.WriteString(s.labelStyle.Render("You send"))
	form.WriteString(s.amountInput.View())
	form.WriteString("  ")
	form.WriteString(fromToken)
	form.WriteString("\n")

	if s.amountErr != nil {
		form.WriteString(s.labelStyle.Render(""))
		form.WriteString(s.errorStyle.Render(capitalize(s.amountErr.Error())))
		form.WriteString("\n")
	}

	derived := engine.DeriveAmountTo()
	display := derived
	if display == "" {
		display = s.mutedStyle.Render("—")
	} else {
		display = s.valueStyle.Render(display)
	}

	form.WriteString(s.labelStyle.Render("You receive"))
	form.WriteString(display)
	form.WriteString("  ")
	form.WriteString(toToken)
	form.WriteString("\n\n")

	form.WriteString(s.renderButton(st))

	b.WriteString(s.panelStyle.Render(form.String()))
	b.WriteString("\n")

	if s.statusLine != "" {
		if s.statusErr {
			b.WriteString(s.errorStyle.Render(s.statusLine))
		} else {
			b.WriteString(s.successStyle.Render(s.statusLine))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.helpBar.SetWidth(s.width).View())
	return b.String()
}

func (s *SwapScreen) renderToken(symbol string, focused bool) string {
	if symbol == "" {
		symbol = "···"
	}
	label := fmt.Sprintf("◀ %s ▶", symbol)
	if focused {
		return s.focusedStyle.Render(label)
	}
	return s.tokenStyle.Render(label)
}

func (s *SwapScreen) renderButton(st swap.State) string {
	switch {
	case st.Submitting:
		return s.disabledStyle.Render("Submitting…")
	case !s.services.Engine.CanSubmit():
		return s.disabledStyle.Render("Confirm Swap")
	case s.focus == focusSubmit:
		return s.buttonFocus.Render("Confirm Swap")
	default:
		return s.buttonStyle.Render("Confirm Swap")
	}
}

// SetSize updates the screen dimensions
func (s *SwapScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
