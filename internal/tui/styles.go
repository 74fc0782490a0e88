package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/slotpick/internal/timetable"
	"github.com/javiermolinar/slotpick/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color
	colorBlocked     lipgloss.Color

	TitleStyle lipgloss.Style

	// Grid
	DayHeaderStyle      lipgloss.Style
	DayHeaderFocusStyle lipgloss.Style
	PeriodColumnStyle   lipgloss.Style
	CellStyle           lipgloss.Style
	CellFocusStyle      lipgloss.Style
	BorderStyle         lipgloss.Style

	// Slots by status and kind
	SlotTheoryStyle   lipgloss.Style
	SlotLabStyle      lipgloss.Style
	SlotSelectedStyle lipgloss.Style
	SlotBlockedStyle  lipgloss.Style

	// Footer
	StatsBarStyle      lipgloss.Style
	LegendStyle        lipgloss.Style
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
	StatusStyle        lipgloss.Style
	ErrorStyle         lipgloss.Style
	HelpStyle          lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning
	s.colorBlocked = palette.Blocked

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.DayHeaderFocusStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent)

	s.PeriodColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Padding(0, 1)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Padding(0, 1)

	s.CellFocusStyle = s.CellStyle.
		Background(s.colorBgHighlight)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.SlotTheoryStyle = lipgloss.NewStyle().
		Foreground(palette.Theory)

	s.SlotLabStyle = lipgloss.NewStyle().
		Foreground(palette.Lab).
		Background(palette.LabBg)

	s.SlotSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnSelected).
		Background(palette.SelectedBg)

	s.SlotBlockedStyle = lipgloss.NewStyle().
		Faint(true).
		Strikethrough(true).
		Foreground(palette.BlockedFg)

	s.StatsBarStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.LegendStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		BorderBackground(s.colorBg).
		Background(s.colorBgHighlight).
		Foreground(s.colorFg).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		BorderBackground(s.colorBg).
		Background(s.colorBgSelection).
		Foreground(s.colorFg).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.ErrorStyle = s.StatusStyle.
		Foreground(s.colorBlocked)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		Foreground(s.colorFg)

	return s
}

// SlotStyle returns the style for a slot code in the grid.
func (s *Styles) SlotStyle(status timetable.Status, kind timetable.Kind) lipgloss.Style {
	switch {
	case status == timetable.StatusSelected:
		return s.SlotSelectedStyle
	case status == timetable.StatusBlocked:
		return s.SlotBlockedStyle
	case kind == timetable.KindLab:
		return s.SlotLabStyle
	default:
		return s.SlotTheoryStyle
	}
}

// CursorStyle decorates the slot under the cursor.
func (s *Styles) CursorStyle(base lipgloss.Style) lipgloss.Style {
	return base.Underline(true).Reverse(true)
}
