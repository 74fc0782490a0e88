package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants for boxed rendering.
const (
	footerCompact = 2

	footerBaseLines    = 4 // Stats(1) + Legend(1) + Status(1) + Help(1)
	promptBorderLines  = 2
	promptContentLines = 1

	footerMinHeight = footerBaseLines + promptBorderLines + promptContentLines

	// tableChrome is top border, header, header separator and bottom border.
	tableChrome = 4
)

// Layout stores dimensions and styles derived from the window size.
type Layout struct {
	InnerW int
	InnerH int

	FooterH int
	GridH   int

	FooterAuxStyle lipgloss.Style
	StatusAuxStyle lipgloss.Style
	HelpAuxStyle   lipgloss.Style

	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
	PromptContentWidth int
}

func promptContentWidth(styles *Styles, innerW int) int {
	promptFrameW, _ := styles.PromptStyle.GetFrameSize()
	promptWidth := max(innerW-promptFrameW, 0)
	if promptWidth < 20 && innerW >= promptFrameW+20 {
		promptWidth = 20
	}
	return promptWidth
}

// buildLayout splits the window between the grid and the footer. The full
// footer is only shown when the whole grid still fits above it.
func (m Model) buildLayout(width, height int) Layout {
	styles := m.styles
	appH, appV := styles.AppStyle.GetFrameSize()
	innerW := max(width-appH, 0)
	innerH := max(height-appV, 0)

	footerH := footerCompact
	if innerH >= m.gridHeightNeeded()+footerMinHeight {
		footerH = footerMinHeight
	}
	if innerH < footerH {
		footerH = innerH
	}

	gridH := max(innerH-footerH, 2)

	footerAuxStyle := lipgloss.NewStyle().
		Padding(0, 0).
		Width(innerW).
		Background(styles.colorBg)
	statusAuxStyle := styles.StatusStyle.Inherit(footerAuxStyle)
	if m.statusErr {
		statusAuxStyle = styles.ErrorStyle.Inherit(footerAuxStyle)
	}
	helpAuxStyle := styles.HelpStyle.Inherit(lipgloss.NewStyle().
		Padding(0, 1).
		Width(max(0, innerW-2)).
		Background(styles.colorBg))

	promptWidth := promptContentWidth(styles, innerW)

	return Layout{
		InnerW:             innerW,
		InnerH:             innerH,
		FooterH:            footerH,
		GridH:              gridH,
		FooterAuxStyle:     footerAuxStyle,
		StatusAuxStyle:     statusAuxStyle,
		HelpAuxStyle:       helpAuxStyle,
		PromptStyle:        styles.PromptStyle.Width(promptWidth),
		PromptFocusedStyle: styles.PromptFocusedStyle.Width(promptWidth),
		PromptContentWidth: promptWidth,
	}
}

// gridHeightNeeded is the number of lines the table uses to show every period.
func (m Model) gridHeightNeeded() int {
	return m.grid().NumPeriods() + tableChrome
}
