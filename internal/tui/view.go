package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/slotpick/internal/timetable"
	"github.com/javiermolinar/slotpick/internal/tui/input"
	"github.com/javiermolinar/slotpick/internal/tui/view"
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		EmptyPlaceholder: "Loading...",
	})
}

func (m Model) renderAppContent() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	layout := m.buildLayout(m.width, m.height)
	if layout.InnerW <= 0 || layout.InnerH <= 0 {
		return "Terminal too small"
	}

	gridBox := view.RenderGrid(m.gridView(layout))
	footerBox := view.RenderFooter(m.footerView(layout))

	content := lipgloss.JoinVertical(lipgloss.Left, gridBox, footerBox)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) gridView(layout Layout) view.Grid {
	g := m.grid()
	cells, cellStyles := m.buildGridCells()
	return view.Grid{
		Width:      layout.InnerW,
		Height:     layout.GridH,
		Days:       g.Days(),
		FocusDay:   m.cursor.Day,
		Periods:    g.Periods(),
		Cells:      cells,
		CellStyles: cellStyles,
		Styles: view.GridStyles{
			Period:   m.styles.PeriodColumnStyle,
			Day:      m.styles.DayHeaderStyle,
			DayFocus: m.styles.DayHeaderFocusStyle,
			Border:   m.styles.BorderStyle,
		},
		Bg: m.styles.colorBg,
	}
}

// buildGridCells renders every cell, indexed [period][day].
func (m Model) buildGridCells() ([][]string, [][]lipgloss.Style) {
	g := m.grid()
	sel := m.session.Selection()
	blocked := m.session.Blocked()

	rows := make([][]string, 0, g.NumPeriods())
	cellStyles := make([][]lipgloss.Style, 0, g.NumPeriods())

	for p := 0; p < g.NumPeriods(); p++ {
		row := make([]string, 0, g.NumDays())
		rowStyles := make([]lipgloss.Style, 0, g.NumDays())

		for d := 0; d < g.NumDays(); d++ {
			focused := d == m.cursor.Day && p == m.cursor.Period
			cell, _ := g.Cell(timetable.CellRef{Day: d, Period: p})

			cellStyle := m.styles.CellStyle
			if focused {
				cellStyle = m.styles.CellFocusStyle
			}

			parts := make([]string, len(cell.Slots))
			for i, slot := range cell.Slots {
				status := timetable.StatusFree
				switch {
				case sel.Has(slot):
					status = timetable.StatusSelected
				case blocked.Has(slot):
					status = timetable.StatusBlocked
				}
				style := m.styles.SlotStyle(status, timetable.KindOf(slot)).
					Inherit(cellStyle.UnsetPadding())
				if focused && i == m.cursor.Index {
					style = m.styles.CursorStyle(style)
				}
				parts[i] = style.Render(string(slot))
			}

			row = append(row, strings.Join(parts, cellStyle.UnsetPadding().Render(" ")))
			rowStyles = append(rowStyles, cellStyle)
		}

		rows = append(rows, row)
		cellStyles = append(cellStyles, rowStyles)
	}

	return rows, cellStyles
}

func (m Model) footerView(layout Layout) view.Footer {
	var prompt []string
	if m.mode != ModeNormal {
		width := layout.PromptContentWidth
		prompt = view.ClampPromptLines(m.promptLines(width), promptContentLines, width)
	}

	return view.Footer{
		Width:      layout.InnerW,
		Height:     layout.FooterH,
		Full:       layout.FooterH >= footerMinHeight,
		Stats:      m.renderStats(),
		Legend:     m.renderLegend(),
		Status:     m.statusText(),
		Help:       m.renderHelp(),
		Prompt:     prompt,
		PromptRows: promptContentLines,
		Styles: view.FooterStyles{
			Line:        layout.FooterAuxStyle,
			Status:      layout.StatusAuxStyle,
			Help:        layout.HelpAuxStyle,
			Prompt:      layout.PromptStyle,
			PromptFocus: layout.PromptFocusedStyle,
		},
		Bg: m.styles.colorBg,
	}
}

func (m Model) promptLines(width int) []string {
	label := "label"
	var suggestions []string
	if m.mode == ModeJump {
		label = "jump"
		if v := m.prompt.Value(); v != "" {
			suggestions = input.MatchingSlots(v, m.slotCodes())
		}
	} else if m.labelSlot != "" {
		label = "label " + string(m.labelSlot)
	}
	return view.PromptLines(view.PromptState{
		Label:  label,
		Value:  m.prompt.Value(),
		Cursor: "█",
	}, width, suggestions)
}

// renderStats renders the title and selection counts.
func (m Model) renderStats() string {
	title := m.gridTitle
	if title == "" {
		title = m.gridName
	}
	selected := m.session.Selection().Len()
	blocked := len(m.session.Blocked())
	free := m.grid().NumSlots() - selected - blocked
	return fmt.Sprintf("%s · %d selected · %d blocked · %d free", title, selected, blocked, free)
}

func (m Model) renderLegend() string {
	s := m.styles
	return strings.Join([]string{
		s.SlotTheoryStyle.Render("theory"),
		s.SlotLabStyle.Render("lab"),
		s.SlotSelectedStyle.Render("selected"),
		s.SlotBlockedStyle.Render("blocked"),
	}, s.LegendStyle.Render("  "))
}

// statusText returns the status message, or a description of the slot under
// the cursor when there is none.
func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	slot, ok := m.currentSlot()
	if !ok {
		return " "
	}
	parts := []string{
		string(slot),
		m.grid().Describe(timetable.CellRef{Day: m.cursor.Day, Period: m.cursor.Period}),
		string(m.engine().Kind(slot)),
	}
	sel := m.session.Selection()
	if meta, ok := sel.Metadata(slot); ok {
		desc := "selected"
		if meta.Label != "" {
			desc += " as " + meta.Label
		}
		if meta.Tag != "" {
			desc += " [" + meta.Tag + "]"
		}
		parts = append(parts, desc)
	} else if blockers, _ := m.engine().BlockedBy(sel, slot); len(blockers) > 0 {
		names := make([]string, len(blockers))
		for i, b := range blockers {
			names[i] = string(b)
		}
		parts = append(parts, "blocked by "+strings.Join(names, ", "))
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderHelp() string {
	switch m.mode {
	case ModeLabel:
		return "[enter] select  [esc] cancel  label #tag"
	case ModeJump:
		return "[enter] go  [tab] complete  [esc] cancel"
	}
	return "[hjkl] move  [tab] next slot  [space] toggle  [t] label  [u] undo  [C] clear  [/] jump  [y] copy  [e] export  [q] quit"
}
