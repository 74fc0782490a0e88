package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// GridStyles are the styles of the timetable frame.
type GridStyles struct {
	Period   lipgloss.Style
	Day      lipgloss.Style
	DayFocus lipgloss.Style
	Border   lipgloss.Style
}

// Grid is a timetable ready to render: one column per day, one row per
// period. Cells and CellStyles are indexed [period][day].
type Grid struct {
	Width  int
	Height int

	Days     []string
	FocusDay int
	Periods  []string

	Cells      [][]string
	CellStyles [][]lipgloss.Style

	Styles GridStyles
	Bg     lipgloss.Color
}

// RenderGrid renders the timetable as a lipgloss table with the periods in
// the first column and the focused day marked in the header.
func RenderGrid(g Grid) string {
	if g.Height <= 0 {
		return ""
	}

	headers, focusCols := HeaderLabels("", g.Days, g.FocusDay)
	rows := make([][]string, len(g.Periods))
	for p, period := range g.Periods {
		rows[p] = []string{period}
		if p < len(g.Cells) {
			rows[p] = append(rows[p], g.Cells[p]...)
		}
	}

	t := table.New().
		Headers(headers...).
		Width(max(g.Width-2, 0)).
		Height(g.Height).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(g.Styles.Border).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case col == 0:
				return g.Styles.Period
			case row == table.HeaderRow && focusCols[col]:
				return g.Styles.DayFocus
			case row == table.HeaderRow:
				return g.Styles.Day
			case row < 0 || row >= len(g.CellStyles) || col-1 >= len(g.CellStyles[row]):
				return lipgloss.NewStyle()
			}
			return g.CellStyles[row][col-1]
		})

	return PlaceBox(g.Width, g.Height, lipgloss.Top, t.Render(), g.Bg)
}
