package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

func (a *App) showCmd() *cobra.Command {
	var selected []string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the grid",
		Long: `Print the configured grid with one row per period and one column per day.

Slots passed with --select are toggled in order first; selected slots
are shown in green and the slots they block are crossed out.

Example:
  slotpick show --select A1,L2,E2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			def, engine, err := a.loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			sel, err := applySelection(engine, selected)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(def.DisplayTitle()))
			printGrid(out, engine, sel, termWidth())
			fmt.Fprintln(out)
			printLegend(out)
			printCounts(out, engine, sel)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&selected, "select", "s", nil, "Slots to select, in order (comma-separated)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

const cellGap = "  "

// printGrid writes the grid as a plain table. Columns are sized from the
// uncolored cell text so color codes do not disturb alignment. Days that do
// not fit in width are dropped from the right and reported.
func printGrid(w io.Writer, engine *timetable.Engine, sel timetable.Selection, width int) {
	g := engine.Grid()
	blocked := engine.BlockedSlots(sel)

	periodW := 0
	for _, p := range g.Periods() {
		periodW = max(periodW, runewidth.StringWidth(p))
	}

	colW := make([]int, g.NumDays())
	for d, day := range g.Days() {
		colW[d] = runewidth.StringWidth(day)
		for p := 0; p < g.NumPeriods(); p++ {
			cell, _ := g.Cell(timetable.CellRef{Day: d, Period: p})
			colW[d] = max(colW[d], runewidth.StringWidth(plainCell(cell)))
		}
	}

	days := g.NumDays()
	used := periodW
	for d := 0; d < g.NumDays(); d++ {
		used += len(cellGap) + colW[d]
		if used > width && d > 0 {
			days = d
			break
		}
	}

	header := padRight("", periodW)
	for d := 0; d < days; d++ {
		header += cellGap + formatHeader(padRight(g.Days()[d], colW[d]))
	}
	fmt.Fprintln(w, strings.TrimRight(header, " "))

	for p, period := range g.Periods() {
		line := formatMuted(padRight(period, periodW))
		for d := 0; d < days; d++ {
			cell, _ := g.Cell(timetable.CellRef{Day: d, Period: p})
			parts := make([]string, len(cell.Slots))
			for i, slot := range cell.Slots {
				parts[i] = formatSlot(slot, slotStatus(sel, blocked, slot))
			}
			pad := colW[d] - runewidth.StringWidth(plainCell(cell))
			line += cellGap + strings.Join(parts, " ") + strings.Repeat(" ", pad)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	if days < g.NumDays() {
		fmt.Fprintf(w, "%s\n", formatMuted(fmt.Sprintf("(%d more days; widen the terminal to see them)", g.NumDays()-days)))
	}
}

func printLegend(w io.Writer) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		formatSlot("selected", timetable.StatusSelected),
		formatSlot("blocked", timetable.StatusBlocked),
		formatSlot("L1", timetable.StatusFree)+" lab",
		formatSlot("theory", timetable.StatusFree),
	)
}

func printCounts(w io.Writer, engine *timetable.Engine, sel timetable.Selection) {
	blocked := len(engine.BlockedSlots(sel))
	free := engine.Grid().NumSlots() - sel.Len() - blocked
	fmt.Fprintf(w, "%d selected, %d blocked, %d free\n", sel.Len(), blocked, free)
}

func slotStatus(sel timetable.Selection, blocked timetable.SlotSet, slot timetable.SlotCode) timetable.Status {
	switch {
	case sel.Has(slot):
		return timetable.StatusSelected
	case blocked.Has(slot):
		return timetable.StatusBlocked
	}
	return timetable.StatusFree
}

func plainCell(cell timetable.Cell) string {
	parts := make([]string, len(cell.Slots))
	for i, s := range cell.Slots {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
