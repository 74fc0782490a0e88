// Package timetable implements the slot conflict engine: an immutable grid of
// course offerings, the conflict index derived from it, and the selection
// state machine that keeps conflicting slots from being picked together.
package timetable

import "sort"

// SlotCode identifies one offering in the grid, e.g. "A1", "TBB2" or "L31".
type SlotCode string

// CellRef addresses a cell by day and period index.
type CellRef struct {
	Day    int
	Period int
}

// Cell is the list of slots co-scheduled at one (day, period).
// Slot order is for display only.
type Cell struct {
	Ref   CellRef
	Slots []SlotCode
}

// Grid is the immutable timetable universe. Build it with NewGrid.
type Grid struct {
	days    []string
	periods []string
	cells   [][]Cell // [day][period]
	where   map[SlotCode]CellRef
	order   []SlotCode // grid order: day, period, position in cell
}

// NewGrid builds a grid from day names, period names and one row of cells per day.
// rows[d][p] lists the slots offered on day d during period p.
// Returns a *MalformedGridError if a cell is empty, a slot code is empty or
// repeated, or the rows do not line up with the days and periods.
func NewGrid(days, periods []string, rows [][][]SlotCode) (*Grid, error) {
	if len(days) == 0 {
		return nil, &MalformedGridError{Reason: errNoDays}
	}
	if len(periods) == 0 {
		return nil, &MalformedGridError{Reason: errNoPeriods}
	}
	if err := checkUniqueNames(days); err != nil {
		return nil, err
	}
	if err := checkUniqueNames(periods); err != nil {
		return nil, err
	}
	if len(rows) != len(days) {
		return nil, &MalformedGridError{Reason: errDayCount}
	}

	g := &Grid{
		days:    append([]string(nil), days...),
		periods: append([]string(nil), periods...),
		cells:   make([][]Cell, len(days)),
		where:   make(map[SlotCode]CellRef),
	}

	for d, row := range rows {
		if len(row) != len(periods) {
			return nil, &MalformedGridError{Reason: errRowLength, At: days[d]}
		}
		g.cells[d] = make([]Cell, len(periods))
		for p, slots := range row {
			ref := CellRef{Day: d, Period: p}
			if len(slots) == 0 {
				return nil, &MalformedGridError{Reason: errEmptyCell, At: g.describe(ref)}
			}
			cell := Cell{Ref: ref, Slots: make([]SlotCode, 0, len(slots))}
			for _, slot := range slots {
				if slot == "" {
					return nil, &MalformedGridError{Reason: errEmptySlotCode, At: g.describe(ref)}
				}
				if first, dup := g.where[slot]; dup {
					return nil, &MalformedGridError{
						Reason:  errDuplicateSlot,
						Slot:    slot,
						At:      g.describe(ref),
						FirstAt: g.describe(first),
					}
				}
				g.where[slot] = ref
				g.order = append(g.order, slot)
				cell.Slots = append(cell.Slots, slot)
			}
			g.cells[d][p] = cell
		}
	}

	return g, nil
}

func checkUniqueNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return &MalformedGridError{Reason: errDuplicateLabel, At: n}
		}
		seen[n] = true
	}
	return nil
}

// Days returns the day names in display order.
func (g *Grid) Days() []string {
	return append([]string(nil), g.days...)
}

// Periods returns the period names in display order.
func (g *Grid) Periods() []string {
	return append([]string(nil), g.periods...)
}

// NumDays returns the number of days.
func (g *Grid) NumDays() int { return len(g.days) }

// NumPeriods returns the number of periods.
func (g *Grid) NumPeriods() int { return len(g.periods) }

// NumSlots returns the number of distinct slot codes.
func (g *Grid) NumSlots() int { return len(g.order) }

// Cell returns the cell at ref.
func (g *Grid) Cell(ref CellRef) (Cell, bool) {
	if ref.Day < 0 || ref.Day >= len(g.days) || ref.Period < 0 || ref.Period >= len(g.periods) {
		return Cell{}, false
	}
	return g.cells[ref.Day][ref.Period].clone(), true
}

// Cells returns every cell, day by day, period by period.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.days)*len(g.periods))
	for _, row := range g.cells {
		for _, c := range row {
			out = append(out, c.clone())
		}
	}
	return out
}

// CellOf returns the cell that holds slot.
func (g *Grid) CellOf(slot SlotCode) (Cell, error) {
	ref, ok := g.where[slot]
	if !ok {
		return Cell{}, &UnknownSlotError{Slot: slot}
	}
	return g.cells[ref.Day][ref.Period].clone(), nil
}

// Has reports whether slot is part of the grid.
func (g *Grid) Has(slot SlotCode) bool {
	_, ok := g.where[slot]
	return ok
}

// Slots returns every slot code in grid order.
func (g *Grid) Slots() []SlotCode {
	return append([]SlotCode(nil), g.order...)
}

// Describe returns a human label for a cell, e.g. "Tue 8 - 9".
func (g *Grid) Describe(ref CellRef) string {
	return g.describe(ref)
}

func (g *Grid) describe(ref CellRef) string {
	day, period := "?", "?"
	if ref.Day >= 0 && ref.Day < len(g.days) {
		day = g.days[ref.Day]
	}
	if ref.Period >= 0 && ref.Period < len(g.periods) {
		period = g.periods[ref.Period]
	}
	return day + " " + period
}

func (c Cell) clone() Cell {
	return Cell{Ref: c.Ref, Slots: append([]SlotCode(nil), c.Slots...)}
}

// sortSlots sorts slot codes in place and returns them.
func sortSlots(slots []SlotCode) []SlotCode {
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}
