// Package export builds a presentation snapshot of a grid and a selection:
// every slot with its status and metadata, encoded as JSON, TOML or text.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTOML, FormatText:
		return f, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (want json, toml or text)", ErrUnknownFormat, s)
	}
}

// Snapshot is the read-only view of the engine state handed to renderers.
type Snapshot struct {
	Grid     string         `json:"grid" toml:"grid"`
	Title    string         `json:"title,omitempty" toml:"title,omitempty"`
	Days     []string       `json:"days" toml:"days"`
	Periods  []string       `json:"periods" toml:"periods"`
	Selected []SlotSnapshot `json:"selected" toml:"selected"`
	Blocked  []string       `json:"blocked" toml:"blocked"`
	Cells    []CellSnapshot `json:"cells" toml:"cell"`
}

// CellSnapshot is one (day, period) position and its slots.
type CellSnapshot struct {
	Day    string         `json:"day" toml:"day"`
	Period string         `json:"period" toml:"period"`
	Slots  []SlotSnapshot `json:"slots" toml:"slots"`
}

// SlotSnapshot describes a single slot.
type SlotSnapshot struct {
	Code      string   `json:"code" toml:"code"`
	Kind      string   `json:"kind" toml:"kind"`
	Status    string   `json:"status" toml:"status"`
	Where     string   `json:"where,omitempty" toml:"where,omitempty"`
	Label     string   `json:"label,omitempty" toml:"label,omitempty"`
	Tag       string   `json:"tag,omitempty" toml:"tag,omitempty"`
	BlockedBy []string `json:"blocked_by,omitempty" toml:"blocked_by,omitempty"`
}

// Build snapshots sel against the engine's grid. Selected slots are listed in
// pick order; blocked slots in code order.
func Build(name, title string, engine *timetable.Engine, sel timetable.Selection) *Snapshot {
	grid := engine.Grid()
	blocked := engine.BlockedSlots(sel)

	snap := &Snapshot{
		Grid:     name,
		Title:    title,
		Days:     grid.Days(),
		Periods:  grid.Periods(),
		Selected: []SlotSnapshot{},
		Blocked:  codes(blocked.Sorted()),
	}

	for _, cell := range grid.Cells() {
		cs := CellSnapshot{
			Day:    grid.Days()[cell.Ref.Day],
			Period: grid.Periods()[cell.Ref.Period],
			Slots:  make([]SlotSnapshot, len(cell.Slots)),
		}
		for i, slot := range cell.Slots {
			cs.Slots[i] = slotSnapshot(engine, sel, blocked, slot, "")
		}
		snap.Cells = append(snap.Cells, cs)
	}

	for _, slot := range sel.Slots() {
		cell, err := grid.CellOf(slot)
		if err != nil {
			continue
		}
		snap.Selected = append(snap.Selected, slotSnapshot(engine, sel, blocked, slot, grid.Describe(cell.Ref)))
	}

	return snap
}

func slotSnapshot(engine *timetable.Engine, sel timetable.Selection, blocked timetable.SlotSet, slot timetable.SlotCode, where string) SlotSnapshot {
	s := SlotSnapshot{
		Code:   string(slot),
		Kind:   string(engine.Kind(slot)),
		Status: timetable.StatusFree.String(),
		Where:  where,
	}
	switch {
	case sel.Has(slot):
		s.Status = timetable.StatusSelected.String()
		meta, _ := sel.Metadata(slot)
		s.Label = meta.Label
		s.Tag = meta.Tag
	case blocked.Has(slot):
		s.Status = timetable.StatusBlocked.String()
		by, _ := engine.BlockedBy(sel, slot)
		s.BlockedBy = codes(by)
	}
	return s
}

func codes(slots []timetable.SlotCode) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s)
	}
	return out
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, snap *Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(snap); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	case FormatText:
		_, err := io.WriteString(w, snap.Text())
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text renders the selection as a short plain-text summary, one slot per line.
func (s *Snapshot) Text() string {
	var b strings.Builder
	heading := s.Title
	if heading == "" {
		heading = s.Grid
	}
	fmt.Fprintf(&b, "%s\n", heading)
	if len(s.Selected) == 0 {
		b.WriteString("  (no slots selected)\n")
		return b.String()
	}
	for _, slot := range s.Selected {
		fmt.Fprintf(&b, "  %-6s %-6s %s", slot.Code, slot.Kind, slot.Where)
		if slot.Label != "" {
			fmt.Fprintf(&b, "  %s", slot.Label)
		}
		if slot.Tag != "" {
			fmt.Fprintf(&b, " [%s]", slot.Tag)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d selected, %d blocked\n", len(s.Selected), len(s.Blocked))
	return b.String()
}
