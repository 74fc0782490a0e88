// Package griddef reads and writes timetable grid definitions.
//
// A definition is a TOML document listing the periods, one table per day with
// its cells in compact notation ("A1+L2" is a cell holding A1 and L2), and an
// optional list of explicit conflict pairs:
//
//	name = "example"
//	periods = ["8 - 9", "9 - 10"]
//	conflicts = [["A1", "L2"]]
//
//	[[day]]
//	name = "Tue"
//	cells = ["TEE1+L1", "A1+L2"]
package griddef

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

// Definition errors.
var (
	ErrEmptyName    = errors.New("grid name cannot be empty")
	ErrInvalidName  = errors.New("grid name may only contain letters, digits, '-', '_' and '.'")
	ErrBadConflict  = errors.New("conflict entries must name exactly two slots")
	ErrNotFound     = errors.New("grid not found")
	ErrNoDefinition = errors.New("no grid configured")
	ErrReservedName = errors.New("name is used by a built-in grid")
)

// cellSeparator joins co-scheduled slots in the compact cell notation.
const cellSeparator = "+"

// Definition is the serializable form of a timetable grid.
type Definition struct {
	Name      string     `toml:"name"`
	Title     string     `toml:"title,omitempty"`
	Periods   []string   `toml:"periods"`
	Conflicts [][]string `toml:"conflicts,omitempty"`
	Days      []Day      `toml:"day"`
}

// Day is one row of the grid.
type Day struct {
	Name  string   `toml:"name"`
	Cells []string `toml:"cells"`
}

// Parse decodes a TOML grid definition and checks that it builds a valid grid.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing grid definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadFile reads a grid definition from path.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Marshal encodes the definition as TOML.
func (d *Definition) Marshal() ([]byte, error) {
	data, err := toml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshaling grid definition: %w", err)
	}
	return data, nil
}

// Validate checks the name and builds the grid and conflict index once.
func (d *Definition) Validate() error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if _, err := d.Engine(); err != nil {
		return err
	}
	return nil
}

// ValidateName checks that name is usable as a catalog key.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// Grid builds the timetable grid described by d.
func (d *Definition) Grid() (*timetable.Grid, error) {
	days := make([]string, len(d.Days))
	rows := make([][][]timetable.SlotCode, len(d.Days))
	for i, day := range d.Days {
		days[i] = day.Name
		rows[i] = make([][]timetable.SlotCode, len(day.Cells))
		for p, cell := range day.Cells {
			rows[i][p] = ParseCell(cell)
		}
	}
	grid, err := timetable.NewGrid(days, d.Periods, rows)
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", d.Name, err)
	}
	return grid, nil
}

// Pairs returns the explicit conflict pairs.
func (d *Definition) Pairs() ([]timetable.Pair, error) {
	pairs := make([]timetable.Pair, 0, len(d.Conflicts))
	for i, c := range d.Conflicts {
		if len(c) != 2 {
			return nil, fmt.Errorf("conflict %d %v: %w", i+1, c, ErrBadConflict)
		}
		a := timetable.SlotCode(strings.TrimSpace(c[0]))
		b := timetable.SlotCode(strings.TrimSpace(c[1]))
		pairs = append(pairs, timetable.Pair{A: a, B: b})
	}
	return pairs, nil
}

// Engine builds the grid and its conflict index.
func (d *Definition) Engine(opts ...timetable.Option) (*timetable.Engine, error) {
	grid, err := d.Grid()
	if err != nil {
		return nil, err
	}
	pairs, err := d.Pairs()
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", d.Name, err)
	}
	engine, err := timetable.NewEngine(grid, pairs, opts...)
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", d.Name, err)
	}
	return engine, nil
}

// DisplayTitle returns the title, or the name when no title is set.
func (d *Definition) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// ParseCell splits compact cell notation into slot codes.
// Blank entries are skipped, so "A1+ +L2" and "A1+L2" are the same cell.
func ParseCell(cell string) []timetable.SlotCode {
	parts := strings.Split(cell, cellSeparator)
	out := make([]timetable.SlotCode, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, timetable.SlotCode(p))
		}
	}
	return out
}

// FormatCell joins slot codes into compact cell notation.
func FormatCell(slots []timetable.SlotCode) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = string(s)
	}
	return strings.Join(parts, cellSeparator)
}

// FromGrid converts a grid back into a definition.
func FromGrid(name, title string, grid *timetable.Grid, pairs []timetable.Pair) *Definition {
	def := &Definition{
		Name:    name,
		Title:   title,
		Periods: grid.Periods(),
	}
	for d, dayName := range grid.Days() {
		day := Day{Name: dayName, Cells: make([]string, grid.NumPeriods())}
		for p := range day.Cells {
			cell, _ := grid.Cell(timetable.CellRef{Day: d, Period: p})
			day.Cells[p] = FormatCell(cell.Slots)
		}
		def.Days = append(def.Days, day)
	}
	for _, pair := range pairs {
		def.Conflicts = append(def.Conflicts, []string{string(pair.A), string(pair.B)})
	}
	return def
}
