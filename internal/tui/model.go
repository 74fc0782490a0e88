// Package tui provides the terminal user interface for slotpick.
package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/slotpick/internal/config"
	"github.com/javiermolinar/slotpick/internal/export"
	"github.com/javiermolinar/slotpick/internal/timetable"
	"github.com/javiermolinar/slotpick/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeLabel       // Typing a label for the slot about to be selected
	ModeJump        // Typing a slot code to move the cursor to
)

// Position is a cursor position: a cell of the grid and a slot within it.
type Position struct {
	Day    int
	Period int
	Index  int // Slot index within the cell
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	session   *timetable.Session
	gridName  string
	gridTitle string

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	cursor    Position
	mode      Mode
	labelSlot timetable.SlotCode // Slot waiting for its label in ModeLabel

	// Components
	prompt textinput.Model

	// Snapshot output
	snapshotDir string
	now         func() time.Time

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusErr  bool      // Render statusMsg as an error
	statusTime time.Time // When to clear message

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithGridInfo sets the grid name used in snapshots and the title shown in the stats bar.
func WithGridInfo(name, title string) ModelOption {
	return func(m *Model) {
		m.gridName = name
		m.gridTitle = title
	}
}

// WithSnapshotDir sets the directory snapshots are written to.
func WithSnapshotDir(dir string) ModelOption {
	return func(m *Model) {
		m.snapshotDir = dir
	}
}

// WithClock overrides the clock used for status expiry and snapshot names.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model for engine.
func New(engine *timetable.Engine, cfg *config.Config, opts ...ModelOption) *Model {
	themeName := ""
	if cfg != nil {
		themeName = cfg.UI.Theme
	}
	t, err := theme.Load(themeName)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.TextStyle = styles.HelpStyle
	ti.Cursor.Style = styles.StatusStyle

	m := &Model{
		session:     timetable.NewSession(engine),
		gridName:    "grid",
		theme:       t,
		styles:      styles,
		mode:        ModeNormal,
		prompt:      ti,
		snapshotDir: ".",
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Session returns the selection session driven by the model.
func (m Model) Session() *timetable.Session {
	return m.session
}

func (m Model) engine() *timetable.Engine {
	return m.session.Engine()
}

func (m Model) grid() *timetable.Grid {
	return m.session.Engine().Grid()
}

// currentCell returns the cell under the cursor.
func (m Model) currentCell() (timetable.Cell, bool) {
	return m.grid().Cell(timetable.CellRef{Day: m.cursor.Day, Period: m.cursor.Period})
}

// currentSlot returns the slot under the cursor.
func (m Model) currentSlot() (timetable.SlotCode, bool) {
	cell, ok := m.currentCell()
	if !ok || m.cursor.Index < 0 || m.cursor.Index >= len(cell.Slots) {
		return "", false
	}
	return cell.Slots[m.cursor.Index], true
}

// snapshot captures the current selection for export.
func (m Model) snapshot() *export.Snapshot {
	title := m.gridTitle
	if title == "" {
		title = m.gridName
	}
	return export.Build(m.gridName, title, m.engine(), m.session.Selection())
}

// Run starts the TUI, logging events to DebugLogPath when debug is set.
func Run(engine *timetable.Engine, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	if wd, err := os.Getwd(); err == nil {
		opts = append([]ModelOption{WithSnapshotDir(wd)}, opts...)
	}

	model := New(engine, cfg, opts...)
	LogEvent("GRID", map[string]any{
		"name":    model.gridName,
		"days":    engine.Grid().NumDays(),
		"periods": engine.Grid().NumPeriods(),
		"slots":   engine.Grid().NumSlots(),
		"pairs":   engine.Index().Pairs(),
	})

	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
