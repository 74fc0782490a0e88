package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/slotpick/internal/timetable"
	"github.com/javiermolinar/slotpick/internal/tui/commands"
	"github.com/javiermolinar/slotpick/internal/tui/input"
)

const statusDuration = 3 * time.Second

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg, m.mode)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeLabel, ModeJump:
		return m.handlePromptKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.moveCursor(-1, 0, "left")
	case "l", "right":
		m.moveCursor(1, 0, "right")
	case "k", "up":
		m.moveCursor(0, -1, "up")
	case "j", "down":
		m.moveCursor(0, 1, "down")
	case "tab":
		m.cycleSlot(1)
	case "shift+tab":
		m.cycleSlot(-1)
	case "g", "home":
		m.cursor = Position{}
		LogCursorMove(m.cursor, "home")

	// Selection
	case " ", "space", "enter":
		return m.toggleCurrent(timetable.Metadata{})
	case "t":
		return m.startLabel()
	case "u":
		return m.undo()
	case "C":
		return m.clear()

	// Output
	case "y":
		if m.session.Selection().IsEmpty() {
			return m.flash("Nothing selected to copy", false)
		}
		LogEvent("COPY", map[string]any{"slots": m.session.Selection().Len()})
		return m, commands.CopySelection(m.snapshot())
	case "e":
		path := commands.SnapshotPath(m.snapshotDir, m.gridName, m.now())
		LogEvent("EXPORT", map[string]any{"path": path})
		return m, commands.WriteSnapshot(path, m.snapshot())

	case "/":
		return m.enterPrompt(ModeJump, "", "jump")
	}

	return m, nil
}

// handlePromptKeys handles keys while a prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.labelSlot = ""
		return m.exitPrompt("cancel"), nil

	case "tab":
		if m.mode == ModeJump {
			if completed, ok := input.Autocomplete(m.prompt.Value(), m.slotCodes()); ok {
				m.prompt.SetValue(completed)
				m.prompt.CursorEnd()
			}
		}
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		mode := m.mode
		m = m.exitPrompt("submit")
		if mode == ModeJump {
			return m.jump(value)
		}
		label, tag := input.ParseLabel(value)
		slot := m.labelSlot
		m.labelSlot = ""
		return m.toggleSlot(slot, timetable.Metadata{Label: label, Tag: tag})
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) enterPrompt(mode Mode, value, reason string) (tea.Model, tea.Cmd) {
	LogModeChange(m.mode, mode, reason)
	m.mode = mode
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	cmd := m.prompt.Focus()
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m Model) exitPrompt(reason string) Model {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
	return m
}

// startLabel opens the label prompt for the slot under the cursor. A selected
// slot is deselected straight away and a blocked one is reported without
// prompting.
func (m Model) startLabel() (tea.Model, tea.Cmd) {
	slot, ok := m.currentSlot()
	if !ok {
		return m, nil
	}
	if m.session.Selection().Has(slot) {
		return m.toggleSlot(slot, timetable.Metadata{})
	}
	blockers, err := m.engine().BlockedBy(m.session.Selection(), slot)
	if err != nil {
		return m.flash(err.Error(), true)
	}
	if len(blockers) > 0 {
		return m.flash((&timetable.SlotBlockedError{Slot: slot, BlockedBy: blockers}).Error(), true)
	}
	m.labelSlot = slot
	return m.enterPrompt(ModeLabel, "", "label")
}

func (m Model) toggleCurrent(meta timetable.Metadata) (tea.Model, tea.Cmd) {
	slot, ok := m.currentSlot()
	if !ok {
		return m, nil
	}
	return m.toggleSlot(slot, meta)
}

func (m Model) toggleSlot(slot timetable.SlotCode, meta timetable.Metadata) (tea.Model, tea.Cmd) {
	selected, err := m.session.Toggle(slot, meta)
	LogToggle(slot, selected, err)
	if err != nil {
		var blocked *timetable.SlotBlockedError
		if errors.As(err, &blocked) {
			return m.flash(blocked.Error(), true)
		}
		LogError("toggle", err)
		return m.flash(err.Error(), true)
	}
	if selected {
		return m.flash(fmt.Sprintf("Selected %s", slot), false)
	}
	return m.flash(fmt.Sprintf("Removed %s", slot), false)
}

func (m Model) undo() (tea.Model, tea.Cmd) {
	if err := m.session.Undo(); err != nil {
		return m.flash("Nothing to undo", false)
	}
	LogSelection("undo", m.session.Selection())
	return m.flash("Undone", false)
}

func (m Model) clear() (tea.Model, tea.Cmd) {
	if m.session.Selection().IsEmpty() {
		return m, nil
	}
	n := m.session.Selection().Len()
	m.session.Clear()
	LogSelection("clear", m.session.Selection())
	return m.flash(fmt.Sprintf("Cleared %d slots (u to undo)", n), false)
}

func (m Model) jump(value string) (tea.Model, tea.Cmd) {
	if value == "" {
		return m, nil
	}
	matches := input.MatchingSlots(value, m.slotCodes())
	target := timetable.SlotCode(value)
	for _, code := range matches {
		if strings.EqualFold(code, value) {
			target = timetable.SlotCode(code)
			break
		}
	}
	if !m.grid().Has(target) && len(matches) == 1 {
		target = timetable.SlotCode(matches[0])
	}
	cell, err := m.grid().CellOf(target)
	if err != nil {
		return m.flash(err.Error(), true)
	}
	for i, s := range cell.Slots {
		if s == target {
			m.cursor = Position{Day: cell.Ref.Day, Period: cell.Ref.Period, Index: i}
		}
	}
	LogCursorMove(m.cursor, "jump")
	return m, nil
}

// moveCursor moves by whole cells, clamping to the grid and to the target
// cell's slot count.
func (m *Model) moveCursor(dDay, dPeriod int, reason string) {
	g := m.grid()
	m.cursor.Day = clamp(m.cursor.Day+dDay, 0, g.NumDays()-1)
	m.cursor.Period = clamp(m.cursor.Period+dPeriod, 0, g.NumPeriods()-1)
	if cell, ok := m.currentCell(); ok {
		m.cursor.Index = clamp(m.cursor.Index, 0, len(cell.Slots)-1)
	}
	LogCursorMove(m.cursor, reason)
}

// cycleSlot moves between the slots of the current cell, wrapping around.
func (m *Model) cycleSlot(delta int) {
	cell, ok := m.currentCell()
	if !ok || len(cell.Slots) == 0 {
		return
	}
	n := len(cell.Slots)
	m.cursor.Index = ((m.cursor.Index+delta)%n + n) % n
	LogCursorMove(m.cursor, "cycle")
}

func (m Model) slotCodes() []string {
	slots := m.grid().Slots()
	codes := make([]string, len(slots))
	for i, s := range slots {
		codes[i] = string(s)
	}
	return codes
}

// flash shows a temporary status message.
func (m Model) flash(msg string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = m.now().Add(statusDuration)
	return m, commands.ClearStatusAfter(statusDuration)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
