package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

// DebugLogger logs TUI state, keystrokes, and events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "slotpick-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	return initDebugLoggerAt(enabled, DebugLogPath)
}

func initDebugLoggerAt(enabled bool, logPath string) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
		debugLog.file = nil
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg, mode Mode) {
	if !debugEnabled() {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"mode": modeString(mode),
	})
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if !debugEnabled() {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   modeString(from),
		"to":     modeString(to),
		"reason": reason,
	})
}

// LogCursorMove logs cursor movement.
func LogCursorMove(pos Position, reason string) {
	if !debugEnabled() {
		return
	}
	debugLog.log("CURSOR_MOVE", map[string]any{
		"day":    pos.Day,
		"period": pos.Period,
		"index":  pos.Index,
		"reason": reason,
	})
}

// LogToggle logs the outcome of a toggle request.
func LogToggle(slot timetable.SlotCode, selected bool, err error) {
	if !debugEnabled() {
		return
	}
	data := map[string]any{
		"slot":     string(slot),
		"selected": selected,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	debugLog.log("TOGGLE", data)
}

// LogSelection logs the selection after a bulk change such as undo or clear.
func LogSelection(action string, sel timetable.Selection) {
	if !debugEnabled() {
		return
	}
	slots := make([]string, 0, sel.Len())
	for _, s := range sel.Slots() {
		slots = append(slots, string(s))
	}
	debugLog.log("SELECTION", map[string]any{
		"action": action,
		"slots":  slots,
	})
}

// LogEvent logs a named event with optional fields.
func LogEvent(event string, data map[string]any) {
	if !debugEnabled() {
		return
	}
	debugLog.log(event, data)
}

// LogError logs an error.
func LogError(context string, err error) {
	if !debugEnabled() {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeLabel:
		return "Label"
	case ModeJump:
		return "Jump"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}
