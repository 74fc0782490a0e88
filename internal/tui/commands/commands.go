// Package commands provides TUI command constructors and message types.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/slotpick/internal/export"
)

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SnapshotWrittenMsg is sent when a snapshot file has been written.
type SnapshotWrittenMsg struct {
	Path string
}

// CopiedMsg is sent when the selection summary is on the clipboard.
type CopiedMsg struct {
	Count int
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// SnapshotPath returns the file name used for a snapshot of grid taken at now.
func SnapshotPath(dir, grid string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("slotpick-%s-%s.json", grid, now.Format("20060102-150405")))
}

// WriteSnapshot writes snap as JSON to path.
func WriteSnapshot(path string, snap *export.Snapshot) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating snapshot: %w", err)}
		}
		if err := export.Write(f, snap, export.FormatJSON); err != nil {
			_ = f.Close()
			return ErrMsg{Err: fmt.Errorf("writing snapshot: %w", err)}
		}
		if err := f.Close(); err != nil {
			return ErrMsg{Err: fmt.Errorf("writing snapshot: %w", err)}
		}
		return SnapshotWrittenMsg{Path: path}
	}
}

// CopySelection puts the text summary of snap on the system clipboard.
func CopySelection(snap *export.Snapshot) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(snap.Text()); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying selection: %w", err)}
		}
		return CopiedMsg{Count: len(snap.Selected)}
	}
}
