package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

// Color definitions for consistent styling across the UI.
var (
	// Selected slots: bold green
	colorSelected = color.New(color.FgGreen, color.Bold)

	// Blocked slots: red and crossed out
	colorBlocked = color.New(color.FgRed, color.CrossedOut)

	// Free lab slots: cyan to tell them apart from lectures
	colorLab = color.New(color.FgCyan)

	// Free theory slots: plain
	colorTheory = color.New(color.Reset)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Errors and rejections
	colorError = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatSlot colors a slot code by its status and kind.
func formatSlot(slot timetable.SlotCode, status timetable.Status) string {
	switch {
	case status == timetable.StatusSelected:
		return colorSelected.Sprint(string(slot))
	case status == timetable.StatusBlocked:
		return colorBlocked.Sprint(string(slot))
	case timetable.IsLab(slot):
		return colorLab.Sprint(string(slot))
	default:
		return colorTheory.Sprint(string(slot))
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatError formats text for rejected operations.
func formatError(s string) string {
	return colorError.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
