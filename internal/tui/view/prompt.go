package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PromptState captures prompt input state for rendering.
type PromptState struct {
	Label  string // e.g. "label" or "jump"
	Value  string
	Cursor string
}

// PromptLines builds the prompt input line and an optional suggestion line
// for the given width.
func PromptLines(state PromptState, contentWidth int, suggestions []string) []string {
	prefix := "> "
	if state.Label != "" {
		prefix = state.Label + "> "
	}
	continuation := strings.Repeat(" ", runewidth.StringWidth(prefix))
	lines := wrapTextWithPrefix(state.Value+state.Cursor, prefix, continuation, contentWidth)
	if len(suggestions) > 0 {
		lines = append(lines, wrapTextWithPrefix(strings.Join(suggestions, " "), continuation, continuation, contentWidth)...)
	}
	return lines
}

// ClampPromptLines clamps prompt lines to maxLines and adds an ellipsis if needed.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}

	clamped := append([]string(nil), lines[:maxLines]...)
	clamped[maxLines-1] = addEllipsis(clamped[maxLines-1], width)
	return clamped
}

// WrapTextToWidths wraps text across the provided widths, breaking at spaces
// where possible. Widths are display columns, so wide runes count double.
func WrapTextToWidths(s string, firstWidth, otherWidth int) []string {
	if firstWidth <= 0 || otherWidth <= 0 {
		return []string{""}
	}

	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	width := firstWidth
	lineStart := 0
	lastSpace := -1
	lineWidth := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == ' ' {
			lastSpace = i
		}

		runeWidth := runewidth.RuneWidth(r)
		if lineWidth+runeWidth > width {
			if lastSpace >= lineStart {
				lines = append(lines, string(runes[lineStart:lastSpace]))
				i = lastSpace
				lineStart = lastSpace + 1
			} else {
				lines = append(lines, string(runes[lineStart:i]))
				lineStart = i
				i--
			}
			width = otherWidth
			lastSpace = -1
			lineWidth = 0
			continue
		}
		lineWidth += runeWidth
	}

	return append(lines, string(runes[lineStart:]))
}

// RenderPrompt renders the prompt box with the provided lines.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	style = style.Width(max(width-frameW, 0))
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderPromptPlaceholder renders an empty prompt box with matching height.
func RenderPromptPlaceholder(width int, style lipgloss.Style, maxContentLines int) string {
	frameW, _ := style.GetFrameSize()
	style = style.Width(max(width-frameW, 0))
	maxContentLines = max(maxContentLines, 1)
	return style.Render(strings.Repeat("\n", maxContentLines-1))
}

func wrapTextWithPrefix(s, prefix, continuation string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	firstWidth := max(width-runewidth.StringWidth(prefix), 0)
	otherWidth := max(width-runewidth.StringWidth(continuation), 0)

	lines := WrapTextToWidths(s, firstWidth, otherWidth)
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = continuation + lines[i]
		}
	}
	return lines
}

func addEllipsis(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s)+3 <= width {
		return s + "..."
	}
	return runewidth.Truncate(s, width, "...")
}
