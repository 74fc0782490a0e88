package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterStyles are the per-line styles of the footer.
type FooterStyles struct {
	Line        lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Prompt      lipgloss.Style
	PromptFocus lipgloss.Style
}

// Footer is the area under the timetable.
//
// The full footer shows stats, legend, the prompt box, status and help.
// The compact footer keeps two lines: status and help, with the prompt input
// taking the status line while a prompt is open.
type Footer struct {
	Width  int
	Height int
	Full   bool

	Stats  string
	Legend string
	Status string
	Help   string

	// Prompt holds the prompt lines, or nil when no prompt is open.
	Prompt     []string
	PromptRows int

	Styles FooterStyles
	Bg     lipgloss.Color
}

// RenderFooter renders the footer bottom-aligned in its box.
func RenderFooter(f Footer) string {
	if f.Height <= 0 {
		return ""
	}
	return PlaceBox(f.Width, f.Height, lipgloss.Bottom, strings.Join(f.lines(), "\n"), f.Bg)
}

func (f Footer) lines() []string {
	help := footerLine(f.Width, f.Styles.Help, f.Help)
	if !f.Full {
		if f.Prompt != nil {
			return []string{footerLine(f.Width, f.Styles.Line, f.Prompt[0]), help}
		}
		return []string{footerLine(f.Width, f.Styles.Status, f.Status), help}
	}

	prompt := RenderPromptPlaceholder(f.Width, f.Styles.Prompt, f.PromptRows)
	if f.Prompt != nil {
		prompt = RenderPrompt(f.Width, f.Styles.PromptFocus, f.Prompt)
	}
	return []string{
		footerLine(f.Width, f.Styles.Line, f.Stats),
		footerLine(f.Width, f.Styles.Line, f.Legend),
		prompt,
		footerLine(f.Width, f.Styles.Status, f.Status),
		help,
	}
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "…")
	}
	return style.Width(contentWidth).Render(content)
}
