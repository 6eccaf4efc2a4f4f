package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// markdownRenderer renders markdown text to styled ANSI output.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// newMarkdownRenderer creates a renderer with the given terminal width.
func newMarkdownRenderer(width int) *markdownRenderer {
	if width < 40 {
		width = 80
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4), // small margin for safety
	)
	return &markdownRenderer{renderer: r, width: width}
}

// render converts markdown text to styled ANSI output.
func (r *markdownRenderer) render(md string) string {
	if r.renderer == nil {
		return md
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	// glamour often adds trailing newlines; trim for tighter display.
	return strings.TrimRight(out, "\n")
}

// updateWidth recreates the renderer with a new terminal width.
func (r *markdownRenderer) updateWidth(width int) {
	if width < 40 {
		width = 80
	}
	if width == r.width {
		return
	}
	r.width = width
	newR, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err == nil {
		r.renderer = newR
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func termSize(f *os.File) (width, height int, err error) {
	return term.GetSize(int(f.Fd()))
}

// terminalWidth returns the width of f, or 80 when it is not a terminal.
func terminalWidth(f *os.File) int {
	if w, _, err := termSize(f); err == nil && w > 0 {
		return w
	}
	return 80
}

// RenderMarkdown renders md for display on f. Output that is not a terminal
// gets the markdown unchanged so it can be piped.
func RenderMarkdown(f *os.File, md string) string {
	if !IsTerminal(f) {
		return md
	}
	return newMarkdownRenderer(terminalWidth(f)).render(md)
}
