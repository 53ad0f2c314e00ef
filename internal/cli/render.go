package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal. Without styled, glamour's
// plain-text style is used so no escape codes reach pipes. Rendering
// errors fall back to the raw markdown.
func RenderMarkdown(md string, width int, styled bool) string {
	if width < 40 {
		width = 80
	}

	style := glamour.WithAutoStyle()
	if !styled {
		style = glamour.WithStandardStyle("notty")
	}

	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
