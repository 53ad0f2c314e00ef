package cli

import "github.com/charmbracelet/lipgloss"

var (
	// Colors.
	colorPurple = lipgloss.Color("#A855F7")
	colorGreen  = lipgloss.Color("#22C55E")
	colorRed    = lipgloss.Color("#EF4444")
	colorYellow = lipgloss.Color("#EAB308")
	colorDim    = lipgloss.Color("#6B7280")
	colorCyan   = lipgloss.Color("#06B6D4")
	colorWhite  = lipgloss.Color("#F9FAFB")

	// Prompt styles, rendered by the bubbletea programs.
	promptHeaderStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	promptQuestionStyle = lipgloss.NewStyle().Foreground(colorWhite)
	promptOptionStyle   = lipgloss.NewStyle().Foreground(colorDim)
	promptSelectedStyle = lipgloss.NewStyle().Foreground(colorPurple).Bold(true)
	promptCheckedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	promptHintStyle     = lipgloss.NewStyle().Foreground(colorDim)
	promptErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// styles is the report palette bound to one output renderer, so colour is
// dropped when the writer is not a terminal.
type styles struct {
	banner   lipgloss.Style
	subtitle lipgloss.Style
	heading  lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	warning  lipgloss.Style
	info     lipgloss.Style
	id       lipgloss.Style
	name     lipgloss.Style
	dim      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner: r.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(0, 2),
		subtitle: r.NewStyle().Foreground(colorDim),
		heading:  r.NewStyle().Foreground(colorCyan).Bold(true),
		success:  r.NewStyle().Foreground(colorGreen).Bold(true),
		failure:  r.NewStyle().Foreground(colorRed).Bold(true),
		warning:  r.NewStyle().Foreground(colorYellow).Bold(true),
		info:     r.NewStyle().Foreground(colorCyan),
		id:       r.NewStyle().Foreground(colorCyan).Bold(true),
		name:     r.NewStyle().Bold(true),
		dim:      r.NewStyle().Foreground(colorDim),
	}
}
