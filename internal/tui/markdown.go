package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const defaultWrapWidth = 80

// RenderMarkdown renders markdown for a terminal width columns wide.
// width <= 0 falls back to 80 columns.
func RenderMarkdown(markdown string, width int) (string, error) {
	if width <= 0 {
		width = defaultWrapWidth
	}
	// Leave room for glamour's document margin.
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
