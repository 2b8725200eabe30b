package topics

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// GlamourRenderer renders markdown topics with glamour, falling back
// to the raw text whenever rendering is not possible.
type GlamourRenderer struct {
	Width int // wrap width, 0 = glamour's default
}

// NewGlamourRenderer creates a markdown renderer that adapts to the
// terminal's background.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

// Render implements Renderer. Non-markdown topics pass through.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	style := "notty"
	if termenv.ColorProfile() != termenv.Ascii {
		if termenv.HasDarkBackground() {
			style = "dark"
		} else {
			style = "light"
		}
	}

	options := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
