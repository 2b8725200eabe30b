package output

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// colorDef is an adaptive color definition in the style sheet
type colorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// styleDef is one named style in the style sheet
type styleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// styleSheet is the embedded styles.yaml structure
type styleSheet struct {
	Colors map[string]colorDef `yaml:"colors"`
	Styles map[string]styleDef `yaml:"styles"`
}

// loadStyles builds the semantic-name to lipgloss style registry from
// the embedded sheet, bound to the given renderer so color handling
// stays per-writer. A malformed sheet degrades to unstyled output.
func loadStyles(r *lipgloss.Renderer) map[string]lipgloss.Style {
	var sheet styleSheet
	if err := yaml.Unmarshal(stylesYAML, &sheet); err != nil {
		return map[string]lipgloss.Style{}
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(sheet.Colors))
	for name, def := range sheet.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(sheet.Styles))
	for name, def := range sheet.Styles {
		style := r.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Foreground != "" {
			if color, ok := colors[def.Foreground]; ok {
				style = style.Foreground(color)
			}
		}
		if def.Width > 0 {
			style = style.Width(def.Width)
		}
		registry[name] = style
	}
	return registry
}

// styleFor returns the named style, or a zero style for unknown names.
func styleFor(registry map[string]lipgloss.Style, name string) lipgloss.Style {
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
