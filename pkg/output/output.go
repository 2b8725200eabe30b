// Package output renders run summaries for humans (styled text) and
// machines (JSON or YAML).
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	jberrors "github.com/ideutil/jbsync/pkg/errors"
	"github.com/ideutil/jbsync/pkg/types"
)

// Format selects a rendering of the summary.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", jberrors.Newf(jberrors.ErrInvalidInput, "unknown format %q (want text, json or yaml)", s)
	}
}

// RenderRunSummary writes the vmoptions run summary to w.
func RenderRunSummary(w io.Writer, summary types.RunSummary, format Format) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, summary)
	case FormatYAML:
		return renderYAML(w, summary)
	default:
		return renderRunText(w, summary)
	}
}

// RenderMirrorSummary writes the license mirror summary to w.
func RenderMirrorSummary(w io.Writer, summary types.MirrorSummary, format Format) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, summary)
	case FormatYAML:
		return renderYAML(w, summary)
	default:
		registry := styledRegistry(w)
		_, err := fmt.Fprintf(w, "%s\n%s%d\n%s%d\n%s%d\n",
			styleFor(registry, "Header").Render("License mirror"),
			styleFor(registry, "Label").Render("  copied:"), summary.Copied,
			styleFor(registry, "Label").Render("  skipped:"), summary.Skipped,
			styleFor(registry, "Label").Render("  failed:"), summary.Failed,
		)
		return err
	}
}

func renderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderRunText(w io.Writer, summary types.RunSummary) error {
	registry := styledRegistry(w)

	if _, err := fmt.Fprintln(w, styleFor(registry, "Header").Render("vmoptions synchronization")); err != nil {
		return err
	}

	for _, result := range summary.Results {
		line := fmt.Sprintf("  %-14s %-32s %s",
			result.Target.Product, result.Target.FileName(), result.Status)
		if result.Status == types.StatusFailed && result.Error != "" {
			line += "  (" + result.Error + ")"
		}

		var styled string
		switch result.Status {
		case types.StatusWritten:
			styled = styleFor(registry, "Written").Render(line)
		case types.StatusSkipped:
			styled = styleFor(registry, "Skipped").Render(line)
		case types.StatusUnconfigured:
			styled = styleFor(registry, "Unconfigured").Render(line)
		default:
			styled = styleFor(registry, "Failed").Render(line)
		}
		if _, err := fmt.Fprintln(w, styled); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s%d\n%s%d\n%s%d\n",
		styleFor(registry, "Label").Render("  configured:"), summary.Configured(),
		styleFor(registry, "Label").Render("  unconfigured:"), summary.Unconfigured,
		styleFor(registry, "Label").Render("  failed:"), summary.Failed,
	)
	return err
}

// styledRegistry loads the style registry on a renderer scoped to w,
// downgrading that renderer to plain ASCII when w is not a terminal.
// Global lipgloss state is never touched.
func styledRegistry(w io.Writer) map[string]lipgloss.Style {
	renderer := lipgloss.NewRenderer(w)
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return loadStyles(renderer)
}
