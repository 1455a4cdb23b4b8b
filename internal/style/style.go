// Package style renders the default emphasis templates for the terminal the
// output goes to: bold and faint when it supports ANSI styling, bare
// placeholders otherwise.
package style

import (
	"io"

	"github.com/bioread/bio-read/internal/emphasis"
	"github.com/charmbracelet/lipgloss"
)

// Templates is a pair of emphasis / de-emphasis templates.
type Templates struct {
	Emphasis   string
	DeEmphasis string
}

// Detect inspects w (usually os.Stdout) and returns matching templates.
func Detect(w io.Writer) Templates {
	return FromRenderer(lipgloss.NewRenderer(w))
}

// FromRenderer renders the templates with r's color profile.
func FromRenderer(r *lipgloss.Renderer) Templates {
	return Templates{
		Emphasis:   r.NewStyle().Bold(true).Render(emphasis.Placeholder),
		DeEmphasis: r.NewStyle().Faint(true).Render(emphasis.Placeholder),
	}
}
