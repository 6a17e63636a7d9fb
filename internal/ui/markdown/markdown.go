// Package markdown provides styled markdown rendering for the TUI.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
// It inherits from the base style but overrides margin to 0 so rendered
// output lines up with the content column.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with encre-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width, detecting the
// terminal background to pick a dark or light style.
func New(width int) (*Renderer, error) {
	return NewWithStyle(width, "")
}

// NewWithStyle creates a markdown renderer with an explicit style name
// ("dark" or "light"). An empty style falls back to auto detection.
func NewWithStyle(width int, style string) (*Renderer, error) {
	base := glamour.WithAutoStyle()
	if style == "dark" || style == "light" {
		base = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(
		base,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
