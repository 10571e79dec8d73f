package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without options it detects a light or dark background.
// If the renderer cannot be built, markdown is returned unchanged.
func NewRenderer(opts ...glamour.TermRendererOption) func(string) (string, error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// NewPlainRenderer renders markdown without ANSI styling, for pipes and files.
func NewPlainRenderer() func(string) (string, error) {
	return NewRenderer(glamour.WithStandardStyle(styles.NoTTYStyle), glamour.WithWordWrap(100))
}
