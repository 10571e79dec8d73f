// Package pdf renders plain text into PDF documents with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/workbench/pkg/ports"
	"github.com/go-pdf/fpdf"
)

// Layout constants, in points.
const (
	Margin     = 40.0
	FontSize   = 12.0
	LineHeight = FontSize + 4
	FontFamily = "Helvetica"
)

// Renderer implements ports.DocumentRenderer.
type Renderer struct {
	now func() time.Time
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithClock fixes the creation date written to documents.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays text out on A4 or Letter pages: Helvetica 12 with a 40pt margin,
// lines wrapped to the printable width, a new page once a line would start
// below the bottom margin.
func (r *Renderer) Render(ctx context.Context, text string, size ports.PageSize) (ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return ports.Document{}, err
	}

	format := fpdf.PageSizeA4
	if size == ports.PageLetter {
		format = fpdf.PageSizeLetter
	}

	doc := fpdf.New(fpdf.OrientationPortrait, fpdf.UnitPoint, format, "")
	doc.SetCreationDate(r.now())
	doc.SetCatalogSort(true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(Margin, Margin, Margin)
	doc.SetFont(FontFamily, "", FontSize)
	doc.AddPage()

	width, height := doc.GetPageSize()
	toCodePage := doc.UnicodeTranslatorFromDescriptor("")

	y := Margin
	for _, line := range doc.SplitText(printable(text), width-2*Margin) {
		if y > height-Margin {
			doc.AddPage()
			y = Margin
		}
		doc.Text(Margin, y, toCodePage(line))
		y += LineHeight
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return ports.Document{}, fmt.Errorf("fpdf output: %w", err)
	}
	return ports.Document{Data: buf.Bytes(), Pages: doc.PageCount()}, nil
}

// printable normalises line breaks and replaces runes the core fonts have no
// metrics for.
func printable(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if r > 0xFF {
			return '?'
		}
		return r
	}, text)
}
