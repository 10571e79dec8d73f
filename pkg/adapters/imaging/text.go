package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Canvas describes the text-to-image layout, in pixels.
type Canvas struct {
	Width, Height int
	Background    color.Color
	Foreground    color.Color
	FontSize      float64
	LineHeight    int
	Left, Top     int
	WrapWidth     int
}

// DefaultCanvas is an 800×400 dark slate card with white 22px text.
var DefaultCanvas = Canvas{
	Width:      800,
	Height:     400,
	Background: color.RGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff},
	Foreground: color.White,
	FontSize:   22,
	LineHeight: 30,
	Left:       40,
	Top:        60,
	WrapWidth:  800 - 80,
}

// Rasterizer implements ports.TextRasterizer with the Go Regular font.
type Rasterizer struct {
	canvas Canvas
	font   *opentype.Font
}

// NewRasterizer parses the embedded font for canvas.
func NewRasterizer(canvas Canvas) (*Rasterizer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Rasterizer{canvas: canvas, font: f}, nil
}

// Render draws text from the top-left origin of the canvas, wrapping words
// at the wrap width, and returns the canvas as PNG.
func (r *Rasterizer) Render(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{Size: r.canvas.FontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	defer face.Close()

	c := r.canvas
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(c.Foreground), Face: face}
	ascent := face.Metrics().Ascent
	for i, line := range WrapText(text, c.WrapWidth, func(s string) int { return d.MeasureString(s).Ceil() }) {
		top := c.Top + i*c.LineHeight
		d.Dot = fixed.Point26_6{X: fixed.I(c.Left), Y: fixed.I(top) + ascent}
		d.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WrapText greedily fills lines with space-separated words while measure stays
// within maxWidth. A word wider than maxWidth gets a line of its own. Explicit
// line breaks start a new line.
func WrapText(text string, maxWidth int, measure func(string) int) []string {
	var out []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := ""
		for _, word := range strings.Split(paragraph, " ") {
			candidate := line + word + " "
			if measure(candidate) > maxWidth && line != "" {
				out = append(out, line)
				line = word + " "
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}
