// Package imaging re-encodes raster images and renders text onto PNG canvases.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/aretw0/workbench/pkg/ports"
	"golang.org/x/image/draw"
)

// JPEGQuality matches the quality of a browser canvas export.
const JPEGQuality = 92

// Codec implements ports.ImageCodec for PNG and JPEG.
type Codec struct {
	quality int
}

// NewCodec returns a Codec encoding JPEGs at JPEGQuality.
func NewCodec() *Codec {
	return &Codec{quality: JPEGQuality}
}

// Convert decodes src (PNG or JPEG) and encodes it as target.
func (c *Codec) Convert(ctx context.Context, src []byte, target ports.ImageFormat) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptImage, err)
	}

	var buf bytes.Buffer
	switch target {
	case ports.FormatPNG:
		err = png.Encode(&buf, img)
	case ports.FormatJPEG:
		err = jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: c.quality})
	default:
		return nil, fmt.Errorf("unsupported target format %q", target)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", target, err)
	}
	return buf.Bytes(), nil
}

// flatten composites img over an opaque white background.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
