package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCorruptImage is returned by an ImageCodec when the source cannot be decoded.
var ErrCorruptImage = errors.New("corrupt image")

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// PageSize selects the paper format of a rendered document.
type PageSize string

const (
	PageA4     PageSize = "a4"
	PageLetter PageSize = "letter"
)

// Document is a rendered PDF.
type Document struct {
	Data  []byte
	Pages int
}

// DocumentRenderer turns plain text into a PDF. Implementations wrap lines to the
// printable width and start a new page when a page is full.
type DocumentRenderer interface {
	Render(ctx context.Context, text string, size PageSize) (Document, error)
}

// Symbol is an encoded QR code: a PNG of the requested size and a text rendering
// suitable for a terminal.
type Symbol struct {
	PNG  []byte
	Text string
}

// QREncoder encodes text into a scannable symbol of size×size pixels.
type QREncoder interface {
	Encode(ctx context.Context, text string, size int) (Symbol, error)
}

// ImageFormat names a raster encoding.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPEG ImageFormat = "jpeg"
)

// MIMEType returns the media type of the format.
func (f ImageFormat) MIMEType() string {
	return "image/" + string(f)
}

// ImageCodec decodes a raster image and re-encodes it in the target format.
// Converting to JPEG flattens transparency onto a white background.
type ImageCodec interface {
	Convert(ctx context.Context, src []byte, target ImageFormat) ([]byte, error)
}

// TextRasterizer draws text onto a fixed-size canvas and returns it as PNG.
type TextRasterizer interface {
	Render(ctx context.Context, text string) ([]byte, error)
}

// Clock is the source of the current date and time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}
