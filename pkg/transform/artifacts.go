package transform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/registry"
	"github.com/aretw0/workbench/pkg/validate"
)

const (
	DefaultDocumentName = "document"
	DefaultQRSize       = 180
	MinQRSize           = 64
	MaxQRSize           = 1024
	TextImageName       = "text-image.png"
	QRImageName         = "qr-code.png"
	mimePDF             = "application/pdf"
)

// DocumentName trims name, defaults it and appends ".pdf" unless it already
// ends with it in any case.
func DocumentName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultDocumentName
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// PageSizeOf reads a page size selection. Anything but "letter" is A4.
func PageSizeOf(s string) ports.PageSize {
	if strings.EqualFold(strings.TrimSpace(s), string(ports.PageLetter)) {
		return ports.PageLetter
	}
	return ports.PageA4
}

type pdfParams struct {
	Text     string `mapstructure:"text"`
	Filename string `mapstructure:"filename"`
	PageSize string `mapstructure:"page_size"`
}

// TextToPDF returns a transform rendering the "text" field into a PDF.
// An empty page_size falls back to defaultSize.
func TextToPDF(renderer ports.DocumentRenderer, defaultSize ports.PageSize) registry.Transform {
	return func(ctx context.Context, in domain.Input) (domain.Output, error) {
		var p pdfParams
		if err := validate.Decode(in, &p); err != nil {
			return domain.Output{}, err
		}
		text, err := validate.RequireText(p.Text, "Please enter some text to convert into PDF.")
		if err != nil {
			return domain.Output{}, err
		}
		size := defaultSize
		if p.PageSize != "" || size == "" {
			size = PageSizeOf(p.PageSize)
		}

		doc, err := renderer.Render(ctx, text, size)
		if err != nil {
			return domain.Output{}, fmt.Errorf("render pdf: %w", err)
		}
		name := DocumentName(p.Filename)
		return domain.Output{
			Text: fmt.Sprintf("Generated %s (%d page(s), %s)", name, doc.Pages, size),
			Fields: map[string]string{
				"filename":  name,
				"pages":     strconv.Itoa(doc.Pages),
				"page_size": string(size),
			},
			Artifact: &domain.Artifact{Name: name, MIMEType: mimePDF, Data: doc.Data},
		}, nil
	}
}

type imageParams struct {
	Data     []byte `mapstructure:"data"`
	MIME     string `mapstructure:"mime"`
	Filename string `mapstructure:"filename"`
}

// imageConversion re-encodes an uploaded image of one format into another.
type imageConversion struct {
	source   ports.ImageFormat
	target   ports.ImageFormat
	ext      string
	rejected string
}

var (
	jpgToPNG = imageConversion{source: ports.FormatJPEG, target: ports.FormatPNG, ext: ".png", rejected: "Please select a JPG image."}
	pngToJPG = imageConversion{source: ports.FormatPNG, target: ports.FormatJPEG, ext: ".jpg", rejected: "Please select a PNG image."}
)

func (c imageConversion) transform(codec ports.ImageCodec) registry.Transform {
	return func(ctx context.Context, in domain.Input) (domain.Output, error) {
		var p imageParams
		if err := validate.Decode(in, &p); err != nil {
			return domain.Output{}, err
		}
		if len(p.Data) == 0 {
			return domain.Output{}, domain.Validation("%s", c.rejected)
		}
		mime := strings.ToLower(strings.TrimSpace(p.MIME))
		if mime == "" || mime == "application/octet-stream" {
			mime = http.DetectContentType(p.Data)
		}
		if !strings.HasPrefix(mime, c.source.MIMEType()) {
			return domain.Output{}, domain.Unsupported("%s", c.rejected)
		}

		data, err := codec.Convert(ctx, p.Data, c.target)
		if err != nil {
			if errors.Is(err, ports.ErrCorruptImage) {
				return domain.Output{}, domain.Malformed(err, "Could not read the image: it is corrupt or truncated.")
			}
			return domain.Output{}, fmt.Errorf("convert image: %w", err)
		}
		name := convertedName(p.Filename, c.ext)
		return domain.Output{
			Text:     fmt.Sprintf("Converted to %s (%d bytes)", name, len(data)),
			Fields:   map[string]string{"filename": name, "bytes": strconv.Itoa(len(data))},
			Artifact: &domain.Artifact{Name: name, MIMEType: c.target.MIMEType(), Data: data},
		}, nil
	}
}

func convertedName(name, ext string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "converted"
	}
	return base + ext
}

// JPGToPNG returns a transform re-encoding a JPEG upload as PNG.
func JPGToPNG(codec ports.ImageCodec) registry.Transform {
	return jpgToPNG.transform(codec)
}

// PNGToJPG returns a transform re-encoding a PNG upload as JPEG on white.
func PNGToJPG(codec ports.ImageCodec) registry.Transform {
	return pngToJPG.transform(codec)
}

type qrParams struct {
	Text string `mapstructure:"text"`
	Size any    `mapstructure:"size"`
}

// QRCode returns a transform encoding the "text" field as a QR symbol.
// Sizes are clamped to [MinQRSize, MaxQRSize]; a missing size is defaultSize.
func QRCode(encoder ports.QREncoder, defaultSize int) registry.Transform {
	if defaultSize <= 0 {
		defaultSize = DefaultQRSize
	}
	return func(ctx context.Context, in domain.Input) (domain.Output, error) {
		var p qrParams
		if err := validate.Decode(in, &p); err != nil {
			return domain.Output{}, err
		}
		text, err := validate.RequireText(p.Text, "Please enter some text or URL.")
		if err != nil {
			return domain.Output{}, err
		}
		size := defaultSize
		if n, ok := validate.Integer(p.Size); ok {
			size = n
		}
		size = validate.Clamp(size, MinQRSize, MaxQRSize)

		sym, err := encoder.Encode(ctx, text, size)
		if err != nil {
			return domain.Output{}, fmt.Errorf("encode qr: %w", err)
		}
		return domain.Output{
			Text:     sym.Text,
			Fields:   map[string]string{"size": strconv.Itoa(size)},
			Artifact: &domain.Artifact{Name: QRImageName, MIMEType: ports.FormatPNG.MIMEType(), Data: sym.PNG},
		}, nil
	}
}

// TextToImage returns a transform drawing the "text" field onto a PNG canvas.
func TextToImage(rasterizer ports.TextRasterizer) registry.Transform {
	return func(ctx context.Context, in domain.Input) (domain.Output, error) {
		text, err := validate.RequireText(validate.Text(in["text"]), "Please enter some text first.")
		if err != nil {
			return domain.Output{}, err
		}
		data, err := rasterizer.Render(ctx, text)
		if err != nil {
			return domain.Output{}, fmt.Errorf("render image: %w", err)
		}
		return domain.Output{
			Text:     "Rendered " + TextImageName,
			Fields:   map[string]string{"filename": TextImageName},
			Artifact: &domain.Artifact{Name: TextImageName, MIMEType: ports.FormatPNG.MIMEType(), Data: data},
		}, nil
	}
}
