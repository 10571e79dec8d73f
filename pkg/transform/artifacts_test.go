package transform

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngMagic  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

func TestDocumentName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "document.pdf"},
		{"   ", "document.pdf"},
		{"report", "report.pdf"},
		{"Report.PDF", "Report.PDF"},
		{" notes.pdf ", "notes.pdf"},
		{"archive.txt", "archive.txt.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DocumentName(tt.in), tt.in)
	}
}

func TestPageSizeOf(t *testing.T) {
	assert.Equal(t, ports.PageLetter, PageSizeOf("letter"))
	assert.Equal(t, ports.PageLetter, PageSizeOf(" LETTER "))
	assert.Equal(t, ports.PageA4, PageSizeOf("a4"))
	assert.Equal(t, ports.PageA4, PageSizeOf("legal"))
	assert.Equal(t, ports.PageA4, PageSizeOf(""))
}

func TestTextToPDF(t *testing.T) {
	r := new(mockRenderer)
	r.On("Render", mock.Anything, "Hello PDF", ports.PageLetter).
		Return(ports.Document{Data: []byte("%PDF-1.3"), Pages: 2}, nil)

	out, err := TextToPDF(r, ports.PageA4)(context.Background(), domain.Input{
		"text": "  Hello PDF \n", "filename": "notes", "page_size": "letter",
	})
	require.NoError(t, err)
	assert.Equal(t, "Generated notes.pdf (2 page(s), letter)", out.Text)
	require.NotNil(t, out.Artifact)
	assert.Equal(t, "notes.pdf", out.Artifact.Name)
	assert.Equal(t, "application/pdf", out.Artifact.MIMEType)
	assert.Equal(t, []byte("%PDF-1.3"), out.Artifact.Data)
	r.AssertExpectations(t)
}

func TestTextToPDF_DefaultPageSize(t *testing.T) {
	r := new(mockRenderer)
	r.On("Render", mock.Anything, "x", ports.PageLetter).Return(ports.Document{Pages: 1}, nil)

	out, err := TextToPDF(r, ports.PageLetter)(context.Background(), domain.Input{"text": "x"})
	require.NoError(t, err)
	assert.Equal(t, "document.pdf", out.Fields["filename"])
	r.AssertExpectations(t)
}

func TestTextToPDF_Failures(t *testing.T) {
	r := new(mockRenderer)
	_, err := TextToPDF(r, "")(context.Background(), domain.Input{"text": " \n\t"})
	require.Error(t, err)
	assert.Equal(t, "Please enter some text to convert into PDF.", err.Error())
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	r.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)

	r.On("Render", mock.Anything, "x", ports.PageA4).Return(ports.Document{}, errors.New("font missing"))
	_, err = TextToPDF(r, "")(context.Background(), domain.Input{"text": "x"})
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestJPGToPNG(t *testing.T) {
	c := new(mockCodec)
	c.On("Convert", mock.Anything, jpegMagic, ports.FormatPNG).Return([]byte("png-bytes"), nil)

	out, err := JPGToPNG(c)(context.Background(), domain.Input{
		"data": jpegMagic, "mime": "image/jpeg", "filename": "photos/holiday.jpeg",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Artifact)
	assert.Equal(t, "holiday.png", out.Artifact.Name)
	assert.Equal(t, "image/png", out.Artifact.MIMEType)
	assert.Equal(t, []byte("png-bytes"), out.Artifact.Data)
	c.AssertExpectations(t)
}

func TestImageConverters_SniffUntypedData(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(ports.ImageCodec) registry.Transform
		data   []byte
		mime   any
		target ports.ImageFormat
		want   string
	}{
		{"Missing MIME JPG", JPGToPNG, jpegMagic, nil, ports.FormatPNG, "converted.png"},
		{"Octet Stream JPG", JPGToPNG, jpegMagic, "application/octet-stream", ports.FormatPNG, "converted.png"},
		{"Octet Stream PNG", PNGToJPG, pngMagic, "application/octet-stream", ports.FormatJPEG, "converted.jpg"},
		{"Octet Stream Uppercase", PNGToJPG, pngMagic, " Application/Octet-Stream ", ports.FormatJPEG, "converted.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(mockCodec)
			c.On("Convert", mock.Anything, tt.data, tt.target).Return([]byte("out"), nil)

			in := domain.Input{"data": tt.data}
			if tt.mime != nil {
				in["mime"] = tt.mime
			}
			out, err := tt.fn(c)(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Artifact.Name)
			c.AssertExpectations(t)
		})
	}
}

func TestImageConverters_RejectWrongType(t *testing.T) {
	c := new(mockCodec)
	tests := []struct {
		name string
		fn   func(ports.ImageCodec) registry.Transform
		in   domain.Input
		msg  string
		kind domain.ErrorKind
	}{
		{"png into jpg converter", JPGToPNG, domain.Input{"data": pngMagic, "mime": "image/png"}, "Please select a JPG image.", domain.KindUnsupported},
		{"sniffed png into jpg converter", JPGToPNG, domain.Input{"data": pngMagic}, "Please select a JPG image.", domain.KindUnsupported},
		{"jpg into png converter", PNGToJPG, domain.Input{"data": jpegMagic, "mime": "image/jpeg"}, "Please select a PNG image.", domain.KindUnsupported},
		{"text into png converter", PNGToJPG, domain.Input{"data": []byte("hello"), "mime": "text/plain"}, "Please select a PNG image.", domain.KindUnsupported},
		{"untyped text into png converter", PNGToJPG, domain.Input{"data": []byte("hello"), "mime": "application/octet-stream"}, "Please select a PNG image.", domain.KindUnsupported},
		{"no file", PNGToJPG, domain.Input{}, "Please select a PNG image.", domain.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn(c)(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.msg, err.Error())
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
	c.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything)
}

func TestPNGToJPG_CorruptImage(t *testing.T) {
	c := new(mockCodec)
	c.On("Convert", mock.Anything, pngMagic, ports.FormatJPEG).
		Return(nil, fmt.Errorf("decode png: %w", ports.ErrCorruptImage))

	_, err := PNGToJPG(c)(context.Background(), domain.Input{"data": pngMagic, "mime": "image/png"})
	require.Error(t, err)
	assert.Equal(t, domain.KindFormat, domain.KindOf(err))
	assert.ErrorIs(t, err, ports.ErrCorruptImage)
}

func TestPNGToJPG_Base64Data(t *testing.T) {
	c := new(mockCodec)
	c.On("Convert", mock.Anything, []byte("hi"), ports.FormatJPEG).Return([]byte("jpg"), nil)

	out, err := PNGToJPG(c)(context.Background(), domain.Input{"data": "aGk=", "mime": "image/png", "filename": "a.png"})
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", out.Artifact.Name)
	assert.Equal(t, "image/jpeg", out.Artifact.MIMEType)
}

func TestQRCode(t *testing.T) {
	q := new(mockQR)
	q.On("Encode", mock.Anything, "https://example.com", DefaultQRSize).
		Return(ports.Symbol{PNG: []byte("qr"), Text: "██"}, nil)
	q.On("Encode", mock.Anything, "x", MaxQRSize).Return(ports.Symbol{PNG: []byte("big")}, nil)
	q.On("Encode", mock.Anything, "y", MinQRSize).Return(ports.Symbol{PNG: []byte("small")}, nil)

	gen := QRCode(q, 0)
	out, err := gen(context.Background(), domain.Input{"text": " https://example.com "})
	require.NoError(t, err)
	assert.Equal(t, "██", out.Text)
	assert.Equal(t, "180", out.Fields["size"])
	assert.Equal(t, QRImageName, out.Artifact.Name)

	out, err = gen(context.Background(), domain.Input{"text": "x", "size": "5000"})
	require.NoError(t, err)
	assert.Equal(t, "1024", out.Fields["size"])

	_, err = gen(context.Background(), domain.Input{"text": "y", "size": 1})
	require.NoError(t, err)

	_, err = gen(context.Background(), domain.Input{"text": ""})
	require.Error(t, err)
	assert.Equal(t, "Please enter some text or URL.", err.Error())
	q.AssertExpectations(t)
}

func TestTextToImage(t *testing.T) {
	r := new(mockRasterizer)
	r.On("Render", mock.Anything, "Hello image").Return([]byte("png"), nil)

	out, err := TextToImage(r)(context.Background(), domain.Input{"text": "\tHello image "})
	require.NoError(t, err)
	assert.Equal(t, TextImageName, out.Artifact.Name)
	assert.Equal(t, "image/png", out.Artifact.MIMEType)

	_, err = TextToImage(r)(context.Background(), domain.Input{})
	require.Error(t, err)
	assert.Equal(t, "Please enter some text first.", err.Error())
	r.AssertExpectations(t)
}
