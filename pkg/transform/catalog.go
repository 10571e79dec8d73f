package transform

import (
	"io"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/registry"
)

// Tool identifiers.
const (
	ToolWordCount          domain.ToolID = "word_count"
	ToolCaseConvert        domain.ToolID = "case_convert"
	ToolConvertLength      domain.ToolID = "convert_length"
	ToolConvertWeight      domain.ToolID = "convert_weight"
	ToolConvertTemperature domain.ToolID = "convert_temperature"
	ToolBMI                domain.ToolID = "bmi"
	ToolAge                domain.ToolID = "age"
	ToolPassword           domain.ToolID = "password"
	ToolURLEncode          domain.ToolID = "url_encode"
	ToolURLDecode          domain.ToolID = "url_decode"
	ToolBase64Encode       domain.ToolID = "base64_encode"
	ToolBase64Decode       domain.ToolID = "base64_decode"
	ToolJSONFormat         domain.ToolID = "json_format"
	ToolJSONMinify         domain.ToolID = "json_minify"
	ToolTextToPDF          domain.ToolID = "text_to_pdf"
	ToolJPGToPNG           domain.ToolID = "jpg_to_png"
	ToolPNGToJPG           domain.ToolID = "png_to_jpg"
	ToolQRCode             domain.ToolID = "qr_code"
	ToolTextToImage        domain.ToolID = "text_to_image"
)

// Dependencies are the collaborators of the tools that need them.
// Tools whose collaborator is nil are not registered.
type Dependencies struct {
	Clock      ports.Clock
	Random     io.Reader
	Renderer   ports.DocumentRenderer
	QR         ports.QREncoder
	Images     ports.ImageCodec
	Rasterizer ports.TextRasterizer

	PageSize ports.PageSize
	QRSize   int
}

var (
	textParam    = domain.Param{Name: "text", Type: domain.ParamString, Description: "Input text"}
	requiredText = domain.Param{Name: "text", Type: domain.ParamString, Required: true, Description: "Input text"}
	fileParams   = []domain.Param{
		{Name: "data", Type: domain.ParamBytes, Required: true, Description: "Image bytes (base64 in JSON)"},
		{Name: "mime", Type: domain.ParamString, Description: "Media type of the upload; sniffed when empty"},
		{Name: "filename", Type: domain.ParamString, Description: "Original file name"},
	}
)

func unitParams(a, aDesc, b, bDesc string) []domain.Param {
	return []domain.Param{
		{Name: a, Type: domain.ParamNumber, Description: aDesc},
		{Name: b, Type: domain.ParamNumber, Description: bDesc},
	}
}

// Catalogue returns the metadata of every built-in tool, in panel order.
func Catalogue() []domain.Tool {
	return []domain.Tool{
		{ID: ToolWordCount, Panel: "word-counter", Title: "Word & Character Counter",
			Description: "Counts words, characters with and without whitespace, and lines.",
			Params:      []domain.Param{{Name: "text", Type: domain.ParamString, Description: "Text to count"}}},
		{ID: ToolCaseConvert, Panel: "case-converter", Title: "Case Converter",
			Description: "Converts text to UPPER, lower, Title or Sentence case.",
			Params: []domain.Param{
				{Name: "text", Type: domain.ParamString, Description: "Text to convert"},
				{Name: "mode", Type: domain.ParamString, Required: true, Description: "Target case",
					Enum: []string{CaseUpper, CaseLower, CaseTitle, CaseSentence}},
			}},
		{ID: ToolTextToPDF, Panel: "text-to-pdf", Title: "Text to PDF",
			Description: "Renders plain text into a paginated PDF document.",
			Params: []domain.Param{
				requiredText,
				{Name: "filename", Type: domain.ParamString, Description: "Output file name (default document.pdf)"},
				{Name: "page_size", Type: domain.ParamString, Description: "Paper format",
					Enum: []string{string(ports.PageA4), string(ports.PageLetter)}},
			}},
		{ID: ToolJPGToPNG, Panel: "jpg-to-png", Title: "JPG to PNG",
			Description: "Re-encodes a JPEG image as PNG.", Params: fileParams},
		{ID: ToolPNGToJPG, Panel: "png-to-jpg", Title: "PNG to JPG",
			Description: "Re-encodes a PNG image as JPEG on a white background.", Params: fileParams},
		{ID: ToolConvertLength, Panel: "unit-converter", Title: "Length Converter",
			Description: "Converts between centimetres and inches.",
			Params:      unitParams("cm", "Centimetres", "in", "Inches")},
		{ID: ToolConvertWeight, Panel: "unit-converter", Title: "Weight Converter",
			Description: "Converts between kilograms and pounds.",
			Params:      unitParams("kg", "Kilograms", "lb", "Pounds")},
		{ID: ToolConvertTemperature, Panel: "unit-converter", Title: "Temperature Converter",
			Description: "Converts between Celsius and Fahrenheit.",
			Params:      unitParams("c", "Degrees Celsius", "f", "Degrees Fahrenheit")},
		{ID: ToolBMI, Panel: "bmi-calculator", Title: "BMI Calculator",
			Description: "Computes the body mass index and its category.",
			Params: []domain.Param{
				{Name: "weight", Type: domain.ParamNumber, Required: true, Description: "Weight in kg"},
				{Name: "height", Type: domain.ParamNumber, Required: true, Description: "Height in cm"},
			}},
		{ID: ToolAge, Panel: "age-calculator", Title: "Age Calculator",
			Description: "Computes an age in years, months and days.",
			Params: []domain.Param{
				{Name: "dob", Type: domain.ParamString, Required: true, Description: "Date of birth (YYYY-MM-DD)"},
			}},
		{ID: ToolPassword, Panel: "password-generator", Title: "Password Generator",
			Description: "Generates a random password from the selected character sets.",
			Params: []domain.Param{
				{Name: "length", Type: domain.ParamNumber, Description: "Length, clamped to 4..64"},
				{Name: "upper", Type: domain.ParamBoolean, Description: "Include A-Z"},
				{Name: "lower", Type: domain.ParamBoolean, Description: "Include a-z"},
				{Name: "numbers", Type: domain.ParamBoolean, Description: "Include 0-9"},
				{Name: "symbols", Type: domain.ParamBoolean, Description: "Include symbols"},
			}},
		{ID: ToolURLEncode, Panel: "url-encoder", Title: "URL Encode",
			Description: "Percent-encodes a URI component.", Params: []domain.Param{textParam}},
		{ID: ToolURLDecode, Panel: "url-encoder", Title: "URL Decode",
			Description: "Decodes a percent-encoded URI component.", Params: []domain.Param{textParam}},
		{ID: ToolBase64Encode, Panel: "base64-encoder", Title: "Base64 Encode",
			Description: "Encodes Latin-1 text as Base64.", Params: []domain.Param{textParam}},
		{ID: ToolBase64Decode, Panel: "base64-encoder", Title: "Base64 Decode",
			Description: "Decodes Base64 into Latin-1 text.", Params: []domain.Param{textParam}},
		{ID: ToolJSONFormat, Panel: "json-formatter", Title: "JSON Format",
			Description: "Pretty-prints JSON with two-space indentation.", Params: []domain.Param{textParam}},
		{ID: ToolJSONMinify, Panel: "json-formatter", Title: "JSON Minify",
			Description: "Removes insignificant whitespace from JSON.", Params: []domain.Param{textParam}},
		{ID: ToolQRCode, Panel: "qr-generator", Title: "QR Code Generator",
			Description: "Encodes text or a URL as a QR code.",
			Params: []domain.Param{
				requiredText,
				{Name: "size", Type: domain.ParamNumber, Description: "Edge length in pixels (default 180)"},
			}},
		{ID: ToolTextToImage, Panel: "text-to-image", Title: "Text to Image",
			Description: "Draws text onto an 800x400 PNG.", Params: []domain.Param{requiredText}},
	}
}

// Register adds the built-in tools to r.
func Register(r *registry.Registry, deps Dependencies) {
	fns := map[domain.ToolID]registry.Transform{
		ToolWordCount:          WordCount,
		ToolCaseConvert:        CaseConvert,
		ToolConvertLength:      ConvertLength,
		ToolConvertWeight:      ConvertWeight,
		ToolConvertTemperature: ConvertTemperature,
		ToolBMI:                BMI,
		ToolAge:                Age(deps.Clock),
		ToolPassword:           Password(deps.Random),
		ToolURLEncode:          URLEncode,
		ToolURLDecode:          URLDecode,
		ToolBase64Encode:       Base64Encode,
		ToolBase64Decode:       Base64Decode,
		ToolJSONFormat:         JSONFormat,
		ToolJSONMinify:         JSONMinify,
	}
	if deps.Renderer != nil {
		fns[ToolTextToPDF] = TextToPDF(deps.Renderer, deps.PageSize)
	}
	if deps.Images != nil {
		fns[ToolJPGToPNG] = JPGToPNG(deps.Images)
		fns[ToolPNGToJPG] = PNGToJPG(deps.Images)
	}
	if deps.QR != nil {
		fns[ToolQRCode] = QRCode(deps.QR, deps.QRSize)
	}
	if deps.Rasterizer != nil {
		fns[ToolTextToImage] = TextToImage(deps.Rasterizer)
	}

	for _, tool := range Catalogue() {
		if fn, ok := fns[tool.ID]; ok {
			r.Register(tool, fn)
		}
	}
}
