package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/workbench/pkg/domain"
)

var sample = []domain.Tool{
	{ID: "word_count", Panel: "word-counter", Title: "Word Counter", Params: []domain.Param{
		{Name: "text", Type: domain.ParamString},
	}},
	{ID: "case_convert", Panel: "case-converter", Title: "Case Converter", Params: []domain.Param{
		{Name: "mode", Type: domain.ParamString, Required: true, Enum: []string{"upper", "lower"}},
	}},
	{ID: "url_encode", Panel: "url-encoder", Title: "URL Encode"},
}

func TestCatalogueMarkdown(t *testing.T) {
	md := CatalogueMarkdown(sample)

	assert.Equal(t, 3, strings.Count(md, "\n## "))
	assert.Contains(t, md, "### `case_convert` Case Converter")
	assert.Contains(t, md, "| mode | string | yes | (upper, lower) |")
	assert.Less(t, strings.Index(md, "word_count"), strings.Index(md, "url_encode"))
}

func TestPlainRenderer(t *testing.T) {
	out, err := NewPlainRenderer()(CatalogueMarkdown(sample))
	require.NoError(t, err)
	assert.Contains(t, out, "case_convert")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0\n", 2026)
	assert.Contains(t, buf.String(), "v0.1.0 · © 2026")
}
