package transform

import (
	"context"
	"testing"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue_UniqueIDsAndPanels(t *testing.T) {
	seen := map[domain.ToolID]bool{}
	panels := map[string]bool{}
	for _, tool := range Catalogue() {
		assert.False(t, seen[tool.ID], "duplicate tool %s", tool.ID)
		seen[tool.ID] = true
		panels[tool.Panel] = true
		assert.NotEmpty(t, tool.Title, tool.ID)
		assert.NotEmpty(t, tool.Description, tool.ID)
	}
	assert.Len(t, seen, 19)
	assert.Len(t, panels, 14)
}

func TestRegister_WithoutCollaborators(t *testing.T) {
	reg := registry.NewRegistry()
	Register(reg, Dependencies{})

	assert.Len(t, reg.List(), 14)
	_, ok := reg.Lookup(ToolTextToPDF)
	assert.False(t, ok)

	res := reg.Run(context.Background(), ToolBMI, domain.Input{"weight": 70, "height": 175})
	require.True(t, res.OK)
	assert.Equal(t, "BMI: 22.9 (Normal)", res.Text())

	res = reg.Run(context.Background(), ToolJSONFormat, domain.Input{"text": "{"})
	assert.False(t, res.OK)
	assert.Equal(t, domain.KindFormat, res.Kind)
	assert.Contains(t, res.Error, "Invalid JSON: ")
}

func TestRegister_AllTools(t *testing.T) {
	reg := registry.NewRegistry()
	Register(reg, Dependencies{
		Renderer:   new(mockRenderer),
		QR:         new(mockQR),
		Images:     new(mockCodec),
		Rasterizer: new(mockRasterizer),
	})

	assert.Len(t, reg.List(), len(Catalogue()))
	assert.Len(t, reg.ByPanel("unit-converter"), 3)
	assert.Len(t, reg.ByPanel("json-formatter"), 2)
}
