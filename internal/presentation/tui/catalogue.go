package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/workbench/pkg/domain"
)

// CatalogueMarkdown lists tools grouped by panel, in the order given.
func CatalogueMarkdown(tools []domain.Tool) string {
	var b strings.Builder
	b.WriteString("# Workbench tools\n")

	panel := ""
	for _, t := range tools {
		if t.Panel != panel {
			panel = t.Panel
			fmt.Fprintf(&b, "\n## %s\n", panel)
		}
		fmt.Fprintf(&b, "\n### `%s` %s\n\n", t.ID, t.Title)
		if t.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", t.Description)
		}
		if len(t.Params) == 0 {
			continue
		}
		b.WriteString("| Argument | Type | Required | Description |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, p := range t.Params {
			req := ""
			if p.Required {
				req = "yes"
			}
			desc := p.Description
			if len(p.Enum) > 0 {
				desc = strings.TrimSpace(desc + " (" + strings.Join(p.Enum, ", ") + ")")
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Name, p.Type, req, desc)
		}
	}
	return b.String()
}
