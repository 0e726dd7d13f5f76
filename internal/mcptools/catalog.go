package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/founderfit/internal/catalog"
)

// CatalogTool handles the assessment_catalog MCP tool.
type CatalogTool struct {
	catalog *catalog.Catalog
}

// NewCatalogTool creates a CatalogTool.
func NewCatalogTool(c *catalog.Catalog) *CatalogTool {
	return &CatalogTool{catalog: c}
}

// Definition returns the MCP tool definition for assessment_catalog.
func (t *CatalogTool) Definition() mcp.Tool {
	return mcp.NewTool("assessment_catalog",
		mcp.WithDescription(
			"List the skill categories and statements of the entrepreneurial self-assessment, "+
				"plus the sectors and experience levels a respondent can pick. "+
				"Statement order matters: ratings arrays follow it.",
		),
		mcp.WithString("category",
			mcp.Description("Only show this category"),
		),
	)
}

// Handle processes the assessment_catalog tool call.
func (t *CatalogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	only := req.GetString("category", "")
	if only != "" {
		if _, ok := t.catalog.Lookup(only); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category %q; valid: %s",
				only, strings.Join(t.catalog.Names(), ", "))), nil
		}
	}

	var b strings.Builder
	b.WriteString("## Assessment Catalog\n\n")
	b.WriteString("Rate each statement from 1 (strongly disagree) to 5 (strongly agree).\n")

	for _, cat := range t.catalog.Categories {
		if only != "" && cat.Name != only {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n", cat.Name)
		for i, s := range cat.Statements {
			fmt.Fprintf(&b, "%d. %s\n", i, s)
		}
	}

	if only == "" {
		fmt.Fprintf(&b, "\n**Sectors**: %s (or any custom text)\n", strings.Join(catalog.Sectors, ", "))
		fmt.Fprintf(&b, "**Experience levels**: %s\n", strings.Join(catalog.ExperienceLevels, ", "))
	}

	return mcp.NewToolResultText(b.String()), nil
}
