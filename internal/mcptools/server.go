package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/catalog"
)

const instructions = `founderfit scores an entrepreneurial self-assessment.
Call assessment_catalog first to learn the categories and statement order,
then score_assessment with the ratings. classify_score maps any overall
score to its profile tier.`

// NewServer creates the MCP server with every tool registered. svc may be
// nil or unconfigured, in which case assessment_advice is left out.
func NewServer(c *catalog.Catalog, svc *advice.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"founderfit",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	catalogTool := NewCatalogTool(c)
	s.AddTool(catalogTool.Definition(), catalogTool.Handle)

	scoreTool := NewScoreTool(c)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	classifyTool := NewClassifyTool()
	s.AddTool(classifyTool.Definition(), classifyTool.Handle)

	if svc.Available() {
		adviseTool := NewAdviseTool(c, svc)
		s.AddTool(adviseTool.Definition(), adviseTool.Handle)
	}

	return s
}
