package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/scoring"
)

// AdviseTool handles the assessment_advice MCP tool. It is only
// registered when an LLM provider is configured.
type AdviseTool struct {
	catalog *catalog.Catalog
	advice  *advice.Service
}

// NewAdviseTool creates an AdviseTool.
func NewAdviseTool(c *catalog.Catalog, svc *advice.Service) *AdviseTool {
	return &AdviseTool{catalog: c, advice: svc}
}

func kindNames() []string {
	kinds := advice.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// Definition returns the MCP tool definition for assessment_advice.
func (t *AdviseTool) Definition() mcp.Tool {
	return mcp.NewTool("assessment_advice",
		mcp.WithDescription(
			"Generate personalised development advice for a scored self-assessment, "+
				"tailored to entrepreneurs in Senegal.",
		),
		mcp.WithObject("ratings",
			mcp.Required(),
			mcp.Description("Same shape as score_assessment: category → array of ratings"),
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Which advice to produce"),
			mcp.Enum(kindNames()...),
		),
		mcp.WithString("sector",
			mcp.Description("Business sector of the respondent"),
		),
		mcp.WithString("experience",
			mcp.Description("Entrepreneurial experience: "+strings.Join(catalog.ExperienceLevels, ", ")),
		),
	)
}

// Handle processes the assessment_advice tool call.
func (t *AdviseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := advice.ParseKind(req.GetString("kind", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, ok := req.GetArguments()["ratings"]
	if !ok {
		return mcp.NewToolResultError("'ratings' is required"), nil
	}
	st, err := parseRatings(t.catalog, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var r assessment.Respondent
	if v := req.GetString("sector", ""); v != "" {
		r.Sector = assessment.Select(v)
	}
	if v := req.GetString("experience", ""); v != "" {
		r.Experience = assessment.Select(v)
	}
	if err := r.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := t.advice.Collect(ctx, kind, advice.Input{Respondent: r, Result: scoring.Evaluate(st)}, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("advice generation failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("## %s\n\n%s", kind.Title(), text)), nil
}
