package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/scoring"
)

// ScoreTool handles the score_assessment MCP tool.
type ScoreTool struct {
	catalog *catalog.Catalog
}

// NewScoreTool creates a ScoreTool.
func NewScoreTool(c *catalog.Catalog) *ScoreTool {
	return &ScoreTool{catalog: c}
}

// Definition returns the MCP tool definition for score_assessment.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_assessment",
		mcp.WithDescription(
			"Score a self-assessment. Returns per-category averages, the overall score, the profile tier, "+
				"top strengths and weaknesses, and progress. Unanswered statements count as zero "+
				"in the overall score.",
		),
		mcp.WithObject("ratings",
			mcp.Required(),
			mcp.Description("Object mapping category name to an array of ratings (1-5) in statement order; "+
				"use 0 or null for unanswered statements. Call assessment_catalog for the names."),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
			mcp.Enum("markdown", "json"),
		),
	)
}

// Handle processes the score_assessment tool call.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["ratings"]
	if !ok {
		return mcp.NewToolResultError("'ratings' is required"), nil
	}
	st, err := parseRatings(t.catalog, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := scoring.Evaluate(st)

	switch req.GetString("format", "markdown") {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case "markdown":
		return mcp.NewToolResultText(formatResult(res)), nil
	default:
		return mcp.NewToolResultError("'format' must be markdown or json"), nil
	}
}

func formatResult(res scoring.Result) string {
	var b strings.Builder
	b.WriteString("## Assessment Result\n\n")
	fmt.Fprintf(&b, "- **Overall**: %.2f/5\n", res.Overall)
	fmt.Fprintf(&b, "- **Profile**: %s (%s)\n", res.Tier.Label, res.Tier.Description)
	fmt.Fprintf(&b, "- **Recommended action**: %s\n", res.Tier.Action)
	fmt.Fprintf(&b, "- **Progress**: %d/%d statements (%.0f%%)\n", res.Answered, res.Total, res.Progress)
	fmt.Fprintf(&b, "- **Strong points**: %d\n", res.StrongCount)

	b.WriteString("\n### Scores\n")
	for _, s := range res.Scores {
		fmt.Fprintf(&b, "- %s: %.2f\n", s.Category, s.Score)
	}

	b.WriteString("\n### Strengths\n")
	for _, s := range res.Strengths {
		fmt.Fprintf(&b, "- %s (%.2f)\n", s.Category, s.Score)
	}
	b.WriteString("\n### Areas to develop\n")
	for _, s := range res.Weaknesses {
		fmt.Fprintf(&b, "- %s (%.2f)\n", s.Category, s.Score)
	}
	return b.String()
}
