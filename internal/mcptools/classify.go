package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/founderfit/internal/scoring"
)

// ClassifyTool handles the classify_score MCP tool.
type ClassifyTool struct{}

// NewClassifyTool creates a ClassifyTool.
func NewClassifyTool() *ClassifyTool {
	return &ClassifyTool{}
}

// Definition returns the MCP tool definition for classify_score.
func (t *ClassifyTool) Definition() mcp.Tool {
	return mcp.NewTool("classify_score",
		mcp.WithDescription("Map an overall score in [0,5] to its profile tier."),
		mcp.WithNumber("score",
			mcp.Required(),
			mcp.Description("Overall score between 0 and 5"),
		),
	)
}

// Handle processes the classify_score tool call.
func (t *ClassifyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, ok := floatArg(req, "score")
	if !ok {
		return mcp.NewToolResultError("'score' is required and must be a number"), nil
	}
	if score < 0 || score > scoring.MaxScore {
		return mcp.NewToolResultError(fmt.Sprintf("'score' must be between 0 and %.0f, got %g", scoring.MaxScore, score)), nil
	}

	tier := scoring.Classify(score)
	return mcp.NewToolResultText(fmt.Sprintf(
		"**%s** (from %.1f)\n\n%s.\nRecommended action: %s.",
		tier.Label, tier.Threshold, tier.Description, tier.Action,
	)), nil
}
