package advice

import "github.com/abhisek/founderfit/internal/llm"

// HighlightsSchema defines the JSON schema for the structured summary.
var HighlightsSchema = &llm.Schema{
	Name:        "advice-highlights",
	Description: "Priority skills, a 30-day action and a local resource",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"focus_skills": map[string]any{
				"type":        "array",
				"description": "The skills to improve first, most urgent first",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    3,
			},
			"action_30_days": map[string]any{
				"type":        "string",
				"description": "One concrete action to complete within 30 days",
			},
			"resource": map[string]any{
				"type":        "string",
				"description": "One organisation, programme or contact in Senegal",
			},
		},
		"required":             []any{"focus_skills", "action_30_days", "resource"},
		"additionalProperties": false,
	},
}
