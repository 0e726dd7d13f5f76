// Package mcptools exposes the scorer to MCP clients.
//
// Each tool follows the same shape: a struct holding its dependencies,
// Definition() returning the mcp.Tool schema and Handle() serving calls.
// Contract violations become tool errors, never protocol errors.
package mcptools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/founderfit/internal/assessment"
	"github.com/abhisek/founderfit/internal/catalog"
)

// parseRatings builds a store from the "ratings" argument: an object
// mapping category names to arrays of 1-5 numbers, where 0 or null marks
// an unanswered statement. A JSON string holding the same object is
// accepted for clients that cannot send nested arguments.
func parseRatings(c *catalog.Catalog, raw any) (*assessment.Store, error) {
	if s, ok := raw.(string); ok {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, fmt.Errorf("'ratings' is not a JSON object: %w", err)
		}
		raw = decoded
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("'ratings' must be an object of category → array of ratings")
	}

	st := assessment.NewStore(c)
	for category, v := range obj {
		if _, ok := c.Lookup(category); !ok {
			return nil, fmt.Errorf("%w: %q", assessment.ErrUnknownCategory, category)
		}
		row, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("ratings for %q must be an array", category)
		}
		if n := c.StatementCount(category); len(row) > n {
			return nil, fmt.Errorf("%w: %q has %d statements, got %d ratings",
				assessment.ErrIndexOutOfRange, category, n, len(row))
		}
		for i, cell := range row {
			if cell == nil {
				continue
			}
			f, ok := cell.(float64)
			if !ok || f != math.Trunc(f) {
				return nil, fmt.Errorf("%w: %q[%d] = %v", assessment.ErrInvalidRating, category, i, cell)
			}
			if f == 0 {
				continue
			}
			if err := st.Set(category, i, assessment.Rating(f)); err != nil {
				return nil, err
			}
		}
	}
	return st, nil
}

func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}
