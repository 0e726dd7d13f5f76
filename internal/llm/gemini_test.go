package llm

import (
	"testing"
)

func TestModelAliases(t *testing.T) {
	tests := []struct {
		aliases  map[string]string
		input    string
		expected string
	}{
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{geminiModels, "gemini-pro", "gemini-2.5-pro"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
		{deepseekModels, "deepseek", "deepseek-chat"},
		{deepseekModels, "deepseek-v3", "deepseek-chat"},
		{deepseekModels, "deepseek-r1", "deepseek-reasoner"},
		{deepseekModels, "deepseek-reasoner", "deepseek-reasoner"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.aliases); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	p, err := NewDeepSeekProvider(DeepSeekConfig{APIKey: "sk-ds", Model: "deepseek-r1"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "deepseek-reasoner" {
		t.Errorf("deepseek-r1 resolved to %q", p.ModelID())
	}
}

func TestBuildGeminiSchema_Highlights(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string"},
			"tier":     map[string]any{"type": "string", "enum": []any{"Beginner", "Emerging", "Intermediate", "Advanced", "Excellence"}},
			"actions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"priority": map[string]any{"type": "integer"},
		},
		"required": []any{"headline", "actions"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	want := map[string]string{"headline": "STRING", "tier": "STRING", "actions": "ARRAY", "priority": "INTEGER"}
	if len(schema.Properties) != len(want) {
		t.Fatalf("properties = %d, want %d", len(schema.Properties), len(want))
	}
	for name, typ := range want {
		if got := string(schema.Properties[name].Type); got != typ {
			t.Errorf("%s type = %s, want %s", name, got, typ)
		}
	}
	if n := len(schema.Properties["tier"].Enum); n != 5 {
		t.Errorf("tier enum has %d values, want 5", n)
	}
	if schema.Properties["actions"].Items.Type != "STRING" {
		t.Errorf("actions items = %s, want STRING", schema.Properties["actions"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Errorf("required = %v", schema.Required)
	}
}
