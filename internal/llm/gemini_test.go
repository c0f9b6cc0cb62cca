package llm

import "testing"

func TestGeminiModelMapping(t *testing.T) {
	tests := map[string]string{
		"gemini-flash":     "gemini-2.5-flash",
		"gemini-pro":       "gemini-2.5-pro",
		"gemini-2.0-flash": "gemini-2.0-flash",
	}
	for in, want := range tests {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_number": map[string]any{"type": "integer"},
						"difficulty":      map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
						"correct_answer":  map[string]any{"type": "string", "description": "Option letter"},
					},
					"required": []any{"question_number", "correct_answer"},
				},
			},
		},
		"required": []string{"questions"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" || len(schema.Required) != 1 {
		t.Fatalf("top level = %s required=%v", schema.Type, schema.Required)
	}
	questions := schema.Properties["questions"]
	if questions.Type != "ARRAY" {
		t.Fatalf("questions type = %s", questions.Type)
	}
	if questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("minItems not carried: %v", questions.MinItems)
	}
	item := questions.Items
	if item.Properties["question_number"].Type != "INTEGER" {
		t.Fatalf("question_number type = %s", item.Properties["question_number"].Type)
	}
	if len(item.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("enum = %v", item.Properties["difficulty"].Enum)
	}
	if item.Properties["correct_answer"].Description != "Option letter" {
		t.Fatalf("description lost")
	}
	if len(item.Required) != 2 {
		t.Fatalf("item required = %v", item.Required)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{}); err == nil {
		t.Fatal("expected error for missing key")
	}
}
