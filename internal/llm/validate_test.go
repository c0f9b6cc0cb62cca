package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "validate-test-question",
		Description: "A single quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_text":   map[string]any{"type": "string"},
				"question_number": map[string]any{"type": "integer", "minimum": 1},
				"difficulty":      map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
				"options": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "string"},
				},
			},
			"required": []any{"question_text", "question_number"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question_text":"Why rotate crops?","question_number":1,"difficulty":"easy","options":{"A":"Soil health"}}`, false},
		{"optional fields omitted", `{"question_text":"Why?","question_number":2}`, false},
		{"missing required", `{"question_text":"Why?"}`, true},
		{"wrong type", `{"question_text":"Why?","question_number":"one"}`, true},
		{"below minimum", `{"question_text":"Why?","question_number":0}`, true},
		{"bad enum", `{"question_text":"Why?","question_number":1,"difficulty":"extreme"}`, true},
		{"non-string option", `{"question_text":"Why?","question_number":1,"options":{"A":3}}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Fatalf("content not preserved: %q", inv.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
