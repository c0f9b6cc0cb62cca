package tutor

import "github.com/abhisek/learnloop/internal/llm"

// Schemas are written for the strictest provider (OpenAI structured
// outputs): every property is required and objects are closed. Optional
// text is returned as an empty string.

// ExplanationSchema describes the explain payload.
var ExplanationSchema = &llm.Schema{
	Name:        "topic-explanation",
	Description: "A beginner-friendly explanation of a topic split into short sections",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation_sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Short heading for the section",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "Two to four plain sentences",
						},
						"example": map[string]any{
							"type":        "string",
							"description": "A concrete everyday example, or an empty string",
						},
						"visual_description": map[string]any{
							"type":        "string",
							"description": "A picture the learner could draw or imagine, or an empty string",
						},
					},
					"required":             []any{"title", "content", "example", "visual_description"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"explanation_sections"},
		"additionalProperties": false,
	},
}

// QuizSchema describes the quiz payload.
var QuizSchema = &llm.Schema{
	Name:        "topic-quiz",
	Description: "Multiple choice questions with four lettered options each",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_number": map[string]any{
							"type":    "integer",
							"minimum": 1,
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"question_text": map[string]any{
							"type": "string",
						},
						"options": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"A": map[string]any{"type": "string"},
								"B": map[string]any{"type": "string"},
								"C": map[string]any{"type": "string"},
								"D": map[string]any{"type": "string"},
							},
							"required":             []any{"A", "B", "C", "D"},
							"additionalProperties": false,
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "Letter of the correct option",
						},
					},
					"required":             []any{"question_number", "difficulty", "question_text", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// FeedbackSchema describes the evaluate payload.
var FeedbackSchema = &llm.Schema{
	Name:        "answer-feedback",
	Description: "Short feedback on a learner's answer to one question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"description": "One to three encouraging sentences explaining the correct answer",
			},
		},
		"required":             []any{"feedback"},
		"additionalProperties": false,
	},
}
