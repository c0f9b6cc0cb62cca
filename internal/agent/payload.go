package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Section is one part of a topic explanation.
type Section struct {
	Title             string `json:"title"`
	Content           string `json:"content"`
	Example           string `json:"example,omitempty"`
	VisualDescription string `json:"visual_description,omitempty"`
}

// Question is a single generated multiple-choice question.
type Question struct {
	QuestionNumber int               `json:"question_number"`
	Difficulty     string            `json:"difficulty"`
	QuestionText   string            `json:"question_text"`
	Options        map[string]string `json:"options"`
	CorrectAnswer  string            `json:"correct_answer"`
}

// Letters returns the option keys in display order.
func (q Question) Letters() []string {
	letters := make([]string, 0, len(q.Options))
	for l := range q.Options {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters
}

// HasOption reports whether letter is one of the question's option keys.
func (q Question) HasOption(letter string) bool {
	_, ok := q.Options[letter]
	return ok
}

// Payload is the decoded content of a successful agent response. The
// concrete type is determined by the request type that produced it.
type Payload interface {
	RequestType() RequestType
}

// ExplainPayload holds the sections of an explanation.
type ExplainPayload struct {
	Sections []Section
	// Synthesized is set when the agent sent no structured sections and a
	// single section was built from free text.
	Synthesized bool
}

func (*ExplainPayload) RequestType() RequestType { return RequestExplain }

// QuizPayload holds the generated questions. It may be empty.
type QuizPayload struct {
	Questions []Question
}

func (*QuizPayload) RequestType() RequestType { return RequestQuiz }

// EvaluatePayload holds the feedback for one answer.
type EvaluatePayload struct {
	Feedback string
	// Defaulted is set when the agent supplied no feedback text.
	Defaulted bool
}

func (*EvaluatePayload) RequestType() RequestType { return RequestEvaluate }

// Defaults carries the context needed to fill in missing payload fields.
type Defaults struct {
	Topic         string
	CorrectAnswer string
}

// Decode converts a raw response payload into the Payload for rt.
func Decode(rt RequestType, raw json.RawMessage, d Defaults) (Payload, error) {
	switch rt {
	case RequestExplain:
		return DecodeExplain(raw, d.Topic)
	case RequestQuiz:
		return DecodeQuiz(raw)
	case RequestEvaluate:
		return DecodeEvaluate(raw, d.CorrectAnswer)
	default:
		return nil, fmt.Errorf("unknown request type %q", rt)
	}
}

type explainWire struct {
	Sections          json.RawMessage `json:"explanation_sections"`
	Content           flexString      `json:"content"`
	Explanation       flexString      `json:"explanation"`
	Example           flexString      `json:"example"`
	VisualDescription flexString      `json:"visual_description"`
}

type sectionWire struct {
	Title             flexString `json:"title"`
	Content           flexString `json:"content"`
	Example           flexString `json:"example"`
	VisualDescription flexString `json:"visual_description"`
}

// DecodeExplain decodes an explain payload. Without structured sections a
// single "Introduction to {topic}" section is synthesized from whatever
// free text is present. Payloads that are not objects get the synthesized
// section with no content.
func DecodeExplain(raw json.RawMessage, topic string) (*ExplainPayload, error) {
	obj, text, err := unwrapPayload(raw)
	if err != nil {
		return nil, err
	}

	var w explainWire
	switch {
	case isObject(obj):
		if err := json.Unmarshal(obj, &w); err != nil {
			return nil, fmt.Errorf("decode explain payload: %w", err)
		}
	case obj == nil:
		w.Content = flexString(text)
	}

	if sections := decodeSections(w.Sections); len(sections) > 0 {
		return &ExplainPayload{Sections: sections}, nil
	}

	content := string(w.Content)
	if content == "" {
		content = string(w.Explanation)
	}
	return &ExplainPayload{
		Sections: []Section{{
			Title:             "Introduction to " + topic,
			Content:           content,
			Example:           string(w.Example),
			VisualDescription: string(w.VisualDescription),
		}},
		Synthesized: true,
	}, nil
}

// decodeSections keeps the object entries of a section list.
func decodeSections(raw json.RawMessage) []Section {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var sections []Section
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var w sectionWire
		if err := json.Unmarshal(item, &w); err != nil {
			continue
		}
		sections = append(sections, Section{
			Title:             string(w.Title),
			Content:           string(w.Content),
			Example:           string(w.Example),
			VisualDescription: string(w.VisualDescription),
		})
	}
	return sections
}

type questionWire struct {
	QuestionNumber flexInt     `json:"question_number"`
	Difficulty     flexString  `json:"difficulty"`
	QuestionText   flexString  `json:"question_text"`
	Options        flexOptions `json:"options"`
	CorrectAnswer  flexString  `json:"correct_answer"`
}

// DecodeQuiz decodes a quiz payload. It accepts an envelope with a
// "questions" list, a bare list, or a single question object. A bare
// object without question text yields no questions, as does a
// "questions" field that is not a list. Missing or unusable question
// numbers are filled with the 1-based position.
func DecodeQuiz(raw json.RawMessage) (*QuizPayload, error) {
	obj, _, err := unwrapPayload(raw)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &QuizPayload{}, nil
	}

	var questions []Question
	if isObject(obj) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(obj, &fields); err != nil {
			return nil, fmt.Errorf("decode quiz payload: %w", err)
		}
		if list, ok := fields["questions"]; ok {
			questions = decodeQuestions(list)
		} else if q, ok := decodeQuestion(obj); ok && q.QuestionText != "" {
			questions = []Question{q}
		}
	} else {
		questions = decodeQuestions(obj)
	}

	for i := range questions {
		if questions[i].QuestionNumber <= 0 {
			questions[i].QuestionNumber = i + 1
		}
	}
	return &QuizPayload{Questions: questions}, nil
}

func decodeQuestions(raw json.RawMessage) []Question {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var questions []Question
	for _, item := range items {
		if q, ok := decodeQuestion(item); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

func decodeQuestion(raw json.RawMessage) (Question, bool) {
	if !isObject(raw) {
		return Question{}, false
	}
	var w questionWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Question{}, false
	}
	return Question{
		QuestionNumber: int(w.QuestionNumber),
		Difficulty:     string(w.Difficulty),
		QuestionText:   string(w.QuestionText),
		Options:        map[string]string(w.Options),
		CorrectAnswer:  string(w.CorrectAnswer),
	}, true
}

type evaluateWire struct {
	Feedback    flexString `json:"feedback"`
	Explanation flexString `json:"explanation"`
}

// DecodeEvaluate decodes an evaluate payload, falling back to
// "Correct answer: X" when the agent supplies no usable feedback.
func DecodeEvaluate(raw json.RawMessage, correctAnswer string) (*EvaluatePayload, error) {
	obj, text, err := unwrapPayload(raw)
	if err != nil {
		return nil, err
	}

	var w evaluateWire
	switch {
	case isObject(obj):
		if err := json.Unmarshal(obj, &w); err != nil {
			return nil, fmt.Errorf("decode evaluate payload: %w", err)
		}
	case obj == nil:
		w.Feedback = flexString(text)
	}

	fb := string(w.Feedback)
	if fb == "" {
		fb = string(w.Explanation)
	}
	if fb == "" {
		return &EvaluatePayload{Feedback: "Correct answer: " + correctAnswer, Defaulted: true}, nil
	}
	return &EvaluatePayload{Feedback: fb}, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// unwrapPayload normalizes the envelope's response field. A JSON object or
// array is returned as obj. A JSON string is unquoted; if it holds JSON it
// is returned as obj, otherwise as free text. null, empty and other scalars
// yield neither.
func unwrapPayload(raw json.RawMessage) (obj json.RawMessage, text string, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, "", nil
	}

	switch trimmed[0] {
	case '{', '[':
		return trimmed, "", nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, "", fmt.Errorf("decode payload string: %w", err)
		}
		inner := strings.TrimSpace(s)
		if inner != "" && (inner[0] == '{' || inner[0] == '[') && json.Valid([]byte(inner)) {
			return json.RawMessage(inner), "", nil
		}
		return nil, s, nil
	default:
		return nil, "", nil
	}
}
