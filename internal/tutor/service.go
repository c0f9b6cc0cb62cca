package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/abhisek/learnloop/internal/llm"
)

// Service answers agent requests by prompting an LLM provider for JSON
// in the shape the agent client decodes.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutor service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ModelID reports the model behind the service.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

type task struct {
	system string
	schema *llm.Schema
	gen    GenerationConfig
}

func (s *Service) taskFor(rt agent.RequestType) (task, error) {
	switch rt {
	case agent.RequestExplain:
		return task{explainSystemPrompt, ExplanationSchema, s.cfg.Explain}, nil
	case agent.RequestQuiz:
		return task{quizSystemPrompt, QuizSchema, s.cfg.Quiz}, nil
	case agent.RequestEvaluate:
		return task{evaluateSystemPrompt, FeedbackSchema, s.cfg.Evaluate}, nil
	}
	return task{}, fmt.Errorf("%w: %q", ErrUnknownRequestType, rt)
}

// Respond generates the payload for req. The message is passed to the
// model verbatim as the user turn; the request type picks the system
// prompt and response schema.
func (s *Service) Respond(ctx context.Context, req agent.Request) (json.RawMessage, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	t, err := s.taskFor(req.RequestType)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, string(req.RequestType))
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      t.system,
		Messages:    llm.UserMessage(req.Message),
		Schema:      t.schema,
		MaxTokens:   t.gen.MaxTokens,
		Temperature: t.gen.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%s generation: %w", req.RequestType, err)
	}

	if req.RequestType == agent.RequestQuiz {
		return renumberQuestions(resp.Content)
	}
	return resp.Content, nil
}

// renumberQuestions rewrites question_number to 1..n in list order so
// the client's "Question i of n" header always agrees with the payload.
func renumberQuestions(raw json.RawMessage) (json.RawMessage, error) {
	var out struct {
		Questions []map[string]any `json:"questions"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: raw, Err: err}
	}
	for i, q := range out.Questions {
		q["question_number"] = i + 1
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}
	return b, nil
}
