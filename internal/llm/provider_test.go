package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/learnloop/internal/store"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"sections":[]}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys", Messages: UserMessage("Explain fractions")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"sections":[]}` || resp.Usage.InputTokens != 10 || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %T", err)
	}

	if mock.CallCount() != 3 {
		t.Fatalf("calls = %d, want 3", mock.CallCount())
	}
	if reqs := mock.Requests(); reqs[0].System != "sys" || reqs[0].Messages[0].Content != "Explain fractions" {
		t.Fatalf("first call not recorded: %+v", mock.Requests()[0])
	}
	if mock.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", mock.ModelID())
	}
}

func TestRequest_MaxTokensDefault(t *testing.T) {
	if got := (Request{}).maxTokens(); got != DefaultMaxTokens {
		t.Fatalf("maxTokens = %d, want %d", got, DefaultMaxTokens)
	}
	if got := (Request{MaxTokens: 300}).maxTokens(); got != 300 {
		t.Fatalf("maxTokens = %d, want 300", got)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != PurposeUnset {
		t.Fatalf("expected %q, got %q", PurposeUnset, p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "")); p != PurposeUnset {
		t.Fatalf("empty purpose should be ignored, got %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "quiz")); p != "quiz" {
		t.Fatalf("expected 'quiz', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LEARNLOOP_LLM_PROVIDER", "openai")
	t.Setenv("LEARNLOOP_OPENAI_API_KEY", "sk-env")
	t.Setenv("LEARNLOOP_OPENAI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("LEARNLOOP_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:9999/v1" {
		t.Fatalf("base URL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.Timeout.String() != "5s" {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("default model lost: %q", cfg.OpenAI.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "o" {
		t.Fatalf("expected openai to win over anthropic, got %+v", cfg)
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("claude-haiku", anthropicModels); got != anthropicModels["claude-haiku"] {
		t.Fatalf("friendly name not mapped: %q", got)
	}
	if got := resolveModel("some-new-model", anthropicModels); got != "some-new-model" {
		t.Fatalf("unknown name should pass through, got %q", got)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "bogus"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "anthropic"}, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

type llmEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *llmEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &llmEventRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"questions":[]}`),
		Usage:   Usage{InputTokens: 42, OutputTokens: 7},
	})
	p := WithLogging(mock, "mock", repo, nil)

	req := Request{
		System:   "You are a tutor.",
		Messages: UserMessage("Quiz me on photosynthesis"),
		Schema:   &Schema{Name: "quiz-questions", Definition: map[string]any{"type": "object"}},
	}
	if _, err := p.Generate(WithPurpose(context.Background(), "quiz"), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Success || ev.Purpose != "quiz" || ev.Provider != "mock" || ev.Model != "mock" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 42 || ev.OutputTokens != 7 {
		t.Fatalf("tokens = %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	for _, want := range []string{"[system]", "You are a tutor.", "[user]", "photosynthesis", "[schema: quiz-questions]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
	if ev.ResponseBody != `{"questions":[]}` {
		t.Fatalf("response body = %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailureAndIgnoresRepoError(t *testing.T) {
	repo := &llmEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrRequestRejected{StatusCode: 401, Err: errors.New("bad key")}})
	p := WithLogging(mock, "anthropic", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	var rejected *ErrRequestRejected
	if !errors.As(err, &rejected) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("failure not recorded: %+v", repo.events)
	}
}
