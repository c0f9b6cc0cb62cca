package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"kv", "agent_call_events", "llm_request_events", "quiz_result_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestKVGetSetDelete(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "recent_topics")
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if ok {
		t.Fatal("expected missing key")
	}

	if err := kv.Set(ctx, "recent_topics", `["Fractions"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "recent_topics", `["Verbs","Fractions"]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := kv.Get(ctx, "recent_topics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != `["Verbs","Fractions"]` {
		t.Errorf("get = %q, %v; want overwritten value", got, ok)
	}

	if err := kv.Delete(ctx, "recent_topics"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "recent_topics"); ok {
		t.Error("expected key removed")
	}
	if err := kv.Delete(ctx, "recent_topics"); err != nil {
		t.Errorf("delete missing key: %v", err)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestAgentCallAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, rt := range []string{"explain", "quiz", "evaluate"} {
		err := repo.AppendAgentCall(ctx, AgentCallEventData{
			SessionID:   "sess-1",
			RequestType: rt,
			AgentID:     "learnloop-tutor",
			Target:      "http://localhost/api/agent",
			Message:     "msg " + rt,
			StatusCode:  200,
			LatencyMs:   12,
			Success:     rt != "quiz",
		})
		if err != nil {
			t.Fatalf("append %s: %v", rt, err)
		}
	}

	all, err := repo.QueryAgentCalls(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].RequestType != "evaluate" || all[2].RequestType != "explain" {
		t.Errorf("order = %s..%s, want newest first", all[0].RequestType, all[2].RequestType)
	}
	if all[1].Success {
		t.Error("quiz call should be recorded as failed")
	}
	if all[0].Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	limited, err := repo.QueryAgentCalls(ctx, QueryOpts{Limit: 1, Before: all[0].Sequence})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].RequestType != "quiz" {
		t.Errorf("limited = %+v, want the quiz call", limited)
	}

	got, err := repo.GetAgentCall(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Message != "msg explain" {
		t.Errorf("message = %q", got.Message)
	}

	_, err = repo.GetAgentCall(ctx, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing: err = %v, want ErrNotFound", err)
	}
}

func TestQuizResultAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendQuizResult(ctx, QuizResultEventData{
		SessionID:    "sess-1",
		Topic:        "Fractions",
		Score:        5,
		Total:        8,
		MasteryLevel: "Intermediate",
		Answers: []QuizAnswerRecord{
			{QuestionNumber: 1, StudentAnswer: "A", IsCorrect: true},
			{QuestionNumber: 2, StudentAnswer: "C", IsCorrect: false},
		},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	results, err := repo.QueryQuizResults(ctx, QueryOpts{From: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	r := results[0]
	if r.Topic != "Fractions" || r.Score != 5 || r.Total != 8 || r.MasteryLevel != "Intermediate" {
		t.Errorf("result = %+v", r.QuizResultEventData)
	}
	if len(r.Answers) != 2 || r.Answers[1].StudentAnswer != "C" {
		t.Errorf("answers = %+v", r.Answers)
	}

	none, err := repo.QueryQuizResults(ctx, QueryOpts{To: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("query past: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results before the append, got %d", len(none))
	}
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "explain", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendAgentCall(ctx, AgentCallEventData{RequestType: "explain", AgentID: "a", Message: "m", Success: true}); err != nil {
		t.Fatalf("append call: %v", err)
	}

	calls, err := repo.QueryAgentCalls(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(calls) != 1 || calls[0].Sequence != 2 {
		t.Errorf("agent call sequence = %+v, want 2", calls)
	}
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "learnloop.db")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	defer s.Close()

	if err := s.KV().Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}
