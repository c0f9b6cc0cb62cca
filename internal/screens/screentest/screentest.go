// Package screentest holds helpers for driving screens against a real
// session controller backed by canned agent responses.
package screentest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/abhisek/learnloop/internal/session"
)

// NewController returns a controller whose agent answers from responses
// in order, plus the mock so tests can inspect the requests.
func NewController(responses ...agent.MockResponse) (*session.Controller, *agent.MockCaller) {
	mock := agent.NewMockCaller(responses...)
	ctrl := session.NewController(context.Background(), session.Options{
		Agent:        agent.NewClient(mock, ""),
		NewSessionID: func() string { return "test-session" },
	})
	return ctrl, mock
}

// Explain is a canned explain response with one section per title.
func Explain(titles ...string) agent.MockResponse {
	sections := make([]map[string]string, 0, len(titles))
	for _, t := range titles {
		sections = append(sections, map[string]string{
			"title":              t,
			"content":            t + " content",
			"example":            t + " example",
			"visual_description": t + " picture",
		})
	}
	return payload(map[string]any{"explanation_sections": sections})
}

// Quiz is a canned quiz response with n questions. Question i has correct
// answer "A" and text "Question i?".
func Quiz(n int) agent.MockResponse {
	questions := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, map[string]any{
			"question_number": i,
			"difficulty":      "easy",
			"question_text":   fmt.Sprintf("Question %d?", i),
			"options":         map[string]string{"A": "right", "B": "wrong", "C": "nope", "D": "never"},
			"correct_answer":  "A",
		})
	}
	return payload(map[string]any{"questions": questions})
}

// Feedback is a canned evaluate response.
func Feedback(text string) agent.MockResponse {
	return payload(map[string]string{"feedback": text})
}

// Failure is a canned failed request.
func Failure(msg string) agent.MockResponse {
	return agent.MockResponse{Err: &agent.RequestError{Message: msg}}
}

func payload(v any) agent.MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return agent.MockResponse{Payload: b}
}

// Drain runs cmd and any commands it batches, returning every message
// produced. Only use it on commands that do not sleep.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type returns one key press per rune of s.
func Type(s string) []tea.KeyPressMsg {
	keys := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		keys = append(keys, Key(r))
	}
	return keys
}

// Contains reports whether every want string appears in view.
func Contains(view string, want ...string) (string, bool) {
	for _, w := range want {
		if !strings.Contains(view, w) {
			return w, false
		}
	}
	return "", true
}
