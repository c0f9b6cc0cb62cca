package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultAgentID identifies the tutoring agent when no override is configured.
const DefaultAgentID = "learnloop-tutor"

// RequestType selects which kind of content the agent produces.
type RequestType string

const (
	RequestExplain  RequestType = "explain"
	RequestQuiz     RequestType = "quiz"
	RequestEvaluate RequestType = "evaluate"
)

// Valid reports whether t is one of the known request types.
func (t RequestType) Valid() bool {
	switch t {
	case RequestExplain, RequestQuiz, RequestEvaluate:
		return true
	}
	return false
}

// ParseRequestType converts a wire value into a RequestType, ignoring case
// and surrounding space.
func ParseRequestType(s string) (RequestType, error) {
	t := RequestType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown request type %q", s)
	}
	return t, nil
}

// Request is the JSON body posted to the agent endpoint.
type Request struct {
	Message     string      `json:"message"`
	AgentID     string      `json:"agent_id"`
	RequestType RequestType `json:"request_type"`
}

// Caller performs one round trip to the agent and returns the raw
// payload held in the envelope's "response" field.
type Caller interface {
	Call(ctx context.Context, req Request) (json.RawMessage, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, req Request) (json.RawMessage, error)

func (f CallerFunc) Call(ctx context.Context, req Request) (json.RawMessage, error) {
	return f(ctx, req)
}
