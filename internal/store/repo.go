package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
// Results are always ordered newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// KVRepo is a string-keyed get/set store.
type KVRepo interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// AgentCallEventData captures a single round trip to the agent.
type AgentCallEventData struct {
	SessionID    string
	RequestType  string
	AgentID      string
	Target       string
	Message      string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	ResponseBody string
}

// AgentCallEvent is a stored AgentCallEventData.
type AgentCallEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	AgentCallEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// QuizAnswerRecord is one entry of a completed quiz's breakdown.
type QuizAnswerRecord struct {
	QuestionNumber int    `json:"question_number"`
	StudentAnswer  string `json:"student_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Feedback       string `json:"feedback"`
}

// QuizResultEventData captures a completed quiz.
type QuizResultEventData struct {
	SessionID    string
	Topic        string
	Score        int
	Total        int
	MasteryLevel string
	Answers      []QuizAnswerRecord
}

// QuizResultEvent is a stored QuizResultEventData.
type QuizResultEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	QuizResultEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAgentCall records an agent round trip.
	AppendAgentCall(ctx context.Context, data AgentCallEventData) error

	// QueryAgentCalls returns agent calls, newest first.
	QueryAgentCalls(ctx context.Context, opts QueryOpts) ([]AgentCallEvent, error)

	// GetAgentCall returns one agent call by id, or ErrNotFound.
	GetAgentCall(ctx context.Context, id int64) (*AgentCallEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendQuizResult records a completed quiz.
	AppendQuizResult(ctx context.Context, data QuizResultEventData) error

	// QueryQuizResults returns completed quizzes, newest first.
	QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResultEvent, error)
}
