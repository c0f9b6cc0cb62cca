package session

import (
	"errors"
	"maps"
	"slices"

	"github.com/abhisek/learnloop/internal/agent"
)

// Screen identifies which screen of the study flow is active.
type Screen int

const (
	ScreenTopicSelection Screen = iota // Picking or searching a topic
	ScreenExplanation                  // Reading the explanation
	ScreenQuiz                         // Answering questions
	ScreenResults                      // Viewing the scored result
)

func (s Screen) String() string {
	switch s {
	case ScreenTopicSelection:
		return "topic-selection"
	case ScreenExplanation:
		return "explanation"
	case ScreenQuiz:
		return "quiz"
	case ScreenResults:
		return "results"
	default:
		return "unknown"
	}
}

// Feedback is the evaluation of one submitted answer.
type Feedback struct {
	QuestionNumber int
	StudentAnswer  string
	// IsCorrect is derived locally by comparing letters; the agent's
	// opinion is never consulted.
	IsCorrect bool
	Feedback  string
}

// State is the complete client-side state of the study flow. Transition
// functions in this package mutate it; renderers read snapshots of it.
type State struct {
	// Screen is the active screen.
	Screen Screen

	// SessionID correlates agent calls and stored results for one topic.
	SessionID string

	// Topic is the topic being studied. Empty on the topic selection screen.
	Topic string

	// Explanation holds the sections of the current explanation.
	Explanation []agent.Section

	// Questions is the current quiz, immutable for an attempt.
	Questions []agent.Question

	// Index is the active question (0-based).
	Index int

	// Selected is the tentative choice for the active question.
	Selected string

	// Answers maps question index to the committed letter.
	Answers map[int]string

	// Feedback is set once the active question has been evaluated.
	Feedback *Feedback

	// Result is set when the last question has been advanced past.
	Result *QuizResult

	// Recent lists recently studied topics, most recent first.
	Recent RecentTopics

	// Loading is true while an agent request is outstanding.
	Loading bool

	// Err is the error shown in the banner, cleared by the next success.
	Err error
}

// NewState returns the initial state on the topic selection screen.
func NewState(recent RecentTopics) State {
	return State{
		Screen:  ScreenTopicSelection,
		Answers: make(map[int]string),
		Recent:  recent,
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s State) Clone() State {
	c := s
	c.Explanation = slices.Clone(s.Explanation)
	c.Questions = slices.Clone(s.Questions)
	c.Answers = maps.Clone(s.Answers)
	c.Recent = slices.Clone(s.Recent)
	if s.Feedback != nil {
		fb := *s.Feedback
		c.Feedback = &fb
	}
	if s.Result != nil {
		r := *s.Result
		r.Answers = slices.Clone(s.Result.Answers)
		c.Result = &r
	}
	return c
}

// CurrentQuestion returns the active question, if the quiz has one.
func (s State) CurrentQuestion() (agent.Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return agent.Question{}, false
	}
	return s.Questions[s.Index], true
}

// IsLastQuestion reports whether the active question is the final one.
func (s State) IsLastQuestion() bool {
	return s.Index == len(s.Questions)-1
}

// RunningScore counts committed answers that match their question.
func (s State) RunningScore() int {
	return countCorrect(s.Questions, s.Answers)
}

// ErrorMessage renders Err for display.
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(s.Err, &verr) {
		return verr.Message
	}
	var merr *MalformedPayloadError
	if errors.As(s.Err, &merr) {
		return merr.Error()
	}
	return agent.UserMessage(s.Err)
}
