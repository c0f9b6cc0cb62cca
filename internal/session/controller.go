package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/abhisek/learnloop/internal/store"
)

// Agent produces explanations, quizzes, and answer feedback.
type Agent interface {
	Explain(ctx context.Context, topic string) (*agent.ExplainPayload, error)
	Quiz(ctx context.Context, topic string) (*agent.QuizPayload, error)
	Evaluate(ctx context.Context, in agent.EvaluateInput) (*agent.EvaluatePayload, error)
}

// ResultRecorder stores completed quizzes.
type ResultRecorder interface {
	AppendQuizResult(ctx context.Context, data store.QuizResultEventData) error
}

// Options configures a Controller.
type Options struct {
	// Agent is required.
	Agent Agent

	// Store persists the recent topics list. Optional.
	Store KeyValueStore

	// Results records completed quizzes. Optional.
	Results ResultRecorder

	// Logger receives best-effort persistence failures. Optional.
	Logger *slog.Logger

	// NewSessionID overrides session id generation (tests).
	NewSessionID func() string
}

// Controller drives the study flow. It owns the State, serializes access
// to it, and performs the agent calls the transitions ask for. Methods are
// safe to call from multiple goroutines; agent calls run without holding
// the state lock.
type Controller struct {
	mu    sync.Mutex
	state State
	lease Lease

	agent   Agent
	kv      KeyValueStore
	results ResultRecorder
	logger  *slog.Logger
	newID   func() string
}

// NewController creates a Controller on the topic selection screen. The
// recent topics list is read once here; a read failure is logged and the
// list starts empty.
func NewController(ctx context.Context, opts Options) *Controller {
	c := &Controller{
		agent:   opts.Agent,
		kv:      opts.Store,
		results: opts.Results,
		logger:  opts.Logger,
		newID:   opts.NewSessionID,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}

	var recent RecentTopics
	if c.kv != nil {
		r, err := LoadRecent(ctx, c.kv)
		if err != nil {
			c.logger.Warn("recent topics unavailable", "error", err)
		} else {
			recent = r
		}
	}
	c.state = NewState(recent)
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Busy reports whether an agent request is outstanding.
func (c *Controller) Busy() bool {
	return c.lease.Held()
}

// begin validates and mutates under the state lock, then takes the lease
// and marks the state loading. The returned finish func runs apply under
// the lock and releases the lease. Validation errors land in the banner.
func (c *Controller) begin(prepare func(s *State) error) (finish func(apply func(s *State)), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lease.Held() {
		return nil, ErrRequestInFlight
	}
	if err := prepare(&c.state); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.state.Err = err
		}
		return nil, err
	}
	release, ok := c.lease.TryAcquire()
	if !ok {
		return nil, ErrRequestInFlight
	}
	c.state.Loading = true

	return func(apply func(s *State)) {
		c.mu.Lock()
		defer c.mu.Unlock()
		defer release()
		apply(&c.state)
		c.state.Loading = false
	}, nil
}

// StartTopic records topic in the recent list and requests its
// explanation. On failure the screen stays on topic selection with no
// topic and an empty explanation.
func (c *Controller) StartTopic(ctx context.Context, topic string) error {
	var (
		trimmed   string
		recent    RecentTopics
		sessionID string
	)
	finish, err := c.begin(func(s *State) error {
		t, err := BeginTopic(s, topic)
		if err != nil {
			return err
		}
		trimmed = t
		s.SessionID = c.newID()
		sessionID = s.SessionID
		recent = s.Recent
		return nil
	})
	if err != nil {
		return err
	}

	c.persistRecent(ctx, recent)

	p, err := c.agent.Explain(agent.WithSessionID(ctx, sessionID), trimmed)
	finish(func(s *State) {
		if err != nil {
			FailTopic(s, err)
			return
		}
		ApplyExplanation(s, p)
	})
	return err
}

// StartQuiz requests a quiz for the current topic.
func (c *Controller) StartQuiz(ctx context.Context) error {
	var topic, sessionID string
	finish, err := c.begin(func(s *State) error {
		if err := BeginQuiz(s); err != nil {
			return err
		}
		topic, sessionID = s.Topic, s.SessionID
		return nil
	})
	if err != nil {
		return err
	}
	return c.requestQuiz(ctx, finish, topic, sessionID)
}

// Retake discards the current attempt and regenerates the quiz.
func (c *Controller) Retake(ctx context.Context) error {
	var topic, sessionID string
	finish, err := c.begin(func(s *State) error {
		if err := BeginQuiz(s); err != nil {
			return err
		}
		if err := ResetForRetake(s); err != nil {
			return err
		}
		topic, sessionID = s.Topic, s.SessionID
		return nil
	})
	if err != nil {
		return err
	}
	return c.requestQuiz(ctx, finish, topic, sessionID)
}

func (c *Controller) requestQuiz(ctx context.Context, finish func(func(*State)), topic, sessionID string) error {
	p, err := c.agent.Quiz(agent.WithSessionID(ctx, sessionID), topic)
	finish(func(s *State) {
		if err == nil {
			err = ApplyQuiz(s, p)
		}
		if err != nil {
			FailRequest(s, err)
		}
	})
	return err
}

// SelectOption stores the tentative choice for the active question.
func (c *Controller) SelectOption(letter string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lease.Held() {
		return ErrRequestInFlight
	}
	err := SelectOption(&c.state, letter)
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.state.Err = err
	}
	return err
}

// SubmitAnswer asks the agent to evaluate letter for question index. An
// empty letter fails validation without a request.
func (c *Controller) SubmitAnswer(ctx context.Context, index int, letter string) error {
	var (
		in        agent.EvaluateInput
		sessionID string
	)
	finish, err := c.begin(func(s *State) error {
		i, err := CheckAnswer(s, index, letter)
		if err != nil {
			return err
		}
		in, sessionID = i, s.SessionID
		return nil
	})
	if err != nil {
		return err
	}

	p, err := c.agent.Evaluate(agent.WithSessionID(ctx, sessionID), in)
	finish(func(s *State) {
		if err == nil {
			err = ApplyEvaluation(s, index, letter, p)
		}
		if err != nil {
			FailRequest(s, err)
		}
	})
	return err
}

// SubmitSelected submits the tentative choice for the active question.
func (c *Controller) SubmitSelected(ctx context.Context) error {
	c.mu.Lock()
	index, letter := c.state.Index, c.state.Selected
	c.mu.Unlock()
	return c.SubmitAnswer(ctx, index, letter)
}

// Advance moves past the evaluated question. After the last question the
// result is computed and recorded; a recording failure is only logged.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	if c.lease.Held() {
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	completed, err := Advance(&c.state)
	var data store.QuizResultEventData
	if completed {
		data = resultEvent(c.state)
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}
	if completed && c.results != nil {
		if err := c.results.AppendQuizResult(ctx, data); err != nil {
			c.logger.Warn("failed to record quiz result", "topic", data.Topic, "error", err)
		}
	}
	return nil
}

// ReviewExplanation goes back from the results to the explanation.
func (c *Controller) ReviewExplanation() error {
	return c.mutate(ReviewExplanation)
}

// LearnAnother clears the session and returns to topic selection.
func (c *Controller) LearnAnother() error {
	return c.mutate(ReturnToTopics)
}

// DismissError clears the error banner.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	DismissError(&c.state)
}

func (c *Controller) mutate(fn func(*State) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lease.Held() {
		return ErrRequestInFlight
	}
	return fn(&c.state)
}

func (c *Controller) persistRecent(ctx context.Context, recent RecentTopics) {
	if c.kv == nil {
		return
	}
	if err := SaveRecent(ctx, c.kv, recent); err != nil {
		c.logger.Warn("failed to persist recent topics", "error", err)
	}
}

func resultEvent(s State) store.QuizResultEventData {
	data := store.QuizResultEventData{
		SessionID:    s.SessionID,
		Topic:        s.Topic,
		Score:        s.Result.Score,
		Total:        s.Result.Total,
		MasteryLevel: string(s.Result.MasteryLevel),
	}
	for _, a := range s.Result.Answers {
		data.Answers = append(data.Answers, store.QuizAnswerRecord{
			QuestionNumber: a.QuestionNumber,
			StudentAnswer:  a.StudentAnswer,
			IsCorrect:      a.IsCorrect,
			Feedback:       a.Feedback,
		})
	}
	return data
}
