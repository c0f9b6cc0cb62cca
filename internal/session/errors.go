package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/learnloop/internal/agent"
)

var (
	// ErrInvalidTransition is returned when an action is not available on
	// the active screen. State is left unchanged.
	ErrInvalidTransition = errors.New("action not available on this screen")

	// ErrNoFeedback is returned when advancing before the answer is evaluated.
	ErrNoFeedback = errors.New("answer has not been evaluated yet")

	// ErrRequestInFlight is returned when an action arrives while an agent
	// request is outstanding.
	ErrRequestInFlight = errors.New("a request is already in progress")
)

// ValidationError reports bad user input caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MalformedPayloadError reports an agent payload that decoded but is
// unusable, such as a quiz with no questions.
type MalformedPayloadError struct {
	RequestType agent.RequestType
	Reason      string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("The agent returned an unusable %s response: %s", e.RequestType, e.Reason)
}

func invalidTransition(action string, from Screen) error {
	return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, action, from)
}
