package tutor

import (
	"context"
	"errors"
	"net/http"

	"github.com/abhisek/learnloop/internal/llm"
)

var (
	// ErrEmptyMessage is returned when a request carries no instruction.
	ErrEmptyMessage = errors.New("message is required")

	// ErrUnknownRequestType is returned for a request_type other than
	// explain, quiz or evaluate.
	ErrUnknownRequestType = errors.New("unknown request type")
)

// Classify maps an error from Respond to an HTTP status and a message
// safe to show a learner. Provider details stay in the logs.
func Classify(err error) (int, string) {
	var (
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		truncated   *llm.ErrMaxTokensExceeded
		rejected    *llm.ErrRequestRejected
		unavailable *llm.ErrProviderUnavailable
	)

	switch {
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrUnknownRequestType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "The tutor took too long to answer. Please try again."
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests, "The tutor is busy right now. Please try again in a moment."
	case errors.As(err, &invalid), errors.As(err, &truncated):
		return http.StatusBadGateway, "The tutor's answer could not be read. Please try again."
	case errors.As(err, &rejected):
		return http.StatusBadGateway, "The tutor is not configured correctly."
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, "The tutor is unavailable right now. Please try again later."
	}
	return http.StatusInternalServerError, "The tutor could not answer that request."
}
