package agent

import (
	"errors"
	"fmt"
)

// Fallback messages used when the agent gives nothing better.
const (
	DefaultErrorMessage = "An error occurred"
	StatusErrorMessage  = "Failed to fetch from agent"
	FailureMessage      = "Agent request failed"
)

// RequestError is returned for any failed agent call: network failure,
// non-2xx status, success=false, or an unreadable body. Message is the
// best user-facing description available.
type RequestError struct {
	RequestType RequestType
	StatusCode  int
	Message     string
	Err         error
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultErrorMessage
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("agent %s request failed (HTTP %d): %s", e.RequestType, e.StatusCode, msg)
	}
	return fmt.Sprintf("agent %s request failed: %s", e.RequestType, msg)
}

func (e *RequestError) Unwrap() error { return e.Err }

// UserMessage extracts the banner text for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Message != "" {
			return reqErr.Message
		}
		return DefaultErrorMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}

// asRequestError wraps err as a *RequestError unless it already is one.
func asRequestError(rt RequestType, err error) error {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.RequestType == "" {
			reqErr.RequestType = rt
		}
		return err
	}
	msg := DefaultErrorMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &RequestError{RequestType: rt, Message: msg, Err: err}
}
