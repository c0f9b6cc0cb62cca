package tutor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abhisek/learnloop/internal/agent"
)

// LocalCaller serves agent requests in-process, for running the TUI
// against an LLM key without a separate agent server.
type LocalCaller struct {
	svc     *Service
	timeout time.Duration
}

// NewLocalCaller wraps svc as an agent.Caller. A positive timeout bounds
// each call the way the HTTP server's timeout middleware would.
func NewLocalCaller(svc *Service, timeout time.Duration) *LocalCaller {
	return &LocalCaller{svc: svc, timeout: timeout}
}

// Call implements agent.Caller. Failures carry the same status and
// message the HTTP server would have sent.
func (c *LocalCaller) Call(ctx context.Context, req agent.Request) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.svc.Respond(ctx, req)
	if err != nil {
		status, msg := Classify(err)
		return nil, &agent.RequestError{
			RequestType: req.RequestType,
			StatusCode:  status,
			Message:     msg,
			Err:         err,
		}
	}
	return raw, nil
}
