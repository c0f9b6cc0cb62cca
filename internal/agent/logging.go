package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/abhisek/learnloop/internal/store"
)

// LoggingCaller is a decorator that records every agent call as an event.
type LoggingCaller struct {
	inner     Caller
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps a Caller with event logging. A nil logger discards.
func WithLogging(c Caller, repo store.EventRepo, logger *slog.Logger) Caller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingCaller{inner: c, eventRepo: repo, logger: logger}
}

func (l *LoggingCaller) Call(ctx context.Context, req Request) (json.RawMessage, error) {
	start := time.Now()

	raw, err := l.inner.Call(ctx, req)

	data := store.AgentCallEventData{
		SessionID:    SessionIDFrom(ctx),
		RequestType:  string(req.RequestType),
		AgentID:      req.AgentID,
		Target:       target(l.inner),
		Message:      req.Message,
		LatencyMs:    time.Since(start).Milliseconds(),
		Success:      err == nil,
		ResponseBody: string(raw),
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		data.StatusCode = reqErr.StatusCode
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("agent call failed",
			"request_type", req.RequestType,
			"latency_ms", data.LatencyMs,
			"error", err)
	} else {
		l.logger.Debug("agent call",
			"request_type", req.RequestType,
			"latency_ms", data.LatencyMs)
	}

	// Log the event but don't fail the request if logging fails.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendAgentCall(ctx, data); logErr != nil {
			l.logger.Warn("failed to log agent call event", "error", logErr)
		}
	}

	return raw, err
}

// target names where a caller sends requests, for the event log.
func target(c Caller) string {
	if u, ok := c.(interface{ URL() string }); ok {
		return u.URL()
	}
	return "local"
}
