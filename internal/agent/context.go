package agent

import "context"

type contextKey string

const sessionIDKey contextKey = "agent_session_id"

// WithSessionID attaches the study session id to the context for event logging.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFrom extracts the study session id from the context.
func SessionIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}
