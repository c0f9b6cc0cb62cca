package llm

import "context"

// purposeKey carries the label LoggingProvider stores with each request.
// The tutor sets it to the agent request type being served.
type purposeKey struct{}

// PurposeUnset labels requests made without WithPurpose.
const PurposeUnset = "unset"

// WithPurpose labels the LLM requests made with ctx. An empty purpose
// leaves ctx unchanged.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnset.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok {
		return p
	}
	return PurposeUnset
}
