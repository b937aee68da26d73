package llm

import "context"

type ctxKeyPhase struct{}

// Phases tag which part of the agent issued a model call.
const (
	PhaseConversation = "conversation"
	// PhaseBare is a one-shot call outside the conversation.
	PhaseBare    = "bare"
	PhaseCombine = "combine"
)

// WithPhase attaches the calling phase to the context used by Chat.
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// PhaseFrom returns the phase string stored in the context.
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}
