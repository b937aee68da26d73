package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	llmclient "reactagent/internal/llmClient"
)

// Middleware decorates a ChatClient to inject cross-cutting concerns.
type Middleware func(llmclient.ChatClient) llmclient.ChatClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.ChatClient, mws ...Middleware) llmclient.ChatClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// WithLogging logs request size, tool choice, latency and errors.
// A nil logger disables output.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next llmclient.ChatClient) llmclient.ChatClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.ChatClient
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Chat(ctx context.Context, req llmclient.ChatRequest) (*llmclient.ChatResponse, error) {
	size := 0
	for _, m := range req.Messages {
		size += len(m.Content)
	}
	fields := []zap.Field{
		zap.String("client", l.next.Name()),
		zap.String("phase", PhaseFrom(ctx)),
		zap.Int("messages", len(req.Messages)),
		zap.Int("bytes", size),
		zap.Int("tools", len(req.Tools)),
		zap.String("tool_choice", string(req.ToolChoice)),
	}
	l.log.Debug("llm request", fields...)
	start := time.Now()
	resp, err := l.next.Chat(ctx, req)
	fields = append(fields, zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		l.log.Warn("llm error", append(fields, zap.Bool("bad_request", llmclient.IsBadRequest(err)), zap.Error(err))...)
		return nil, err
	}
	l.log.Debug("llm response", append(fields,
		zap.Int("content_bytes", len(resp.Content)),
		zap.Int("tool_calls", len(resp.ToolCalls)),
	)...)
	return resp, nil
}

// RateLimitLogger returns a header handler that records provider budgets.
func RateLimitLogger(logger *zap.Logger) llmclient.RateLimitHeaderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(h llmclient.RateLimitHeaders) {
		logger.Debug("llm rate limit",
			zap.Int("remaining_requests", h.RemainingRequests),
			zap.Int("remaining_tokens", h.RemainingTokens),
			zap.Duration("reset_tokens", h.ResetTokens),
			zap.Duration("next_wait", h.NextWait()),
		)
	}
}
