package llmclient

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient calls the Groq Chat Completions API (OpenAI-compatible).
// See: https://console.groq.com/docs/api-reference
type GroqClient struct {
	cli   *openai.Client
	model string

	rlMu      sync.RWMutex
	rlHandler RateLimitHeaderHandler
}

// NewGroqClient creates a Groq client. If apiKey is empty, it falls back to
// GROQ_API_KEY env var. An empty baseURL selects the public endpoint.
func NewGroqClient(apiKey, model, baseURL string) (*GroqClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("groq: model is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGroqBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	return &GroqClient{
		cli:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

func (g *GroqClient) Name() string { return "Groq:" + g.model }
func (g *GroqClient) Close() error { return nil }

func (g *GroqClient) SetRateLimitHeaderHandler(handler RateLimitHeaderHandler) {
	g.rlMu.Lock()
	defer g.rlMu.Unlock()
	g.rlHandler = handler
}

// Chat sends the messages and returns the first choice. Tools are attached
// only when present; the request model overrides the client default.
func (g *GroqClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}
	creq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		creq.Messages = append(creq.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	if len(req.Tools) > 0 {
		creq.Tools = make([]openai.Tool, 0, len(req.Tools))
		for _, t := range req.Tools {
			creq.Tools = append(creq.Tools, openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Parameters,
				},
			})
		}
		choice := req.ToolChoice
		if choice == "" {
			choice = ToolChoiceAuto
		}
		creq.ToolChoice = string(choice)
	}

	resp, err := g.cli.CreateChatCompletion(ctx, creq)
	if err != nil {
		return nil, classifyGroqError(err)
	}
	g.captureRateLimitHeaders(resp.Header())
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	msg := resp.Choices[0].Message
	out := &ChatResponse{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

func classifyGroqError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && isBadRequestStatus(apiErr.HTTPStatusCode) {
		return NewBadRequestError("groq", err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && isBadRequestStatus(reqErr.HTTPStatusCode) {
		return NewBadRequestError("groq", err)
	}
	return err
}

// 413 is what Groq answers when the prompt exceeds the per-request token budget.
func isBadRequestStatus(code int) bool {
	return code == http.StatusBadRequest || code == http.StatusRequestEntityTooLarge
}

func (g *GroqClient) captureRateLimitHeaders(h http.Header) {
	parsed, ok := parseGroqRateLimitHeaders(h)
	if !ok {
		return
	}
	g.rlMu.RLock()
	handler := g.rlHandler
	g.rlMu.RUnlock()
	if handler != nil {
		handler(parsed)
	}
}

// parseGroqRateLimitHeaders reads Groq's rate-limit response headers.
// Request fields count requests per day, token fields tokens per minute.
func parseGroqRateLimitHeaders(h http.Header) (RateLimitHeaders, bool) {
	var out RateLimitHeaders
	found := false
	ints := []struct {
		key string
		dst *int
	}{
		{"retry-after", &out.RetryAfterSeconds},
		{"x-ratelimit-limit-requests", &out.LimitRequests},
		{"x-ratelimit-limit-tokens", &out.LimitTokens},
		{"x-ratelimit-remaining-requests", &out.RemainingRequests},
		{"x-ratelimit-remaining-tokens", &out.RemainingTokens},
	}
	for _, f := range ints {
		v := strings.TrimSpace(h.Get(f.key))
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			*f.dst = n
			found = true
		}
	}
	durs := []struct {
		key string
		dst *time.Duration
	}{
		{"x-ratelimit-reset-requests", &out.ResetRequests},
		{"x-ratelimit-reset-tokens", &out.ResetTokens},
	}
	for _, f := range durs {
		v := strings.TrimSpace(h.Get(f.key))
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil {
			*f.dst = d
			found = true
		}
	}
	return out, found
}
