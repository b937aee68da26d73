package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	llmclient "reactagent/internal/llmClient"
)

type stubClient struct {
	name string
	resp *llmclient.ChatResponse
	err  error
	seen []string
}

func (s *stubClient) Name() string { return s.name }
func (s *stubClient) Close() error { return nil }
func (s *stubClient) Chat(ctx context.Context, req llmclient.ChatRequest) (*llmclient.ChatResponse, error) {
	s.seen = append(s.seen, s.name)
	return s.resp, s.err
}

type tagging struct {
	tag  string
	next llmclient.ChatClient
	log  *[]string
}

func (t *tagging) Name() string { return t.next.Name() }
func (t *tagging) Close() error { return t.next.Close() }
func (t *tagging) Chat(ctx context.Context, req llmclient.ChatRequest) (*llmclient.ChatResponse, error) {
	*t.log = append(*t.log, t.tag)
	return t.next.Chat(ctx, req)
}

func TestWrap_Order(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next llmclient.ChatClient) llmclient.ChatClient {
			return &tagging{tag: tag, next: next, log: &order}
		}
	}
	inner := &stubClient{name: "inner", resp: &llmclient.ChatResponse{Content: "ok"}}
	c := Wrap(inner, mw("A"), mw("B"))
	_, err := c.Chat(context.Background(), llmclient.ChatRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, order)
}

func TestWithLogging_RecordsPhaseAndErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	inner := &stubClient{name: "inner", err: llmclient.NewBadRequestError("groq", errors.New("too long"))}
	c := Wrap(inner, WithLogging(zap.New(core)))

	ctx := WithPhase(context.Background(), PhaseBare)
	_, err := c.Chat(ctx, llmclient.ChatRequest{Messages: []llmclient.Message{{Role: llmclient.RoleUser, Content: "hello"}}})
	require.Error(t, err)
	assert.True(t, llmclient.IsBadRequest(err))

	errs := logs.FilterMessage("llm error").All()
	require.Len(t, errs, 1)
	ctxMap := errs[0].ContextMap()
	assert.Equal(t, PhaseBare, ctxMap["phase"])
	assert.Equal(t, true, ctxMap["bad_request"])
	assert.EqualValues(t, 5, ctxMap["bytes"])
}

func TestPhaseFrom_Default(t *testing.T) {
	assert.Equal(t, "unknown", PhaseFrom(context.Background()))
}
