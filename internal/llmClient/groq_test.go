package llmclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroqTestServer(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewGroqClient("test-key", "llama-3.3-70b-versatile", srv.URL)
	require.NoError(t, err)
	return c
}

func TestGroqClient_ChatToolCalls(t *testing.T) {
	var got map[string]any
	c := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("x-ratelimit-remaining-tokens", "42")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"","tool_calls":[{"id":"call_1","type":"function","function":{"name":"storeInfo","arguments":"{\"info\":\"likes blue\"}"}}]},"finish_reason":"tool_calls"}]}`)
	})
	var seen []RateLimitHeaders
	c.SetRateLimitHeaderHandler(func(h RateLimitHeaders) { seen = append(seen, h) })

	resp, err := c.Chat(context.Background(), ChatRequest{
		Messages:   []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "hi"}},
		Tools:      []ToolSpec{{Name: "storeInfo", Parameters: json.RawMessage(`{"type":"object"}`)}},
		ToolChoice: ToolChoiceAuto,
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "storeInfo", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"info":"likes blue"}`, resp.ToolCalls[0].Arguments)

	assert.Equal(t, "llama-3.3-70b-versatile", got["model"])
	assert.Equal(t, "auto", got["tool_choice"])
	msgs, _ := got["messages"].([]any)
	assert.Len(t, msgs, 2)

	require.Len(t, seen, 1)
	assert.Equal(t, 42, seen[0].RemainingTokens)
}

func TestGroqClient_BareRequestOmitsTools(t *testing.T) {
	var got map[string]any
	c := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"plain text"}}]}`)
	})

	resp, err := c.Chat(context.Background(), ChatRequest{Model: "other-model", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "plain text", resp.Content)
	assert.Empty(t, resp.ToolCalls)
	assert.Equal(t, "other-model", got["model"])
	_, hasTools := got["tools"]
	assert.False(t, hasTools)
	_, hasChoice := got["tool_choice"]
	assert.False(t, hasChoice)
}

func TestGroqClient_BadRequestIsClassified(t *testing.T) {
	c := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"context too long","type":"invalid_request_error","code":"context_length_exceeded"}}`)
	})

	_, err := c.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.True(t, IsBadRequest(err))
}

func TestGroqClient_ServerErrorIsNotBadRequest(t *testing.T) {
	c := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	})

	_, err := c.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.False(t, IsBadRequest(err))
}
