package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Role tags a chat message on the wire.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ToolChoice selects whether the model may call tools for a request.
type ToolChoice string

const (
	ToolChoiceAuto ToolChoice = "auto"
	ToolChoiceNone ToolChoice = "none"
)

// Message is one chat message sent to the provider.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToolSpec documents a tool's contract (name + JSON schema of its parameters).
type ToolSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolCall is a structured tool invocation returned by the provider.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatRequest is a single chat-completions call.
type ChatRequest struct {
	Model      string
	Messages   []Message
	Tools      []ToolSpec
	ToolChoice ToolChoice
}

// ChatResponse carries the first choice of a completion.
type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// ChatClient is the LLM collaborator used by the agent.
type ChatClient interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Close() error
}

var ErrEmptyResponse = errors.New("llmclient: empty response from provider")

// BadRequestError marks a request the provider rejected as malformed
// (HTTP 400, context too large). Resending the same request will not help.
type BadRequestError struct {
	Provider string
	Err      error
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("%s: bad request: %v", e.Provider, e.Err)
}

func (e *BadRequestError) Unwrap() error { return e.Err }

func NewBadRequestError(provider string, err error) error {
	return &BadRequestError{Provider: provider, Err: err}
}

// IsBadRequest reports whether err belongs to the malformed-request class.
func IsBadRequest(err error) bool {
	var br *BadRequestError
	return errors.As(err, &br)
}
