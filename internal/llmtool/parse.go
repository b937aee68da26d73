package llmtool

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"

	llmclient "reactagent/internal/llmClient"
)

// Invocation is a request from the model to run a named tool.
type Invocation struct {
	ID        string
	Name      string
	Arguments json.RawMessage
	// Inline marks invocations parsed out of assistant text.
	Inline bool
}

// Extraction is the result of scanning assistant text for inline calls.
type Extraction struct {
	Calls []Invocation
	// Noise holds the lines that were not calls, joined by newlines.
	Noise string
}

// inlineCall matches the pseudo-syntax some models emit instead of a
// structured tool call: <function=NAME {"json": "object"}>
var inlineCall = regexp.MustCompile(`<function\s*=\s*([a-zA-Z0-9_]+)\s*(\{.*\})\s*>`)

// Extract scans text line by line for inline tool calls. Lines that do not
// match, or whose argument literal is not a JSON object, are kept as noise.
func Extract(text string) Extraction {
	var out Extraction
	var noise []string
	for _, line := range strings.Split(text, "\n") {
		m := inlineCall.FindStringSubmatch(line)
		if m == nil {
			noise = append(noise, line)
			continue
		}
		args := json.RawMessage(m[2])
		var obj map[string]any
		if err := json.Unmarshal(args, &obj); err != nil {
			noise = append(noise, line)
			continue
		}
		out.Calls = append(out.Calls, Invocation{
			ID:        uuid.NewString(),
			Name:      m[1],
			Arguments: args,
			Inline:    true,
		})
	}
	out.Noise = strings.Join(noise, "\n")
	return out
}

// FromToolCalls converts provider tool calls into invocations. An empty
// argument string is treated as an empty object.
func FromToolCalls(calls []llmclient.ToolCall) []Invocation {
	if len(calls) == 0 {
		return nil
	}
	out := make([]Invocation, 0, len(calls))
	for _, c := range calls {
		args := strings.TrimSpace(c.Arguments)
		if args == "" {
			args = "{}"
		}
		out = append(out, Invocation{ID: c.ID, Name: c.Name, Arguments: json.RawMessage(args)})
	}
	return out
}
