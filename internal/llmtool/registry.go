package llmtool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	llmclient "reactagent/internal/llmClient"
)

var (
	ErrUnknownTool      = errors.New("llmtool: unknown tool")
	ErrInvalidArguments = errors.New("llmtool: invalid tool arguments")
)

// Tool is an action the model can invoke by name.
type Tool interface {
	Spec() llmclient.ToolSpec
	Call(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry maps tool names to handlers and validates arguments against each
// tool's parameter schema before the handler runs.
type Registry struct {
	tools   map[string]Tool
	schemas map[string]*gojsonschema.Schema
	order   []string
}

// NewRegistry creates a registry holding the provided tools.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: map[string]Tool{}, schemas: map[string]*gojsonschema.Schema{}}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool. Names must be unique and schemas must compile.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return errors.New("llmtool: nil tool")
	}
	spec := t.Spec()
	if strings.TrimSpace(spec.Name) == "" {
		return errors.New("llmtool: tool name is empty")
	}
	if _, dup := r.tools[spec.Name]; dup {
		return fmt.Errorf("llmtool: tool %q registered twice", spec.Name)
	}
	if len(spec.Parameters) > 0 {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(spec.Parameters))
		if err != nil {
			return fmt.Errorf("llmtool: schema for %q: %w", spec.Name, err)
		}
		r.schemas[spec.Name] = schema
	}
	r.tools[spec.Name] = t
	r.order = append(r.order, spec.Name)
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.tools[name]
	return t, ok
}

// Specs returns the tool table in registration order.
func (r *Registry) Specs() []llmclient.ToolSpec {
	if r == nil {
		return nil
	}
	out := make([]llmclient.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Spec())
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Call validates args and invokes the named tool.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownTool, name)
	}
	if err := r.validate(name, args); err != nil {
		return "", err
	}
	return t.Call(ctx, args)
}

func (r *Registry) validate(name string, args json.RawMessage) error {
	schema, ok := r.schemas[name]
	if !ok {
		return nil
	}
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArguments, name, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s: %s", ErrInvalidArguments, name, strings.Join(msgs, "; "))
	}
	return nil
}

// DecodeArgs strictly decodes tool arguments into v.
func DecodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	dec := json.NewDecoder(strings.NewReader(string(args)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}
