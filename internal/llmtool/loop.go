package llmtool

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const (
	DefaultMaxDepth = 5

	MaxDepthMessage = "Max recursion depth reached."
)

// Outcome is what the driver does after a dispatch round.
type Outcome struct {
	// Final means Text is the reply for the user and no model call follows.
	Final bool
	// Text is either the final reply or the next prompt to feed the model.
	Text string
	// Tool is the name of the tool that ran, empty when none did.
	Tool   string
	Result string
}

// Dispatcher runs at most one tool per round and turns its result into the
// next prompt. Depth bounds how many rounds a single user turn may chain.
type Dispatcher struct {
	Tools    *Registry
	MaxDepth int
	Log      *zap.Logger
	// Trace, when set, receives human-readable progress lines.
	Trace func(msg string)
}

func (d *Dispatcher) maxDepth() int {
	if d.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return d.MaxDepth
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d *Dispatcher) trace(format string, args ...any) {
	if d.Trace != nil {
		d.Trace(fmt.Sprintf(format, args...))
	}
}

// Dispatch executes the first invocation whose name is registered and whose
// arguments are well-formed JSON; the rest of the batch is ignored.
// Unregistered names and malformed argument literals are skipped in order.
// Tool errors, including schema mismatches on well-formed arguments, are
// returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, calls []Invocation, depth int) (Outcome, error) {
	if depth > d.maxDepth() {
		d.logger().Warn("tool depth ceiling hit", zap.Int("depth", depth), zap.Int("max", d.maxDepth()))
		return Outcome{Final: true, Text: MaxDepthMessage}, nil
	}

	var skipped []string
	for _, call := range calls {
		d.trace("Processing tool call: %s", call.Name)
		if _, ok := d.Tools.Lookup(call.Name); !ok {
			skipped = append(skipped, call.Name)
			d.logger().Debug("skipping unregistered tool", zap.String("tool", call.Name))
			continue
		}
		if len(call.Arguments) > 0 && !json.Valid(call.Arguments) {
			skipped = append(skipped, call.Name)
			d.logger().Info("skipping tool call with malformed arguments",
				zap.String("tool", call.Name),
				zap.String("id", call.ID),
				zap.ByteString("args", call.Arguments),
			)
			continue
		}
		d.logger().Debug("calling tool",
			zap.String("tool", call.Name),
			zap.String("id", call.ID),
			zap.Bool("inline", call.Inline),
			zap.Int("depth", depth),
			zap.ByteString("args", call.Arguments),
		)
		result, err := d.Tools.Call(ctx, call.Name, call.Arguments)
		if err != nil {
			return Outcome{}, fmt.Errorf("tool %s: %w", call.Name, err)
		}
		d.trace("Tool response: %s", result)
		return Outcome{Text: FollowUpPrompt(result), Tool: call.Name, Result: result}, nil
	}
	return Outcome{Text: NoToolPrompt(skipped)}, nil
}
