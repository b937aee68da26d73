package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	llmclient "reactagent/internal/llmClient"
	"reactagent/internal/llmtool"
)

const noCodeToEditMessage = "Attention: The assistant must generate the code before editing it."

type editCodeTool struct{ host *Host }

type editCodeInput struct {
	Changes string `json:"changes"`
}

func (t *editCodeTool) Spec() llmclient.ToolSpec { return specFor(EditCodeName) }

// Call rewrites the generated code with the requested changes. The next run
// writes the new code into the project.
func (t *editCodeTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var in editCodeInput
	if err := llmtool.DecodeArgs(args, &in); err != nil {
		return "", err
	}
	h := t.host
	if h.Project.Code == "" {
		return noCodeToEditMessage, nil
	}
	msg := fmt.Sprintf("The current code is:\n```\n%s\n```\nApply these changes: %s", h.Project.Code, in.Changes)
	reply, err := h.Model.Bare(ctx, codeGenerationPrompt, msg)
	if err != nil {
		return "", fmt.Errorf("edit code: %w", err)
	}
	code, err := extractCode(reply)
	if err != nil {
		return "", err
	}
	h.Project.Code = code
	h.logger().Info("code edited", zap.String("project", h.Project.Name), zap.Int("bytes", len(code)))
	return code, nil
}
