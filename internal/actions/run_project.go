package actions

import (
	"context"
	"encoding/json"

	llmclient "reactagent/internal/llmClient"
	"reactagent/internal/llmtool"
)

const incompleteProjectMessage = "Attention: The assistant must save the code before running it."

type runProjectTool struct{ host *Host }

func (t *runProjectTool) Spec() llmclient.ToolSpec { return specFor(RunProjectName) }

func (t *runProjectTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var in struct{}
	if err := llmtool.DecodeArgs(args, &in); err != nil {
		return "", err
	}
	h := t.host
	if !h.Project.Complete() {
		return incompleteProjectMessage, nil
	}
	return h.Builder.Run(ctx, h.Project, h.Status)
}
