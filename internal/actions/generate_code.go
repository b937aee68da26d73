package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	llmclient "reactagent/internal/llmClient"
	"reactagent/internal/llmtool"
)

type generateCodeTool struct{ host *Host }

type generateCodeInput struct {
	ProjectSummary string `json:"projectSummary"`
	ProjectName    string `json:"projectName"`
}

func (t *generateCodeTool) Spec() llmclient.ToolSpec { return specFor(GenerateCodeName) }

// Call generates the entry component from the summary and the stored facts
// and saves it, with the normalized name, as the project artifact.
func (t *generateCodeTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var in generateCodeInput
	if err := llmtool.DecodeArgs(args, &in); err != nil {
		return "", err
	}
	h := t.host
	msg := fmt.Sprintf("The project is: %s\nThe project's specific information is:\n%s", in.ProjectSummary, h.Facts.Format())
	reply, err := h.Model.Bare(ctx, codeGenerationPrompt, msg)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code, err := extractCode(reply)
	if err != nil {
		return "", err
	}
	h.Project.Code = code
	h.Project.Name = normalizeName(in.ProjectName)
	h.logger().Info("code generated", zap.String("project", h.Project.Name), zap.Int("bytes", len(code)))
	return code, nil
}
