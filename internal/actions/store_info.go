package actions

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	llmclient "reactagent/internal/llmClient"
	"reactagent/internal/llmtool"
)

type storeInfoTool struct{ host *Host }

type storeInfoInput struct {
	Info string `json:"info"`
}

func (t *storeInfoTool) Spec() llmclient.ToolSpec { return specFor(StoreInfoName) }

// Call records the fact once; repeating it is not an error.
func (t *storeInfoTool) Call(_ context.Context, args json.RawMessage) (string, error) {
	var in storeInfoInput
	if err := llmtool.DecodeArgs(args, &in); err != nil {
		return "", err
	}
	added := t.host.Facts.Add(in.Info)
	t.host.logger().Debug("fact stored", zap.Bool("new", added), zap.Int("facts", t.host.Facts.Len()))
	return "Info stored successfully.", nil
}
