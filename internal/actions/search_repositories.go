package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"reactagent/internal/github"
	llmclient "reactagent/internal/llmClient"
	"reactagent/internal/llmtool"
)

const userNotFoundMessage = "Error: Could not find the user's github pages."

type searchRepositoriesTool struct{ host *Host }

type searchRepositoriesInput struct {
	Username string `json:"username"`
}

func (t *searchRepositoriesTool) Spec() llmclient.ToolSpec { return specFor(SearchRepositoriesName) }

// Call summarizes each README with a bare call, merges the summaries through
// the conversation and stores the merged summary as a fact.
func (t *searchRepositoriesTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var in searchRepositoriesInput
	if err := llmtool.DecodeArgs(args, &in); err != nil {
		return "", err
	}
	h := t.host
	readmes, err := h.GitHub.Readmes(ctx, in.Username)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		h.logger().Info("github search failed", zap.String("user", in.Username), zap.Error(err))
		return userNotFoundMessage, nil
	}
	if len(readmes) == 0 {
		return userNotFoundMessage, nil
	}

	summaries := make([]string, 0, len(readmes))
	for _, rd := range readmes {
		if s, ok := h.Summaries.Get(rd.URL); ok {
			summaries = append(summaries, s)
			continue
		}
		content := github.CleanReadme(rd.Content)
		if content == "" {
			continue
		}
		s, err := h.Model.Bare(ctx, readmeSummarizationPrompt, content)
		if err != nil {
			return "", fmt.Errorf("summarize %s: %w", rd.Repo, err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		h.Summaries.Add(rd.URL, s)
		summaries = append(summaries, s)
	}
	if len(summaries) == 0 {
		return userNotFoundMessage, nil
	}

	combined, err := h.Model.Ask(ctx, CombinePrompt(summaries))
	if err != nil {
		return "", fmt.Errorf("combine readme summaries: %w", err)
	}
	if combined = strings.TrimSpace(combined); combined != "" {
		h.Facts.Add(combined)
	}
	h.logger().Debug("github search stored", zap.String("user", in.Username), zap.Int("readmes", len(summaries)))
	return "Github pages searched successfully.", nil
}

func bulletList(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(it)
	}
	return b.String()
}
