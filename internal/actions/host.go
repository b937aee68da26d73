// Package actions implements the tools the conversation model can call.
package actions

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"reactagent/internal/facts"
	"reactagent/internal/github"
	"reactagent/internal/llmtool"
	"reactagent/internal/scaffold"
)

// Model answers prompts on behalf of a tool.
type Model interface {
	// Bare is a one-shot call with its own system prompt and no history.
	Bare(ctx context.Context, system, message string) (string, error)
	// Ask goes through the main conversation with tools disabled.
	Ask(ctx context.Context, prompt string) (string, error)
}

// ReadmeSource lists a user's repository READMEs.
type ReadmeSource interface {
	Readmes(ctx context.Context, username string) ([]github.Readme, error)
}

// Builder scaffolds and starts a project.
type Builder interface {
	Run(ctx context.Context, a *scaffold.Artifact, st *scaffold.Status) (string, error)
}

// Host wires session state and collaborators for tools.
type Host struct {
	Facts   *facts.Set
	Project *scaffold.Artifact
	Status  *scaffold.Status
	Model   Model
	GitHub  ReadmeSource
	Builder Builder
	// Summaries caches README summaries by repository URL.
	Summaries *lru.Cache[string, string]
	Log       *zap.Logger
}

const summaryCacheSize = 256

func (h *Host) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// RegisterDefaultTools installs every action into r, in tool-table order.
func RegisterDefaultTools(r *llmtool.Registry, h *Host) error {
	if h.Summaries == nil {
		cache, err := lru.New[string, string](summaryCacheSize)
		if err != nil {
			return err
		}
		h.Summaries = cache
	}
	for _, t := range []llmtool.Tool{
		&storeInfoTool{host: h},
		&searchRepositoriesTool{host: h},
		&generateCodeTool{host: h},
		&runProjectTool{host: h},
		&editCodeTool{host: h},
	} {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
