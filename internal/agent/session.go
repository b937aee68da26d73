// Package agent drives the conversation between the user, the model and the
// tools.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reactagent/internal/actions"
	"reactagent/internal/config"
	"reactagent/internal/facts"
	"reactagent/internal/llm"
	llmclient "reactagent/internal/llmClient"
	"reactagent/internal/llmtool"
	"reactagent/internal/scaffold"
	"reactagent/internal/transcript"
)

// ErrExit is returned when the user types the exit keyword at a retry prompt.
var ErrExit = errors.New("agent: user exited")

const (
	generationErrorMessage = "A generation error occurred, please try again."
	noResponseMessage      = "No response from the model."
)

// Output shows messages to the user.
type Output interface {
	Assistant(msg string)
	Function(msg string)
	Error(msg string)
	Verbose() bool
}

// Input reads one line typed by the user.
type Input interface {
	ReadLine() (string, error)
}

// Deps are the collaborators a session talks to.
type Deps struct {
	Chat    llmclient.ChatClient
	GitHub  actions.ReadmeSource
	Builder actions.Builder
	Out     Output
	In      Input
	Log     *zap.Logger
}

// Session is one interactive run. It is single-threaded: every call blocks
// until the model, the tools and the user have answered.
type Session struct {
	ID string

	cfg        *config.Config
	chat       llmclient.ChatClient
	out        Output
	in         Input
	log        *zap.Logger
	facts      *facts.Set
	project    *scaffold.Artifact
	status     *scaffold.Status
	transcript *transcript.Store
	tools      *llmtool.Registry
	dispatcher *llmtool.Dispatcher
}

// New builds a session with an empty transcript, fact set and project.
func New(cfg *config.Config, deps Deps) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("agent: nil config")
	}
	if deps.Chat == nil || deps.Out == nil || deps.In == nil {
		return nil, errors.New("agent: chat client, output and input are required")
	}
	logger := deps.Log
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:      uuid.NewString(),
		cfg:     cfg,
		out:     deps.Out,
		in:      deps.In,
		facts:   facts.New(),
		project: &scaffold.Artifact{},
		status:  &scaffold.Status{},
	}
	s.log = logger.With(zap.String("session", s.ID))
	s.chat = llm.Wrap(deps.Chat, llm.WithLogging(s.log))
	s.transcript = transcript.New(cfg.Window, func() string { return systemPrompt(s.facts) })

	reg, err := llmtool.NewRegistry()
	if err != nil {
		return nil, err
	}
	host := &actions.Host{
		Facts:   s.facts,
		Project: s.project,
		Status:  s.status,
		Model:   s,
		GitHub:  deps.GitHub,
		Builder: deps.Builder,
		Log:     s.log,
	}
	if err := actions.RegisterDefaultTools(reg, host); err != nil {
		return nil, fmt.Errorf("agent: register tools: %w", err)
	}
	s.tools = reg
	s.dispatcher = &llmtool.Dispatcher{
		Tools:    reg,
		MaxDepth: cfg.MaxDepth,
		Log:      s.log,
		Trace:    s.out.Function,
	}
	return s, nil
}

// Facts returns the facts gathered so far.
func (s *Session) Facts() []string { return s.facts.All() }

// Project returns the current project artifact and scaffold status.
func (s *Session) Project() (scaffold.Artifact, scaffold.Status) { return *s.project, *s.status }

// Transcript returns every stored turn.
func (s *Session) Transcript() []transcript.Turn { return s.transcript.Turns() }

// Chat runs the conversation starting with first until the user types the
// exit keyword or input ends. Fatal errors end the conversation.
func (s *Session) Chat(ctx context.Context, first string) error {
	msg := first
	for {
		reply, err := s.Respond(ctx, transcript.RoleUser, msg)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			return err
		}
		s.out.Assistant(reply)

		line, err := s.in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("agent: read input: %w", err)
		}
		if s.isExit(line) {
			return nil
		}
		msg = line
	}
}

// Respond appends content under role, asks the model and follows tool calls
// until the model answers in text or the depth ceiling is reached.
func (s *Session) Respond(ctx context.Context, role transcript.Role, content string) (string, error) {
	return s.respond(llm.WithPhase(ctx, llm.PhaseConversation), role, content, llmclient.ToolChoiceAuto)
}

// Ask sends prompt through the conversation with tools disabled.
func (s *Session) Ask(ctx context.Context, prompt string) (string, error) {
	return s.respond(llm.WithPhase(ctx, llm.PhaseCombine), transcript.RoleUser, prompt, llmclient.ToolChoiceNone)
}

// Bare is a one-shot call that neither reads nor writes the transcript.
func (s *Session) Bare(ctx context.Context, system, message string) (string, error) {
	resp, err := s.chat.Chat(llm.WithPhase(ctx, llm.PhaseBare), llmclient.ChatRequest{
		Model: s.cfg.BareModel,
		Messages: []llmclient.Message{
			{Role: llmclient.RoleSystem, Content: system},
			{Role: llmclient.RoleUser, Content: message},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (s *Session) respond(ctx context.Context, role transcript.Role, content string, choice llmclient.ToolChoice) (string, error) {
	depth := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		s.transcript.Append(transcript.Turn{Role: role, Content: content})
		resp, err := s.send(ctx, choice)
		if err != nil {
			if !llmclient.IsBadRequest(err) {
				return "", err
			}
			line, rerr := s.reprompt(err)
			if rerr != nil {
				return "", rerr
			}
			content = line
			continue
		}

		var calls []llmtool.Invocation
		if choice != llmclient.ToolChoiceNone {
			calls = llmtool.FromToolCalls(resp.ToolCalls)
			if len(calls) == 0 {
				if ex := llmtool.Extract(resp.Content); len(ex.Calls) > 0 {
					calls = ex.Calls
					if noise := strings.TrimSpace(ex.Noise); noise != "" {
						s.out.Assistant(noise)
					}
				}
			}
		}
		if len(calls) > 0 {
			outcome, err := s.dispatcher.Dispatch(ctx, calls, depth)
			if err != nil {
				return "", err
			}
			if outcome.Final {
				return outcome.Text, nil
			}
			if outcome.Tool != "" {
				s.log.Debug("tool finished", zap.String("tool", outcome.Tool), zap.Int("result_bytes", len(outcome.Result)), zap.Int("depth", depth))
			}
			role, content = transcript.RoleToolResult, outcome.Text
			depth++
			continue
		}

		s.transcript.Append(transcript.Turn{Role: transcript.RoleAssistant, Content: resp.Content})
		if strings.TrimSpace(resp.Content) == "" {
			return noResponseMessage, nil
		}
		return resp.Content, nil
	}
}

// reprompt rolls back the rejected turn and asks the user to rephrase.
func (s *Session) reprompt(cause error) (string, error) {
	s.log.Warn("model rejected request", zap.Error(cause))
	if s.out.Verbose() {
		s.out.Error(cause.Error())
	}
	s.out.Assistant(generationErrorMessage)
	if last, ok := s.transcript.Last(); ok {
		s.log.Debug("rolling back turn", zap.String("role", string(last.Role)), zap.Int("bytes", len(last.Content)))
	}
	s.transcript.DropLast()

	line, err := s.in.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrExit
		}
		return "", fmt.Errorf("agent: read input: %w", err)
	}
	if s.isExit(line) {
		return "", ErrExit
	}
	return line, nil
}

func (s *Session) send(ctx context.Context, choice llmclient.ToolChoice) (*llmclient.ChatResponse, error) {
	view := s.transcript.WindowedView()
	msgs := make([]llmclient.Message, 0, len(view))
	for _, t := range view {
		msgs = append(msgs, llmclient.Message{Role: wireRole(t.Role), Content: t.Content})
	}
	return s.chat.Chat(ctx, llmclient.ChatRequest{
		Model:      s.cfg.ChatModel,
		Messages:   msgs,
		Tools:      s.tools.Specs(),
		ToolChoice: choice,
	})
}

func (s *Session) isExit(line string) bool {
	kw := s.cfg.ExitKeyword
	if kw == "" {
		kw = "exit"
	}
	return strings.TrimSpace(line) == kw
}

func wireRole(r transcript.Role) llmclient.Role {
	switch r {
	case transcript.RoleSystem:
		return llmclient.RoleSystem
	case transcript.RoleUser:
		return llmclient.RoleUser
	default:
		return llmclient.RoleAssistant
	}
}
