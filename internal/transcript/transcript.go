// Package transcript stores the ordered conversation and derives the bounded
// view that is sent to the model.
package transcript

// Role tags a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleToolResult carries a tool's follow-up prompt. Providers see it as
	// an assistant turn.
	RoleToolResult Role = "tool-result"
)

const DefaultWindow = 10

// Turn is one message in the conversation.
type Turn struct {
	Role    Role
	Content string
}

// SystemPrompt rebuilds the system turn content from current session state.
type SystemPrompt func() string

// Store holds the full transcript. It is not safe for concurrent use.
type Store struct {
	turns  []Turn
	window int
	system SystemPrompt
}

// New creates a store seeded with a system turn built from system.
// A window <= 0 selects DefaultWindow.
func New(window int, system SystemPrompt) *Store {
	if window <= 0 {
		window = DefaultWindow
	}
	if system == nil {
		system = func() string { return "" }
	}
	s := &Store{window: window, system: system}
	s.turns = append(s.turns, Turn{Role: RoleSystem, Content: system()})
	return s
}

func (s *Store) Append(t Turn) {
	s.turns = append(s.turns, t)
}

// DropLast removes the most recently appended turn. It reports whether a
// turn was removed.
func (s *Store) DropLast() bool {
	if len(s.turns) == 0 {
		return false
	}
	s.turns = s.turns[:len(s.turns)-1]
	return true
}

func (s *Store) Len() int { return len(s.turns) }

// Turns returns a copy of every stored turn.
func (s *Store) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Last returns the most recent turn.
func (s *Store) Last() (Turn, bool) {
	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

// WindowedView returns the last window turns with a system turn first.
// The system content is always rebuilt so that facts gathered after the
// session started reach the model; when the window cut off the original
// system turn a fresh one is prepended.
func (s *Store) WindowedView() []Turn {
	start := len(s.turns) - s.window
	if start < 0 {
		start = 0
	}
	tail := s.turns[start:]
	fresh := Turn{Role: RoleSystem, Content: s.system()}

	out := make([]Turn, 0, len(tail)+1)
	if len(tail) > 0 && tail[0].Role == RoleSystem {
		out = append(out, fresh)
		out = append(out, tail[1:]...)
		return out
	}
	out = append(out, fresh)
	out = append(out, tail...)
	return out
}
