// Package facts holds the free-text facts gathered during a session.
package facts

import "strings"

// Set is an insertion-ordered collection of distinct strings.
type Set struct {
	items []string
	seen  map[string]struct{}
}

func New() *Set {
	return &Set{seen: map[string]struct{}{}}
}

// Add appends fact unless an identical string is already stored.
// It reports whether the fact was inserted.
func (s *Set) Add(fact string) bool {
	if s.seen == nil {
		s.seen = map[string]struct{}{}
	}
	if _, ok := s.seen[fact]; ok {
		return false
	}
	s.seen[fact] = struct{}{}
	s.items = append(s.items, fact)
	return true
}

// All returns a copy of the facts in insertion order.
func (s *Set) All() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) Len() int { return len(s.items) }

// Format renders the facts as a bullet list for prompt inclusion.
// An empty set renders as "".
func (s *Set) Format() string {
	if len(s.items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range s.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(f)
	}
	return b.String()
}
