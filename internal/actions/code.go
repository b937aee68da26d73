package actions

import (
	"errors"
	"regexp"
	"strings"
)

var ErrNoCodeBlock = errors.New("actions: model reply has no fenced code block")

const defaultProjectName = "react_app"

var (
	fencedBlock = regexp.MustCompile("(?s)```(.*?)```")
	// fenceOpening is the rest of the opening fence line: an optional
	// javascript/jsx/js tag and the line break.
	fenceOpening = regexp.MustCompile(`^(?i:javascript|jsx|js)?[ \t]*\r?\n`)
)

// extractCode returns the body of the first fenced block. Only the opening
// fence line is removed; blank lines and indentation inside the block are
// kept.
func extractCode(reply string) (string, error) {
	m := fencedBlock.FindStringSubmatch(reply)
	if m == nil {
		return "", ErrNoCodeBlock
	}
	body := m[1]
	if loc := fenceOpening.FindStringIndex(body); loc != nil {
		body = body[loc[1]:]
	}
	return body, nil
}

// normalizeName lower-cases the name and joins its words with "_".
func normalizeName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return defaultProjectName
	}
	return strings.Join(words, "_")
}
