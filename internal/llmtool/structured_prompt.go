package llmtool

import (
	"bytes"
	"fmt"
	"strings"
)

// PromptExample is one exchange shown to the model.
type PromptExample struct {
	Speaker string
	Text    string
}

// StructuredPromptSpec defines the sections for a structured prompt.
type StructuredPromptSpec struct {
	Purpose     string
	Background  string
	Process     []string
	Constraints []string
	Rules       []string
	Examples    []PromptExample
	Closing     string
}

// Render writes the non-empty sections in a fixed order.
func (spec StructuredPromptSpec) Render() (string, error) {
	if strings.TrimSpace(spec.Purpose) == "" {
		return "", fmt.Errorf("llmtool: purpose is empty")
	}
	var buf bytes.Buffer
	writeSection(&buf, "PURPOSE", spec.Purpose)
	writeSection(&buf, "BACKGROUND", spec.Background)
	writeSection(&buf, "PROCESS", formatList(spec.Process))
	writeSection(&buf, "CONSTRAINTS", formatList(spec.Constraints))
	writeSection(&buf, "RULES", formatList(spec.Rules))
	writeSection(&buf, "EXAMPLES", formatExamples(spec.Examples))
	writeSection(&buf, "REMEMBER", spec.Closing)
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// MustRender is Render for package-level prompt constants.
func (spec StructuredPromptSpec) MustRender() string {
	out, err := spec.Render()
	if err != nil {
		panic(err)
	}
	return out
}

func formatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatExamples(examples []PromptExample) string {
	if len(examples) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, ex := range examples {
		if strings.TrimSpace(ex.Text) == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s: %s\n", ex.Speaker, ex.Text)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// WriteSection appends a "[TITLE]" block; empty bodies are skipped.
func WriteSection(buf *bytes.Buffer, title, body string) {
	writeSection(buf, title, body)
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
