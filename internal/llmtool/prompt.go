package llmtool

import (
	"fmt"
	"strings"
)

// FollowUpPrompt embeds a tool result into the prompt fed back to the model.
func FollowUpPrompt(result string) string {
	return fmt.Sprintf("This was the result of the tool call: %s. Generate a follow up response for the user.", result)
}

// NoToolPrompt is fed back when none of the requested tools exist.
func NoToolPrompt(requested []string) string {
	if len(requested) == 0 {
		return "No available tools were passed."
	}
	return fmt.Sprintf("No available tools were passed. Unknown tools requested: %s.", strings.Join(requested, ", "))
}
