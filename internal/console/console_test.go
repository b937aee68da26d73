package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_FunctionOnlyWhenVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer
	NewPrinter(&quiet, false).Function("Processing tool call: storeInfo")
	NewPrinter(&loud, true).Function("Processing tool call: storeInfo")

	assert.Empty(t, quiet.String())
	assert.Contains(t, loud.String(), "Function: Processing tool call: storeInfo")
}

func TestPrinter_AssistantPrefix(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Assistant("What is your github username?")
	assert.Contains(t, buf.String(), "Assistant: What is your github username?")
}

func TestLineReader(t *testing.T) {
	var out bytes.Buffer
	r := NewLineReader(strings.NewReader("johndoe\r\nexit"), &out)

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "johndoe", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "exit", line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "You: You: You: ", out.String())
}
