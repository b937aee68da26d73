package scaffold

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	requireShell(t)
	res, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "echo out; echo err 1>&2"}, Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireShell(t)
	_, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "echo bad 1>&2; exit 3"}, Timeout: 5 * time.Second,
	})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Result.ExitCode)
	assert.Contains(t, exitErr.Error(), "bad")
}

func TestExecRunner_Timeout(t *testing.T) {
	requireShell(t)
	_, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh", Args: []string{"-c", "sleep 5"}, Timeout: 50 * time.Millisecond,
	})
	assert.ErrorIs(t, err, ErrTimeout)
}
