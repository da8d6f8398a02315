package dotnet

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const helperEnv = "NUGET_PUBLISHER_WANT_HELPER_PROCESS"

// TestHelperProcess is not a real test: it stands in for dotnet when re-executed by ExecRunner tests.
func TestHelperProcess(_ *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}

	if len(args) < 2 {
		os.Exit(2)
	}

	switch args[1] {
	case "echo":
		fmt.Fprintln(os.Stdout, strings.Join(args[2:], " "))
		fmt.Fprintln(os.Stderr, "warning from stderr")
		os.Exit(0)
	case "conflict":
		fmt.Fprintln(os.Stderr, "error: Response status code does not indicate success: 409 (Conflict).")
		os.Exit(1)
	}

	os.Exit(3)
}

// TestExecRunner_CapturesCombinedOutput checks stdout and stderr both land in the result.
func TestExecRunner_CapturesCombinedOutput(t *testing.T) {
	t.Setenv(helperEnv, "1")

	result, err := ExecRunner{}.Run(context.Background(), t.TempDir(),
		os.Args[0], "-test.run=TestHelperProcess", "--", "echo", "pack", "--no-build")
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Contains(t, result.Output, "pack --no-build")
	require.Contains(t, result.Output, "warning from stderr")
}

// TestExecRunner_NonZeroExitIsNotAnError reports the exit status in the result.
func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Setenv(helperEnv, "1")

	result, err := ExecRunner{}.Run(context.Background(), t.TempDir(),
		os.Args[0], "-test.run=TestHelperProcess", "--", "conflict")
	require.NoError(t, err)
	require.Equal(t, 1, result.ExitCode)
	require.Equal(t, OutcomeAlreadyPublished, Classify(result.Output))
}

// TestExecRunner_MissingBinary returns ErrLaunch.
func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	_, err := ExecRunner{}.Run(context.Background(), t.TempDir(), "nuget-publisher-no-such-dotnet")
	require.ErrorIs(t, err, ErrLaunch)
}

// TestExecRunner_CanceledContext reports the interruption.
func TestExecRunner_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecRunner{}.Run(ctx, t.TempDir(), os.Args[0], "-test.run=TestHelperProcess")
	require.ErrorIs(t, err, context.Canceled)
}
