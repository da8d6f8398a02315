package dotnet

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrLaunch is returned when an external command cannot be started at all.
var ErrLaunch = errors.New("unable to launch command")

// Result is what an external command left behind.
type Result struct {
	// Output is the combined stdout and stderr text.
	Output string
	// ExitCode is the process exit status; it is informational only.
	ExitCode int
}

// Runner executes an external command in dir and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run starts the command, waits for it and captures its combined output.
// A non-zero exit status is reported in the Result, not as an error.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	result := Result{Output: string(output)}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()

		return result, nil
	}

	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", ErrLaunch, name, err)
	}

	return result, nil
}
