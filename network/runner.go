package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/yllada/twingate-tray/common"
)

// Runner is the subprocess boundary used by Provider and Privileged.
type Runner interface {
	// Output runs name with args to completion and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start launches name with args without waiting for it to exit.
	Start(name string, args ...string) error
}

// ExecRunner runs real processes with os/exec.
type ExecRunner struct {
	// Timeout bounds Output calls. Zero means no timeout.
	Timeout time.Duration
}

// NewExecRunner creates a runner with the given Output timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Output runs the command and classifies its failure:
// common.ErrProviderUnavailable when it cannot be invoked and
// common.ErrProviderNonZeroExit when it reports failure.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	common.LogDebug("Runner: %s", commandLine(name, args))
	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrProviderUnavailable, commandLine(name, args), ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), &ExitError{
			Command: commandLine(name, args),
			Code:    exitErr.ExitCode(),
			Stderr:  strings.TrimSpace(stderr.String()),
		}
	}

	return nil, fmt.Errorf("%w: %s: %w", common.ErrProviderUnavailable, commandLine(name, args), err)
}

// Start launches the command and reaps it in the background. Only a failure
// to spawn is reported, as common.ErrSubprocessSpawnFailed.
func (r *ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	line := commandLine(name, args)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrSubprocessSpawnFailed, line, err)
	}
	common.LogDebug("Runner: started %s (pid %d)", line, cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			common.LogDebug("Runner: %s exited: %v", line, err)
		}
	}()
	return nil
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.Code, e.Stderr)
}

// Is matches common.ErrProviderNonZeroExit.
func (e *ExitError) Is(target error) bool {
	return target == common.ErrProviderNonZeroExit
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
