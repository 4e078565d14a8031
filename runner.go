package boardagent

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	pkgerrors "github.com/pkg/errors"
)

// RunResult captures one finished process invocation. ExitCode 0 is success;
// no output parsing happens here, Stdout/Stderr are retained for diagnostics
// only.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited cleanly.
func (r RunResult) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner abstracts external command execution so policy layers (and
// tests) can swap the real process launch.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (RunResult, error)
}

// ExecRunner executes commands on the local host via os/exec. Standard
// streams are captured incrementally as they arrive, so a chatty child cannot
// deadlock on a full pipe buffer. Cancelling ctx kills the child and makes
// Run return promptly without waiting for it to be reaped.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		// 127 mirrors the shell convention for "command not found".
		return RunResult{ExitCode: 127}, pkgerrors.Wrapf(err, "start %s failed", name)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		return RunResult{ExitCode: -1}, ctx.Err()
	case err := <-done:
		if ctx.Err() != nil {
			// The child was killed by cancellation; report that, not the
			// signal-death exit status.
			return RunResult{ExitCode: -1}, ctx.Err()
		}
		result := RunResult{
			Stdout: stdout.String(),
			Stderr: stderr.String(),
		}
		if err == nil {
			return result, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		result.ExitCode = -1
		return result, pkgerrors.Wrapf(err, "wait for %s failed", name)
	}
}
