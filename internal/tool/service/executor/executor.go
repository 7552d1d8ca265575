package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/confine/internal/config"
)

// pipeDrainDelay bounds how long Wait keeps reading output after the process
// has exited or been killed. Orphans that inherited the pipes cannot hold the
// call open past it.
const pipeDrainDelay = 2 * time.Second

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// RunWithTimeout executes a command in its own process group and waits for it,
// at most for timeout. A non-zero exit is reported through Result.ExitCode, not
// as an error.
//
// On timeout the entire process group is killed and ErrTimeout is returned
// together with whatever output was captured. If ctx is cancelled first the
// group is killed the same way and ctx.Err() is returned. Failures to start
// the process are returned as *CommandError with a nil Result.
func (e *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxBytes := int(e.config.Tools.MaxCommandOutputSize)
	stdout := newCollector(maxBytes)
	stderr := newCollector(maxBytes)

	cmd := exec.CommandContext(runCtx, command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = pipeDrainDelay
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Stage: "start", Cause: err}
	}

	waitErr := cmd.Wait()

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	// ErrWaitDelay: the process exited cleanly but descendants kept the pipes open.
	if waitErr == nil || errors.Is(waitErr, exec.ErrWaitDelay) {
		return res, nil
	}

	if ctx.Err() != nil {
		res.ExitCode = -1
		return res, ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		return res, ErrTimeout
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return res, nil
	}
	return res, &CommandError{Cmd: command[0], Stage: "wait", Cause: waitErr}
}
