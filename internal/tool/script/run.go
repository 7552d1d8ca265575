package script

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Cyclone1070/confine/internal/config"
	"github.com/Cyclone1070/confine/internal/tool/errutil"
	"github.com/Cyclone1070/confine/internal/tool/service/executor"
)

// RunScriptTool executes scripts that live inside the working root.
type RunScriptTool struct {
	fs           fileStatter
	commandExec  commandExecutor
	config       *config.Config
	pathResolver pathResolver
}

// NewRunScriptTool creates a new RunScriptTool with injected dependencies.
func NewRunScriptTool(
	fs fileStatter,
	commandExec commandExecutor,
	cfg *config.Config,
	pathResolver pathResolver,
) *RunScriptTool {
	if cfg == nil {
		panic("cfg is required")
	}
	return &RunScriptTool{
		fs:           fs,
		commandExec:  commandExec,
		config:       cfg,
		pathResolver: pathResolver,
	}
}

// Run executes the interpreter on a script with the working root as its
// directory. Checks run in order: containment, existence, extension. Nothing
// is spawned unless all three pass. Errors name the path as the caller gave it.
func (t *RunScriptTool) Run(ctx context.Context, req RunScriptRequest) (*RunScriptResponse, error) {
	abs, err := t.pathResolver.Abs(req.FilePath)
	if err != nil {
		return nil, errutil.FromResolve(errutil.OpExecute, req.FilePath, err)
	}
	root := t.pathResolver.Root()
	if abs == root {
		return nil, &errutil.ContainmentError{Op: errutil.OpExecute, Path: req.FilePath}
	}

	if _, err := t.fs.Stat(abs); err != nil {
		if errutil.IsNotExist(err) {
			return nil, &errutil.NotFoundError{Op: errutil.OpExecute, Path: req.FilePath}
		}
		return nil, &errutil.IOError{Op: errutil.OpExecute, Path: req.FilePath, Cause: err}
	}

	if !strings.HasSuffix(abs, t.config.Tools.ScriptExtension) {
		return nil, &errutil.UnsupportedFileTypeError{Path: req.FilePath}
	}

	seconds := t.config.Tools.ScriptTimeoutSeconds
	command := []string{t.config.Tools.ScriptInterpreter, abs}

	res, err := t.commandExec.RunWithTimeout(ctx, command, root, nil, time.Duration(seconds)*time.Second)
	if err != nil {
		if errors.Is(err, executor.ErrTimeout) {
			return nil, &errutil.ExecutionTimeoutError{Path: req.FilePath, Seconds: seconds}
		}
		return nil, &errutil.ExecutionError{Path: req.FilePath, Cause: err}
	}

	return &RunScriptResponse{
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		ExitCode:  res.ExitCode,
		Truncated: res.Truncated,
	}, nil
}
