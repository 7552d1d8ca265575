package executor

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")

// CommandError is returned when a command cannot be started or waited on.
type CommandError struct {
	Cmd   string
	Stage string
	Cause error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Stage, e.Cmd, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
