package errutil

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Sentinel errors for consistent error handling across tools.
// Every typed error below matches exactly one of these through errors.Is.
var (
	ErrOutsideWorkspace    = errors.New("path is outside the permitted working directory")
	ErrFileMissing         = errors.New("file not found or is not a regular file")
	ErrNotADirectory       = errors.New("not a directory")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExecutionTimeout    = errors.New("execution timed out")
	ErrIO                  = errors.New("i/o failure")
	ErrExecution           = errors.New("execution failed")
)

// Op names the operation that produced an error. It is used verbatim in messages.
type Op string

const (
	OpList    Op = "list"
	OpRead    Op = "read"
	OpWrite   Op = "write"
	OpExecute Op = "execute"
)

// ContainmentError is returned when a path resolves outside the working root.
type ContainmentError struct {
	Op   Op
	Path string
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf(`Cannot %s "%s" as it is outside the permitted working directory`, e.Op, e.Path)
}

func (e *ContainmentError) Is(target error) bool { return target == ErrOutsideWorkspace }

// OutsideWorkspace implements the behavioral interface for cross-package error checking.
func (e *ContainmentError) OutsideWorkspace() bool { return true }

// NotFoundError is returned when the target is absent or of the wrong kind.
type NotFoundError struct {
	Op   Op
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Op == OpExecute {
		return fmt.Sprintf(`File "%s" not found.`, e.Path)
	}
	return fmt.Sprintf(`File not found or is not a regular file: "%s"`, e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrFileMissing }

// NotADirectoryError is returned when a listing target is not an existing directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf(`"%s" is not a directory`, e.Path)
}

func (e *NotADirectoryError) Is(target error) bool { return target == ErrNotADirectory }

// UnsupportedFileTypeError is returned when a file does not carry the script extension.
type UnsupportedFileTypeError struct {
	Path string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf(`File "%s" is not a Python file.`, e.Path)
}

func (e *UnsupportedFileTypeError) Is(target error) bool { return target == ErrUnsupportedFileType }

// ExecutionTimeoutError is returned when a process is killed after exceeding its timeout.
type ExecutionTimeoutError struct {
	Path    string
	Seconds int
}

func (e *ExecutionTimeoutError) Error() string {
	return fmt.Sprintf(`executing Python file: "%s" timed out after %d seconds`, e.Path, e.Seconds)
}

func (e *ExecutionTimeoutError) Is(target error) bool { return target == ErrExecutionTimeout }

// IOError wraps any underlying filesystem failure.
// Root is optional and only rendered when set.
type IOError struct {
	Op    Op
	Path  string
	Root  string
	Cause error
}

func (e *IOError) Error() string {
	if e.Root != "" {
		return fmt.Sprintf(`failed to %s "%s" (working directory "%s"): %v`, e.Op, e.Path, e.Root, e.Cause)
	}
	return fmt.Sprintf(`failed to %s "%s": %v`, e.Op, e.Path, e.Cause)
}

func (e *IOError) Unwrap() error        { return e.Cause }
func (e *IOError) Is(target error) bool { return target == ErrIO }

// ExecutionError is returned when a process could not be started or waited on.
type ExecutionError struct {
	Path  string
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing Python file: %v", e.Cause)
}

func (e *ExecutionError) Unwrap() error        { return e.Cause }
func (e *ExecutionError) Is(target error) bool { return target == ErrExecution }

// FromResolve converts a path resolution failure into the error reported for op.
// display is the path the message names.
func FromResolve(op Op, display string, err error) error {
	if errors.Is(err, ErrOutsideWorkspace) {
		return &ContainmentError{Op: op, Path: display}
	}
	return &IOError{Op: op, Path: display, Cause: err}
}

// IsNotExist reports whether err means the path is absent. A path that runs
// through a regular file (ENOTDIR) is absent too.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
