package path

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/confine/internal/tool/errutil"
)

// -- Error Types --

// WorkspaceRootError is returned when the workspace root is invalid.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error { return e.Cause }

// OutsideWorkspaceError is returned when a path resolves outside the workspace root,
// either lexically or through a symlink. Path is the lexically resolved absolute path.
type OutsideWorkspaceError struct {
	Path string
}

func (e *OutsideWorkspaceError) Error() string {
	return fmt.Sprintf("path is outside workspace root: %s", e.Path)
}
func (e *OutsideWorkspaceError) Is(target error) bool { return target == errutil.ErrOutsideWorkspace }

// SymlinkChainTooLongError is returned when a symlink chain exceeds MaxHops.
type SymlinkChainTooLongError struct {
	MaxHops int
}

func (e *SymlinkChainTooLongError) Error() string {
	return fmt.Sprintf("symlink chain too long (max %d hops)", e.MaxHops)
}

// LstatError is returned when lstat fails for a reason other than non-existence.
type LstatError struct {
	Path  string
	Cause error
}

func (e *LstatError) Error() string {
	return fmt.Sprintf("failed to lstat path %s: %v", e.Path, e.Cause)
}
func (e *LstatError) Unwrap() error { return e.Cause }

// ReadlinkError is returned when readlink fails.
type ReadlinkError struct {
	Path  string
	Cause error
}

func (e *ReadlinkError) Error() string {
	return fmt.Sprintf("failed to read symlink %s: %v", e.Path, e.Cause)
}
func (e *ReadlinkError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)
