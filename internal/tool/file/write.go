package file

import (
	"context"
	"path/filepath"
	"unicode/utf8"

	"github.com/Cyclone1070/confine/internal/tool/errutil"
)

// WriteFileTool handles file writing operations.
type WriteFileTool struct {
	fileOps      fileWriter
	pathResolver pathResolver
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
func NewWriteFileTool(fileOps fileWriter, pathResolver pathResolver) *WriteFileTool {
	return &WriteFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
	}
}

// Run creates or overwrites a file strictly below the working root, creating
// missing parent directories first. The root itself is never a valid target.
func (t *WriteFileTool) Run(ctx context.Context, req WriteFileRequest) (*WriteFileResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := t.pathResolver.Root()
	display := t.pathResolver.Join(req.FilePath)
	abs, err := t.pathResolver.Abs(req.FilePath)
	if err != nil {
		return nil, errutil.FromResolve(errutil.OpWrite, display, err)
	}
	if abs == root {
		return nil, &errutil.ContainmentError{Op: errutil.OpWrite, Path: abs}
	}

	if err := t.fileOps.EnsureDirs(filepath.Dir(abs)); err != nil {
		return nil, &errutil.IOError{Op: errutil.OpWrite, Path: abs, Root: root, Cause: err}
	}

	if err := t.fileOps.WriteFile(abs, []byte(req.Content), 0o644); err != nil {
		return nil, &errutil.IOError{Op: errutil.OpWrite, Path: abs, Root: root, Cause: err}
	}

	return &WriteFileResponse{
		AbsolutePath: abs,
		CharsWritten: utf8.RuneCountInString(req.Content),
	}, nil
}
