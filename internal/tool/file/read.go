package file

import (
	"context"

	"github.com/Cyclone1070/confine/internal/tool/errutil"
)

// ReadFileTool handles file reading operations.
type ReadFileTool struct {
	fileOps      fileReader
	pathResolver pathResolver
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileReader, pathResolver pathResolver) *ReadFileTool {
	return &ReadFileTool{
		fileOps:      fileOps,
		pathResolver: pathResolver,
	}
}

// Run reads up to MaxReadChars characters of a regular file inside the working root.
// The file must be valid UTF-8 as far as it is read.
func (t *ReadFileTool) Run(ctx context.Context, req ReadFileRequest) (*ReadFileResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	display := t.pathResolver.Join(req.FilePath)
	abs, err := t.pathResolver.Abs(req.FilePath)
	if err != nil {
		return nil, errutil.FromResolve(errutil.OpRead, display, err)
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		if errutil.IsNotExist(err) {
			return nil, &errutil.NotFoundError{Op: errutil.OpRead, Path: abs}
		}
		return nil, &errutil.IOError{Op: errutil.OpRead, Path: abs, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &errutil.NotFoundError{Op: errutil.OpRead, Path: abs}
	}

	content, truncated, err := t.fileOps.ReadTextPrefix(abs, MaxReadChars)
	if err != nil {
		if errutil.IsNotExist(err) {
			return nil, &errutil.NotFoundError{Op: errutil.OpRead, Path: abs}
		}
		return nil, &errutil.IOError{Op: errutil.OpRead, Path: abs, Cause: err}
	}

	return &ReadFileResponse{
		AbsolutePath: abs,
		Content:      content,
		Truncated:    truncated,
	}, nil
}
