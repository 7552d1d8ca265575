package directory

import (
	"context"
	"sort"

	"github.com/Cyclone1070/confine/internal/tool/errutil"
)

// ListDirectoryTool handles directory listing operations.
type ListDirectoryTool struct {
	fs           dirLister
	pathResolver pathResolver
}

// NewListDirectoryTool creates a new ListDirectoryTool with injected dependencies.
func NewListDirectoryTool(fs dirLister, pathResolver pathResolver) *ListDirectoryTool {
	return &ListDirectoryTool{
		fs:           fs,
		pathResolver: pathResolver,
	}
}

// Run lists the immediate children of a directory inside the working root,
// sorted by name. Symlinked entries report their target's size and kind.
func (t *ListDirectoryTool) Run(ctx context.Context, req ListDirectoryRequest) (*ListDirectoryResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	display := t.pathResolver.Join(req.Directory)
	abs, err := t.pathResolver.Abs(req.Directory)
	if err != nil {
		return nil, errutil.FromResolve(errutil.OpList, display, err)
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		if errutil.IsNotExist(err) {
			return nil, &errutil.NotADirectoryError{Path: abs}
		}
		return nil, &errutil.IOError{Op: errutil.OpList, Path: abs, Cause: err}
	}
	if !info.IsDir() {
		return nil, &errutil.NotADirectoryError{Path: abs}
	}

	infos, err := t.fs.ListDir(abs)
	if err != nil {
		return nil, &errutil.IOError{Op: errutil.OpList, Path: abs, Cause: err}
	}

	entries := make([]DirectoryEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, DirectoryEntry{
			Name:  info.Name(),
			Size:  info.Size(),
			IsDir: info.IsDir(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return &ListDirectoryResponse{
		DirectoryPath: abs,
		Entries:       entries,
	}, nil
}
