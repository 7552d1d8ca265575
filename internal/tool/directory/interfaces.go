package directory

import (
	"os"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Join(path string) string
}

// dirLister defines the filesystem operations needed for listing directories.
type dirLister interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
}
