package file

import (
	"os"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Join(path string) string
	Root() string
}

// fileReader defines the minimal filesystem operations needed for reading files.
type fileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadTextPrefix(path string, limit int) (string, bool, error)
}

// fileWriter defines the minimal filesystem operations needed for writing files.
type fileWriter interface {
	WriteFile(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}
