package directory

import (
	"fmt"
	"strings"
)

// DirectoryEntry represents a single immediate child of a listed directory.
type DirectoryEntry struct {
	Name  string
	Size  int64
	IsDir bool
}

// String renders the entry as "<name>: file_size=<n> bytes, is_dir=<True|False>".
func (e DirectoryEntry) String() string {
	isDir := "False"
	if e.IsDir {
		isDir = "True"
	}
	return fmt.Sprintf("%s: file_size=%d bytes, is_dir=%s", e.Name, e.Size, isDir)
}

// ListDirectoryRequest names the directory to list. An empty Directory means the working root.
type ListDirectoryRequest struct {
	Directory string `mapstructure:"directory"`
}

// ListDirectoryResponse contains the result of a ListDirectory operation.
type ListDirectoryResponse struct {
	DirectoryPath string
	Entries       []DirectoryEntry
}

// String renders one line per entry. An empty directory renders as "".
func (r *ListDirectoryResponse) String() string {
	lines := make([]string, len(r.Entries))
	for i, entry := range r.Entries {
		lines[i] = entry.String()
	}
	return strings.Join(lines, "\n")
}
