package fs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info for a path without following symlinks.
func (fs *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Readlink reads the target of a symlink.
func (fs *OSFileSystem) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

// ListDir lists the immediate children of a directory.
// Each entry is stat'ed through symlinks; a dangling symlink is reported as the link itself.
func (fs *OSFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		info, err := os.Stat(child)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if info, err = os.Lstat(child); err != nil {
				return nil, err
			}
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// ReadTextPrefix decodes at most limit characters of UTF-8 text from path.
// It reports truncated=true when the file holds more than limit characters.
// Invalid UTF-8 within the decoded prefix is an error; bytes past the
// first limit+1 characters are never read.
func (fs *OSFileSystem) ReadTextPrefix(path string, limit int) (string, bool, error) {
	if limit <= 0 {
		return "", false, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer file.Close()

	reader := bufio.NewReader(transform.NewReader(file, encoding.UTF8Validator))

	var b strings.Builder
	for n := 0; n < limit; n++ {
		r, _, err := reader.ReadRune()
		if err == io.EOF {
			return b.String(), false, nil
		}
		if err != nil {
			return "", false, err
		}
		b.WriteRune(r)
	}

	// One more rune decides whether anything was cut off.
	if _, _, err := reader.ReadRune(); err != nil {
		if err == io.EOF {
			return b.String(), false, nil
		}
		return "", false, err
	}
	return b.String(), true, nil
}

// WriteFile creates or truncates path and writes content to it.
func (fs *OSFileSystem) WriteFile(path string, content []byte, perm os.FileMode) error {
	return os.WriteFile(path, content, perm)
}

// EnsureDirs creates parent directories recursively if they don't exist.
func (fs *OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}
