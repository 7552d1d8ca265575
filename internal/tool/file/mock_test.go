package file

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
	"unicode/utf8"
)

type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.mode.IsDir() }
func (m *mockFileInfo) Sys() any           { return nil }

// mockFileSystem is an in-memory filesystem shared by the read and write tests.
// Errors are keyed by "<operation>:<path>".
type mockFileSystem struct {
	files   map[string][]byte
	dirs    map[string]bool
	devices map[string]bool
	errors  map[string]error
	ensured []string
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{
		files:   make(map[string][]byte),
		dirs:    map[string]bool{"/workspace": true},
		devices: make(map[string]bool),
		errors:  make(map[string]error),
	}
}

func (m *mockFileSystem) Stat(path string) (os.FileInfo, error) {
	if err, ok := m.errors["stat:"+path]; ok {
		return nil, err
	}
	for p := filepath.Dir(path); p != filepath.Dir(p); p = filepath.Dir(p) {
		if _, ok := m.files[p]; ok {
			return nil, &os.PathError{Op: "stat", Path: path, Err: syscall.ENOTDIR}
		}
	}
	if m.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), mode: os.ModeDir | 0o755}, nil
	}
	if m.devices[path] {
		return &mockFileInfo{name: filepath.Base(path), mode: os.ModeDevice | 0o666}, nil
	}
	if content, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(content)), mode: 0o644}, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFileSystem) Lstat(path string) (os.FileInfo, error) {
	return m.Stat(path)
}

func (m *mockFileSystem) Readlink(path string) (string, error) {
	return "", fmt.Errorf("not a symlink: %s", path)
}

func (m *mockFileSystem) ReadTextPrefix(path string, limit int) (string, bool, error) {
	if err, ok := m.errors["read:"+path]; ok {
		return "", false, err
	}
	content, ok := m.files[path]
	if !ok {
		return "", false, os.ErrNotExist
	}
	if !utf8.Valid(content) {
		return "", false, fmt.Errorf("invalid utf-8")
	}
	runes := []rune(string(content))
	if len(runes) > limit {
		return string(runes[:limit]), true, nil
	}
	return string(runes), false, nil
}

func (m *mockFileSystem) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err, ok := m.errors["write:"+path]; ok {
		return err
	}
	if m.dirs[path] {
		return fmt.Errorf("is a directory")
	}
	m.files[path] = append([]byte(nil), content...)
	return nil
}

func (m *mockFileSystem) EnsureDirs(path string) error {
	if err, ok := m.errors["mkdir:"+path]; ok {
		return err
	}
	m.ensured = append(m.ensured, path)
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}
