// Package testhelpers provides shared utilities for integration testing
package testhelpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// CreateTestWorkspace creates a temporary working root populated with files.
// Keys are slash-separated paths relative to the root; parents are created.
// The returned root is canonical, as the tools expect.
func CreateTestWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

// RequirePython skips the test unless python3 is on PATH and the platform
// supports process groups.
func RequirePython(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("process group tests need a POSIX system")
	}
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
}
