package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/confine/internal/tool/errutil"
	"github.com/Cyclone1070/confine/internal/tool/service/fs"
	"github.com/Cyclone1070/confine/internal/tool/service/path"
)

func newReadTool(mfs *mockFileSystem) *ReadFileTool {
	return NewReadFileTool(mfs, path.NewResolver("/workspace", mfs))
}

func TestReadFile(t *testing.T) {
	t.Run("short file is returned unchanged", func(t *testing.T) {
		mfs := newMockFileSystem()
		mfs.files["/workspace/main.py"] = []byte("print('hello')\n")

		resp, err := newReadTool(mfs).Run(context.Background(), ReadFileRequest{FilePath: "main.py"})

		require.NoError(t, err)
		assert.Equal(t, "/workspace/main.py", resp.AbsolutePath)
		assert.False(t, resp.Truncated)
		assert.Equal(t, "print('hello')\n", resp.String())
	})

	t.Run("exactly at the limit is not truncated", func(t *testing.T) {
		mfs := newMockFileSystem()
		mfs.files["/workspace/exact.txt"] = []byte(strings.Repeat("a", MaxReadChars))

		resp, err := newReadTool(mfs).Run(context.Background(), ReadFileRequest{FilePath: "exact.txt"})

		require.NoError(t, err)
		assert.False(t, resp.Truncated)
		assert.Equal(t, strings.Repeat("a", MaxReadChars), resp.String())
	})

	t.Run("one character over the limit is truncated", func(t *testing.T) {
		mfs := newMockFileSystem()
		mfs.files["/workspace/over.txt"] = []byte(strings.Repeat("a", MaxReadChars+1))

		resp, err := newReadTool(mfs).Run(context.Background(), ReadFileRequest{FilePath: "over.txt"})

		require.NoError(t, err)
		assert.True(t, resp.Truncated)
		assert.Equal(t, strings.Repeat("a", MaxReadChars)+"\n[...File \"/workspace/over.txt\" truncated at 10000 characters]", resp.String())
	})

	t.Run("empty file", func(t *testing.T) {
		mfs := newMockFileSystem()
		mfs.files["/workspace/empty.txt"] = nil

		resp, err := newReadTool(mfs).Run(context.Background(), ReadFileRequest{FilePath: "empty.txt"})

		require.NoError(t, err)
		assert.Equal(t, "", resp.String())
	})
}

func TestReadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*mockFileSystem)
		filePath string
		sentinel error
		message  string
	}{
		{
			name:     "parent escape",
			filePath: "../secret.txt",
			sentinel: errutil.ErrOutsideWorkspace,
			message:  `Cannot read "/secret.txt" as it is outside the permitted working directory`,
		},
		{
			name:     "absolute path outside root",
			filePath: "/etc/passwd",
			sentinel: errutil.ErrOutsideWorkspace,
			message:  `Cannot read "/etc/passwd" as it is outside the permitted working directory`,
		},
		{
			name:     "missing file",
			filePath: "nope.txt",
			sentinel: errutil.ErrFileMissing,
			message:  `File not found or is not a regular file: "/workspace/nope.txt"`,
		},
		{
			name:     "regular file as a parent",
			setup:    func(m *mockFileSystem) { m.files["/workspace/a.txt"] = []byte("x") },
			filePath: "a.txt/b.txt",
			sentinel: errutil.ErrFileMissing,
			message:  `File not found or is not a regular file: "/workspace/a.txt/b.txt"`,
		},
		{
			name:     "directory",
			setup:    func(m *mockFileSystem) { m.dirs["/workspace/pkg"] = true },
			filePath: "pkg",
			sentinel: errutil.ErrFileMissing,
			message:  `File not found or is not a regular file: "/workspace/pkg"`,
		},
		{
			name:     "device node",
			setup:    func(m *mockFileSystem) { m.devices["/workspace/tty"] = true },
			filePath: "tty",
			sentinel: errutil.ErrFileMissing,
		},
		{
			name: "invalid utf-8",
			setup: func(m *mockFileSystem) {
				m.files["/workspace/blob.bin"] = []byte{0xff, 0xfe, 0x00}
			},
			filePath: "blob.bin",
			sentinel: errutil.ErrIO,
		},
		{
			name: "permission denied",
			setup: func(m *mockFileSystem) {
				m.files["/workspace/locked.txt"] = []byte("x")
				m.errors["read:/workspace/locked.txt"] = os.ErrPermission
			},
			filePath: "locked.txt",
			sentinel: errutil.ErrIO,
			message:  `failed to read "/workspace/locked.txt": permission denied`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := newMockFileSystem()
			if tt.setup != nil {
				tt.setup(mfs)
			}

			resp, err := newReadTool(mfs).Run(context.Background(), ReadFileRequest{FilePath: tt.filePath})

			assert.Nil(t, resp)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v, got %v", tt.sentinel, err)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestReadFile_RealFilesystem(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	osfs := fs.NewOSFileSystem()
	tool := NewReadFileTool(osfs, path.NewResolver(root, osfs))

	t.Run("large file truncated at exactly 10000 characters", func(t *testing.T) {
		content := strings.Repeat("0123456789", 1500)
		target := filepath.Join(root, "big.txt")
		require.NoError(t, os.WriteFile(target, []byte(content), 0o644))

		resp, err := tool.Run(context.Background(), ReadFileRequest{FilePath: "big.txt"})
		require.NoError(t, err)

		out := resp.String()
		marker := "\n[...File \"" + target + "\" truncated at 10000 characters]"
		require.True(t, strings.HasSuffix(out, marker))
		assert.Equal(t, content[:10000], strings.TrimSuffix(out, marker))
	})

	t.Run("multibyte characters are counted, not bytes", func(t *testing.T) {
		content := strings.Repeat("λ", MaxReadChars+5)
		require.NoError(t, os.WriteFile(filepath.Join(root, "greek.txt"), []byte(content), 0o644))

		resp, err := tool.Run(context.Background(), ReadFileRequest{FilePath: "greek.txt"})
		require.NoError(t, err)

		assert.True(t, resp.Truncated)
		assert.Equal(t, strings.Repeat("λ", MaxReadChars), resp.Content)
	})

	t.Run("path below a regular file is not found", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

		_, err := tool.Run(context.Background(), ReadFileRequest{FilePath: "a.txt/b.txt"})

		assert.ErrorIs(t, err, errutil.ErrFileMissing)
		assert.Equal(t, `File not found or is not a regular file: "`+filepath.Join(root, "a.txt", "b.txt")+`"`, err.Error())
	})
}
