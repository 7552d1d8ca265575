package toolset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/confine/internal/tool/directory"
	"github.com/Cyclone1070/confine/internal/tool/file"
	"github.com/Cyclone1070/confine/internal/tool/script"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		args     map[string]any
		expected Call
	}{
		{"list with directory", "get_files_info", map[string]any{"directory": "pkg"},
			ListCall{directory.ListDirectoryRequest{Directory: "pkg"}}},
		{"list without arguments", "list", nil, ListCall{}},
		{"read", "get_file_content", map[string]any{"file_path": "main.py"},
			ReadCall{file.ReadFileRequest{FilePath: "main.py"}}},
		{"read alias", "read", map[string]any{"file_path": "main.py"},
			ReadCall{file.ReadFileRequest{FilePath: "main.py"}}},
		{"write", "write_file", map[string]any{"file_path": "a.txt", "content": "hi"},
			WriteCall{file.WriteFileRequest{FilePath: "a.txt", Content: "hi"}}},
		{"execute", "run_python_file", map[string]any{"file_path": "tests.py"},
			ExecuteCall{script.RunScriptRequest{FilePath: "tests.py"}}},
		{"execute alias", "execute", map[string]any{"file_path": "tests.py"},
			ExecuteCall{script.RunScriptRequest{FilePath: "tests.py"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := Decode(tt.op, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, call)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Run("unknown operation", func(t *testing.T) {
		_, err := Decode("delete_everything", nil)

		assert.ErrorIs(t, err, ErrUnknownOperation)
		assert.Equal(t, "Unknown function: delete_everything", err.Error())
	})

	t.Run("unknown argument is rejected", func(t *testing.T) {
		_, err := Decode("get_file_content", map[string]any{"file_path": "a", "working_directory": "/"})

		assert.ErrorIs(t, err, ErrInvalidArguments)
		assert.Contains(t, err.Error(), "working_directory")
	})

	t.Run("mistyped argument is rejected", func(t *testing.T) {
		_, err := Decode("get_files_info", map[string]any{"directory": 42})

		assert.ErrorIs(t, err, ErrInvalidArguments)
	})
}

// recordingHandler records which method a call reached.
type recordingHandler struct {
	called string
}

func (h *recordingHandler) List(ctx context.Context, req directory.ListDirectoryRequest) (*directory.ListDirectoryResponse, error) {
	h.called = "list:" + req.Directory
	return &directory.ListDirectoryResponse{}, nil
}

func (h *recordingHandler) Read(ctx context.Context, req file.ReadFileRequest) (*file.ReadFileResponse, error) {
	h.called = "read:" + req.FilePath
	return &file.ReadFileResponse{Content: "content"}, nil
}

func (h *recordingHandler) Write(ctx context.Context, req file.WriteFileRequest) (*file.WriteFileResponse, error) {
	h.called = "write:" + req.FilePath
	return nil, errors.New("disk full")
}

func (h *recordingHandler) Execute(ctx context.Context, req script.RunScriptRequest) (*script.RunScriptResponse, error) {
	h.called = "execute:" + req.FilePath
	return &script.RunScriptResponse{}, nil
}

func TestApply_DispatchesToMatchingMethod(t *testing.T) {
	tests := []struct {
		call     Call
		called   string
		expected Result
	}{
		{ListCall{directory.ListDirectoryRequest{Directory: "d"}}, "list:d", Result{Operation: OpGetFilesInfo}},
		{ReadCall{file.ReadFileRequest{FilePath: "r"}}, "read:r", Result{Operation: OpGetFileContent, Output: "content"}},
		{ExecuteCall{script.RunScriptRequest{FilePath: "x.py"}}, "execute:x.py", Result{Operation: OpRunPythonFile, Output: script.NoOutput}},
	}

	for _, tt := range tests {
		t.Run(tt.called, func(t *testing.T) {
			h := &recordingHandler{}
			res := tt.call.apply(context.Background(), h)
			assert.Equal(t, tt.called, h.called)
			assert.Equal(t, tt.expected, res)
		})
	}

	t.Run("error skips rendering", func(t *testing.T) {
		h := &recordingHandler{}
		res := WriteCall{file.WriteFileRequest{FilePath: "w"}}.apply(context.Background(), h)
		assert.Equal(t, "write:w", h.called)
		assert.Equal(t, "Error: disk full", res.Text())
	})
}
