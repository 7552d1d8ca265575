package toolset

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/confine/internal/tool/directory"
	"github.com/Cyclone1070/confine/internal/tool/file"
	"github.com/Cyclone1070/confine/internal/tool/script"
)

// Operation names as the agent sends them. Short aliases are accepted too.
const (
	OpGetFilesInfo   = "get_files_info"
	OpGetFileContent = "get_file_content"
	OpWriteFile      = "write_file"
	OpRunPythonFile  = "run_python_file"
)

// Handler performs each operation. Every Call variant dispatches to exactly one method.
type Handler interface {
	List(ctx context.Context, req directory.ListDirectoryRequest) (*directory.ListDirectoryResponse, error)
	Read(ctx context.Context, req file.ReadFileRequest) (*file.ReadFileResponse, error)
	Write(ctx context.Context, req file.WriteFileRequest) (*file.WriteFileResponse, error)
	Execute(ctx context.Context, req script.RunScriptRequest) (*script.RunScriptResponse, error)
}

// Call is a decoded operation. The set of variants is closed: ListCall,
// ReadCall, WriteCall and ExecuteCall.
type Call interface {
	Operation() string
	apply(ctx context.Context, h Handler) Result
}

// ListCall lists a directory.
type ListCall struct {
	directory.ListDirectoryRequest `mapstructure:",squash"`
}

func (ListCall) Operation() string { return OpGetFilesInfo }

func (c ListCall) apply(ctx context.Context, h Handler) Result {
	resp, err := h.List(ctx, c.ListDirectoryRequest)
	return newResult(c.Operation(), resp, err)
}

// ReadCall reads a file.
type ReadCall struct {
	file.ReadFileRequest `mapstructure:",squash"`
}

func (ReadCall) Operation() string { return OpGetFileContent }

func (c ReadCall) apply(ctx context.Context, h Handler) Result {
	resp, err := h.Read(ctx, c.ReadFileRequest)
	return newResult(c.Operation(), resp, err)
}

// WriteCall writes a file.
type WriteCall struct {
	file.WriteFileRequest `mapstructure:",squash"`
}

func (WriteCall) Operation() string { return OpWriteFile }

func (c WriteCall) apply(ctx context.Context, h Handler) Result {
	resp, err := h.Write(ctx, c.WriteFileRequest)
	return newResult(c.Operation(), resp, err)
}

// ExecuteCall runs a script.
type ExecuteCall struct {
	script.RunScriptRequest `mapstructure:",squash"`
}

func (ExecuteCall) Operation() string { return OpRunPythonFile }

func (c ExecuteCall) apply(ctx context.Context, h Handler) Result {
	resp, err := h.Execute(ctx, c.RunScriptRequest)
	return newResult(c.Operation(), resp, err)
}

// Decode turns an operation name and its argument map into a Call.
// Unknown names and unknown or mistyped arguments are errors.
func Decode(name string, args map[string]any) (Call, error) {
	switch name {
	case OpGetFilesInfo, "list":
		return decodeInto[ListCall](name, args)
	case OpGetFileContent, "read":
		return decodeInto[ReadCall](name, args)
	case OpWriteFile, "write":
		return decodeInto[WriteCall](name, args)
	case OpRunPythonFile, "execute":
		return decodeInto[ExecuteCall](name, args)
	default:
		return nil, &UnknownOperationError{Name: name}
	}
}

func decodeInto[C Call](name string, args map[string]any) (Call, error) {
	var call C
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &call,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return nil, &ArgumentError{Operation: name, Cause: err}
	}
	return call, nil
}
