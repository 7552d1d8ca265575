package toolset

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Cyclone1070/confine/internal/config"
	"github.com/Cyclone1070/confine/internal/logging"
	"github.com/Cyclone1070/confine/internal/tool/directory"
	"github.com/Cyclone1070/confine/internal/tool/errutil"
	"github.com/Cyclone1070/confine/internal/tool/file"
	"github.com/Cyclone1070/confine/internal/tool/script"
	"github.com/Cyclone1070/confine/internal/tool/service/executor"
	"github.com/Cyclone1070/confine/internal/tool/service/fs"
	"github.com/Cyclone1070/confine/internal/tool/service/path"
)

var _ Handler = (*Toolset)(nil)

// Toolset binds the four operations to one working root.
type Toolset struct {
	root   string
	list   *directory.ListDirectoryTool
	read   *file.ReadFileTool
	write  *file.WriteFileTool
	run    *script.RunScriptTool
	logger *logging.Logger
}

// New creates a Toolset for root, which must already be canonical
// (see path.CanonicaliseRoot). A nil logger disables logging.
func New(cfg *config.Config, root string, logger *logging.Logger) *Toolset {
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	osfs := fs.NewOSFileSystem()
	resolver := path.NewResolver(root, osfs)

	return &Toolset{
		root:   root,
		list:   directory.NewListDirectoryTool(osfs, resolver),
		read:   file.NewReadFileTool(osfs, resolver),
		write:  file.NewWriteFileTool(osfs, resolver),
		run:    script.NewRunScriptTool(osfs, executor.NewOSCommandExecutor(cfg), cfg, resolver),
		logger: logger,
	}
}

// Root returns the working root every operation is confined to.
func (t *Toolset) Root() string {
	return t.root
}

// List implements Handler.
func (t *Toolset) List(ctx context.Context, req directory.ListDirectoryRequest) (*directory.ListDirectoryResponse, error) {
	return t.list.Run(ctx, req)
}

// Read implements Handler.
func (t *Toolset) Read(ctx context.Context, req file.ReadFileRequest) (*file.ReadFileResponse, error) {
	return t.read.Run(ctx, req)
}

// Write implements Handler.
func (t *Toolset) Write(ctx context.Context, req file.WriteFileRequest) (*file.WriteFileResponse, error) {
	return t.write.Run(ctx, req)
}

// Execute implements Handler.
func (t *Toolset) Execute(ctx context.Context, req script.RunScriptRequest) (*script.RunScriptResponse, error) {
	return t.run.Run(ctx, req)
}

// Invoke decodes and dispatches one call by name. It never panics and never
// returns a Go error: every failure is carried in the Result.
func (t *Toolset) Invoke(ctx context.Context, name string, args map[string]any) Result {
	call, err := Decode(name, args)
	if err != nil {
		t.logger.Debug("rejected call", zap.String("operation", name), zap.Error(err))
		return Result{Operation: name, Err: err}
	}
	return t.Dispatch(ctx, call)
}

// Dispatch runs an already decoded call.
func (t *Toolset) Dispatch(ctx context.Context, call Call) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("operation panicked", zap.String("operation", call.Operation()), zap.Any("panic", r))
			res = Result{Operation: call.Operation(), Err: &PanicError{Operation: call.Operation(), Value: r}}
		}
		t.logger.Debug("tool call",
			zap.String("operation", res.Operation),
			zap.Duration("duration", time.Since(start)),
			zap.String("error_kind", errorKind(res.Err)),
		)
	}()

	return call.apply(ctx, t)
}

// errorKind classifies an error for logs without leaking paths.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errutil.ErrOutsideWorkspace):
		return "outside_workspace"
	case errors.Is(err, errutil.ErrFileMissing):
		return "not_found"
	case errors.Is(err, errutil.ErrNotADirectory):
		return "not_a_directory"
	case errors.Is(err, errutil.ErrUnsupportedFileType):
		return "unsupported_file_type"
	case errors.Is(err, errutil.ErrExecutionTimeout):
		return "timeout"
	case errors.Is(err, errutil.ErrExecution):
		return "execution"
	case errors.Is(err, errutil.ErrIO):
		return "io"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
