package script

import (
	"context"
	"os"
	"time"

	"github.com/Cyclone1070/confine/internal/tool/service/executor"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Root() string
}

// fileStatter checks that a script exists before anything is spawned.
type fileStatter interface {
	Stat(path string) (os.FileInfo, error)
}

// commandExecutor runs a command with a hard timeout.
type commandExecutor interface {
	RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}
