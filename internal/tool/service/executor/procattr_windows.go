//go:build windows

package executor

import (
	"os/exec"
)

// setProcessGroup falls back to killing the direct child; Windows has no
// POSIX process groups to signal.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}
