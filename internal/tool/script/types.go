package script

import (
	"fmt"
	"strings"
)

// NoOutput is reported when a script writes nothing but whitespace to either stream.
const NoOutput = "No output produced."

// RunScriptRequest names the script to execute.
type RunScriptRequest struct {
	FilePath string `mapstructure:"file_path"`
}

// RunScriptResponse is the outcome of a script that ran to completion.
type RunScriptResponse struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// String renders both streams and, for a non-zero exit, the exit code.
// Blank output wins over the exit code.
func (r *RunScriptResponse) String() string {
	if strings.TrimSpace(r.Stdout) == "" && strings.TrimSpace(r.Stderr) == "" {
		return NoOutput
	}

	var b strings.Builder
	b.WriteString("STDOUT:")
	b.WriteString(r.Stdout)
	b.WriteString("\nSTDERR:")
	b.WriteString(r.Stderr)
	if r.ExitCode != 0 {
		fmt.Fprintf(&b, "\nProcess exited with code %d", r.ExitCode)
	}
	return b.String()
}
