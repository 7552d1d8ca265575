package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Tools validation
	if c.Tools.ScriptTimeoutSeconds < 1 {
		errs = append(errs, "tools.script_timeout_seconds must be >= 1")
	}
	if strings.TrimSpace(c.Tools.ScriptInterpreter) == "" {
		errs = append(errs, "tools.script_interpreter must not be empty")
	}
	if len(c.Tools.ScriptExtension) < 2 || !strings.HasPrefix(c.Tools.ScriptExtension, ".") {
		errs = append(errs, `tools.script_extension must start with "." and name an extension`)
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}

	// Logging validation
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level %q is not a valid level", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
