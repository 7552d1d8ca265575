package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Workspace WorkspaceConfig `json:"workspace"`
	Tools     ToolsConfig     `json:"tools"`
	Logging   LoggingConfig   `json:"logging"`
}

type WorkspaceConfig struct {
	// Root is the directory every operation is confined to.
	// Empty means the process working directory.
	Root string `json:"root"` // Default: ""
}

type ToolsConfig struct {
	// Script Execution
	ScriptTimeoutSeconds int    `json:"script_timeout_seconds"` // Default: 30
	ScriptInterpreter    string `json:"script_interpreter"`     // Default: "python3"
	ScriptExtension      string `json:"script_extension"`       // Default: ".py"

	// Command Output
	MaxCommandOutputSize int64 `json:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
}

type LoggingConfig struct {
	Level       string `json:"level"`       // Default: "info"
	Development bool   `json:"development"` // Default: false
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			ScriptTimeoutSeconds: 30,
			ScriptInterpreter:    "python3",
			ScriptExtension:      ".py",
			MaxCommandOutputSize: 10 * 1024 * 1024,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
