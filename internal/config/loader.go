package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// The user config lives at ~/.config/<ConfigDir>/<ConfigFile>.
const (
	ConfigDir  = "confine"
	ConfigFile = "config.json"
)

// FileSystem is what the loader needs from the host: a home directory and file reads.
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

type osConfigSource struct{}

func (osConfigSource) UserHomeDir() (string, error) { return os.UserHomeDir() }

func (osConfigSource) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Loader reads a JSONC config file over DefaultConfig.
type Loader struct {
	fs FileSystem
}

// NewLoader returns a Loader backed by the host filesystem.
func NewLoader() *Loader {
	return &Loader{fs: osConfigSource{}}
}

// NewLoaderWithFS returns a Loader reading through fs.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads the user config. Without a home directory or a config file the
// defaults are returned as they are.
func (l *Loader) Load() (*Config, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFrom(filepath.Join(home, ".config", ConfigDir, ConfigFile))
}

// LoadFrom reads the config at configPath. Keys present in the file replace
// the default, zero values included; absent keys keep it. Comments and
// trailing commas are allowed. A missing file yields the defaults; unreadable,
// malformed or invalid files are errors.
func (l *Loader) LoadFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := l.fs.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
