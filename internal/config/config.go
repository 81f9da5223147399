// Package config handles loading, validation, and access to the daemon
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/PiranhaCodes/forkpty"
)

// Config holds the daemon configuration.
type Config struct {
	Socket string `yaml:"socket,omitempty"` // control socket path
	Ptmx   string `yaml:"ptmx,omitempty"`   // PTY multiplexer device

	Terminal struct {
		DefaultShell string `yaml:"default_shell,omitempty"` // optional: force a specific shell
	} `yaml:"terminal,omitempty"`

	Dirs struct {
		Sessions string `yaml:"sessions,omitempty"` // per-session FIFO pipes
		Log      string `yaml:"log,omitempty"`      // per-session output logs
	} `yaml:"dirs,omitempty"`
}

const (
	defaultSocket      = "~/.forkptyd/pty.sock"
	defaultSessionsDir = "~/.forkptyd/sessions"
	defaultLogDir      = "~/.forkptyd/log"
)

// Load reads the YAML configuration at path. A missing file is not an error;
// it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config from %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config from %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Socket == "" {
		cfg.Socket = defaultSocket
	}
	if cfg.Ptmx == "" {
		cfg.Ptmx = forkpty.DefaultPtmxPath
	}
	if cfg.Dirs.Sessions == "" {
		cfg.Dirs.Sessions = defaultSessionsDir
	}
	if cfg.Dirs.Log == "" {
		cfg.Dirs.Log = defaultLogDir
	}
}

// ExpandPath expands the tilde (~) character to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == '/' || path[1] == '\\' {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	return path, nil
}
