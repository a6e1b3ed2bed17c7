// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted by [Load]
// when no explicit path is given.
const EnvConfigPath = "TASKTRACKER_CONFIG"

// Color modes for [DisplayConfig].Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the master configuration for the task tracker.
type Config struct {
	// DataDir is the directory holding the store files.
	DataDir string `yaml:"data_dir"`

	// Files names the three store files. Relative names resolve
	// under DataDir.
	Files FilesConfig `yaml:"files"`

	// Tasks configures task input limits.
	Tasks TasksConfig `yaml:"tasks"`

	// SessionFile is where "tasktracker login" saves the session.
	// Empty means the default location (see cli.SessionFilePath).
	SessionFile string `yaml:"session_file"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`

	// Display configures terminal output.
	Display DisplayConfig `yaml:"display"`
}

// FilesConfig names the delimited store files.
type FilesConfig struct {
	// Users is the read-only users file: code,name,email,password.
	Users string `yaml:"users"`

	// Tasks is the tasks file: code,name,status,assignedUserCode.
	Tasks string `yaml:"tasks"`

	// Log is the append-only audit file: taskCode,status,actorUserCode,date.
	Log string `yaml:"log"`
}

// TasksConfig configures task input limits enforced by the
// interactive and command-line surfaces.
type TasksConfig struct {
	// MaxNameLength is the maximum task name length in characters.
	// Default: 10
	MaxNameLength int `yaml:"max_name_length"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// DisplayConfig configures terminal rendering.
type DisplayConfig struct {
	// Color is auto (color when stdout is a terminal), always, or never.
	// Default: auto
	Color string `yaml:"color"`
}

// Default returns the built-in configuration. DataDir follows the XDG
// base directory convention.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Files: FilesConfig{
			Users: "users.csv",
			Tasks: "tasks.csv",
			Log:   "logs.csv",
		},
		Tasks: TasksConfig{
			MaxNameLength: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			Color: ColorAuto,
		},
	}
}

func defaultDataDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "tasktracker")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tasktracker-data")
	}
	return filepath.Join(homeDir, ".local", "share", "tasktracker")
}

// Load loads configuration from path, or from the file named by
// TASKTRACKER_CONFIG when path is empty. With neither available the
// defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes a single configuration file into c. JSON is a
// subset of YAML once comments and trailing commas are gone, so both
// formats go through the YAML decoder.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	return yaml.Unmarshal(data, c)
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.DataDir = expandVars(c.DataDir, vars)
	vars["TASKTRACKER_DATA"] = c.DataDir

	c.Files.Users = expandVars(c.Files.Users, vars)
	c.Files.Tasks = expandVars(c.Files.Tasks, vars)
	c.Files.Log = expandVars(c.Files.Log, vars)
	c.SessionFile = expandVars(c.SessionFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// UsersPath returns the resolved path of the users file.
func (c *Config) UsersPath() string { return c.resolve(c.Files.Users) }

// TasksPath returns the resolved path of the tasks file.
func (c *Config) TasksPath() string { return c.resolve(c.Files.Tasks) }

// LogPath returns the resolved path of the audit log file.
func (c *Config) LogPath() string { return c.resolve(c.Files.Log) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.DataDir, name)
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if strings.TrimSpace(c.Files.Users) == "" {
		errs = append(errs, errors.New("files.users is required"))
	}
	if strings.TrimSpace(c.Files.Tasks) == "" {
		errs = append(errs, errors.New("files.tasks is required"))
	}
	if strings.TrimSpace(c.Files.Log) == "" {
		errs = append(errs, errors.New("files.log is required"))
	}
	if c.Tasks.MaxNameLength <= 0 {
		errs = append(errs, fmt.Errorf("tasks.max_name_length must be positive, got %d", c.Tasks.MaxNameLength))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("display.color must be auto, always, or never, got %q", c.Display.Color))
	}

	return errors.Join(errs...)
}
