// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tasktracker/lib/clock"
	"github.com/bureau-foundation/tasktracker/lib/config"
	"github.com/bureau-foundation/tasktracker/lib/lifecycle"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/store"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

// loginHint is attached to every "who are you" failure.
const loginHint = "Run 'tasktracker login --email <address>' first."

// DataFlags selects the configuration and data directory. Embed it in
// the params of every command that reads or writes tracker files.
type DataFlags struct {
	ConfigPath string
	DataDir    string
}

// AddFlags implements [FlagBinder].
func (f *DataFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.ConfigPath, "config", "", "configuration file (default: $"+config.EnvConfigPath+", else built-in defaults)")
	flagSet.StringVar(&f.DataDir, "data-dir", "", "directory holding the users, tasks, and log files (overrides data_dir)")
}

// Environment is the wired tracker: configuration, stores, and the
// lifecycle service on top of them.
type Environment struct {
	Config  *config.Config
	Users   *store.UserStore
	Tasks   *store.TaskStore
	Log     *store.LogStore
	Service *lifecycle.Service
	Clock   clock.Clock
	Logger  *slog.Logger
}

// Open loads configuration and wires the stores. It also applies the
// configured log level to every command logger.
func (f *DataFlags) Open(logger *slog.Logger) (*Environment, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, Validation("%w", err)
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, Validation("%w", err)
	}
	SetLogLevel(level)

	env := &Environment{
		Config: cfg,
		Clock:  clock.Real(),
		Logger: logger,
	}
	env.Users = store.NewUserStore(cfg.UsersPath(), logger)
	env.Tasks = store.NewTaskStore(cfg.TasksPath(), env.Users, logger)
	env.Log = store.NewLogStore(cfg.LogPath(), logger)
	env.Service, err = lifecycle.New(lifecycle.Config{
		Users:  env.Users,
		Tasks:  env.Tasks,
		Log:    env.Log,
		Clock:  env.Clock,
		Logger: logger,
	})
	if err != nil {
		return nil, Internal("%w", err)
	}

	logger.Debug("environment opened",
		"users", cfg.UsersPath(),
		"tasks", cfg.TasksPath(),
		"log", cfg.LogPath(),
	)
	return env, nil
}

// SessionPath returns where this environment's login session lives.
func (env *Environment) SessionPath() string {
	return SessionFilePath(env.Config)
}

// CurrentUser returns the logged-in user. The saved session must still
// match the user's row in the users file.
func (env *Environment) CurrentUser() (schema.User, error) {
	session, err := LoadSessionFrom(env.SessionPath())
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return schema.User{}, Forbidden("not logged in").WithHint(loginHint)
		}
		return schema.User{}, Internal("%w", err)
	}

	user, err := env.Service.FindUser(session.UserCode)
	if err != nil {
		if errors.Is(err, lifecycle.ErrReference) {
			return schema.User{}, Forbidden("logged-in user %d no longer exists", session.UserCode).WithHint(loginHint)
		}
		return schema.User{}, Classify(err)
	}
	if !session.Matches(user) {
		return schema.User{}, Forbidden("session for %s is no longer valid", user.Email).WithHint(loginHint)
	}
	return user, nil
}

// Styles returns terminal styles for output honoring display.color.
func (env *Environment) Styles(output io.Writer) (tui.Styles, error) {
	renderer, err := tui.NewRenderer(output, env.Config.Display.Color)
	if err != nil {
		return tui.Styles{}, Validation("display.color: %w", err)
	}
	return tui.NewStyles(renderer, tui.DefaultTheme), nil
}
