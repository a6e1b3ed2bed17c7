// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/tasktracker/lib/config"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/secret"
)

// EnvSessionFile overrides the session file location.
const EnvSessionFile = "TASKTRACKER_SESSION_FILE"

// ErrNoSession is returned by [LoadSessionFrom] when no session file
// exists.
var ErrNoSession = errors.New("not logged in")

// Session records who logged in on this machine. It holds no password:
// Fingerprint binds the session to the user row as it was at login.
type Session struct {
	UserCode    int    `json:"user_code"`
	Fingerprint string `json:"fingerprint"`
	LoggedInAt  string `json:"logged_in_at"`
}

// NewSession creates a session for user.
func NewSession(user schema.User, now time.Time) *Session {
	return &Session{
		UserCode:    user.Code,
		Fingerprint: Fingerprint(user),
		LoggedInAt:  now.UTC().Format(time.RFC3339),
	}
}

// Fingerprint is a BLAKE3 digest over the user's code, email, and
// stored password column. Any change to those invalidates sessions.
func Fingerprint(user schema.User) string {
	hasher := blake3.New()
	hasher.Write([]byte(strconv.Itoa(user.Code)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(user.Email))
	hasher.Write([]byte{0})
	hasher.Write([]byte(user.Password))
	return hex.EncodeToString(hasher.Sum(nil)[:16])
}

// Matches reports whether the session was issued for user as the user
// row currently stands.
func (s *Session) Matches(user schema.User) bool {
	if s.UserCode != user.Code {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.Fingerprint), []byte(Fingerprint(user))) == 1
}

// SessionFilePath returns the session file location: the
// TASKTRACKER_SESSION_FILE environment variable, then session_file
// from cfg, then $XDG_CONFIG_HOME/tasktracker/session.json, then
// ~/.config/tasktracker/session.json.
func SessionFilePath(cfg *config.Config) string {
	if envPath := os.Getenv(EnvSessionFile); envPath != "" {
		return envPath
	}
	if cfg != nil && cfg.SessionFile != "" {
		return cfg.SessionFile
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "tasktracker-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "tasktracker", "session.json")
}

// LoadSessionFrom reads a session from path. A missing file is
// [ErrNoSession].
func LoadSessionFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var session Session
	err = json.Unmarshal(data, &session)
	secret.Zero(data)
	if err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if session.Fingerprint == "" {
		return nil, fmt.Errorf("session file %s has no fingerprint", path)
	}
	return &session, nil
}

// SaveSessionTo writes session to path with mode 0600, creating the
// parent directory with mode 0700.
func SaveSessionTo(session *Session, path string) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// RemoveSessionFile deletes the session at path, reporting whether
// one existed.
func RemoveSessionFile(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("removing session file %s: %w", path, err)
	}
}
