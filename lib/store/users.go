// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"log/slog"

	"github.com/bureau-foundation/tasktracker/lib/credential"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// UserStore reads user records. The users file is maintained outside
// the tracker; nothing here writes it.
type UserStore struct {
	path   string
	logger *slog.Logger
}

// NewUserStore returns a store backed by the file at path. The file is
// not opened until the first lookup. A nil logger discards output.
func NewUserStore(path string, logger *slog.Logger) *UserStore {
	return &UserStore{path: path, logger: orDiscard(logger)}
}

// Path returns the backing file.
func (s *UserStore) Path() string { return s.path }

// All returns every well-formed user in file order.
func (s *UserStore) All() ([]schema.User, error) {
	var users []schema.User
	err := s.scan(func(user schema.User) bool {
		users = append(users, user)
		return true
	})
	return users, err
}

// FindByCode returns the first user with the given code. The boolean
// is false when no such user exists, which is not an error.
func (s *UserStore) FindByCode(code int) (schema.User, bool, error) {
	return s.find(func(user schema.User) bool { return user.Code == code })
}

// FindByEmailAndPassword returns the first user whose email matches
// exactly and whose password column accepts password (see
// [credential.Verify]).
func (s *UserStore) FindByEmailAndPassword(email, password string) (schema.User, bool, error) {
	return s.find(func(user schema.User) bool {
		return user.Email == email && credential.Verify(user.Password, password)
	})
}

func (s *UserStore) find(match func(schema.User) bool) (schema.User, bool, error) {
	var found schema.User
	var ok bool
	err := s.scan(func(user schema.User) bool {
		if match(user) {
			found, ok = user, true
			return false
		}
		return true
	})
	if err != nil {
		return schema.User{}, false, err
	}
	return found, ok, nil
}

// scan calls yield for each well-formed user until yield returns false.
func (s *UserStore) scan(yield func(schema.User) bool) error {
	records, err := readRows(s.logger, "read users", s.path, false)
	if err != nil {
		return err
	}
	for _, record := range records {
		user, err := parseUser(record.Fields)
		if err != nil {
			skipRow(s.logger, s.path, record, err)
			continue
		}
		if !yield(user) {
			return nil
		}
	}
	return nil
}
