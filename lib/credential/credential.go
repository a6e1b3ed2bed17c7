// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptPrefixes are the version identifiers bcrypt hashes start with.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

// Verify reports whether given matches the stored password column.
// Hashed values are checked with bcrypt; anything else must match
// exactly. An empty given password never matches.
func Verify(stored, given string) bool {
	if given == "" {
		return false
	}
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// Hash returns a bcrypt hash of password at the default cost, suitable
// for the password column of the users file.
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}
