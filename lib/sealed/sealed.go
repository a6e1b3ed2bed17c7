// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/bureau-foundation/tasktracker/lib/secret"
)

// Magic prefixes of the two age encodings.
const (
	binaryMagic  = "age-encryption.org/v1"
	armoredMagic = armor.Header
)

// Keypair is an age x25519 keypair. PrivateKey must be closed.
type Keypair struct {
	PrivateKey *secret.Buffer
	PublicKey  string
}

// Close releases the private key memory.
func (k *Keypair) Close() error {
	if k.PrivateKey == nil {
		return nil
	}
	return k.PrivateKey.Close()
}

// GenerateKeypair returns a fresh x25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age keypair: %w", err)
	}
	privateKey, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fmt.Errorf("protecting private key: %w", err)
	}
	return &Keypair{
		PrivateKey: privateKey,
		PublicKey:  identity.Recipient().String(),
	}, nil
}

// ParseRecipients validates age1... public keys.
func ParseRecipients(keys []string) ([]age.Recipient, error) {
	if len(keys) == 0 {
		return nil, errors.New("at least one recipient is required")
	}
	recipients := make([]age.Recipient, 0, len(keys))
	for _, key := range keys {
		recipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("parsing recipient %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}

// Encrypt seals plaintext for every key in recipientKeys. With armored
// set, the output is PEM-style text instead of binary.
func Encrypt(plaintext []byte, recipientKeys []string, armored bool) ([]byte, error) {
	recipients, err := ParseRecipients(recipientKeys)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	var destination io.Writer = &output
	var armorWriter io.WriteCloser
	if armored {
		armorWriter = armor.NewWriter(&output)
		destination = armorWriter
	}

	writer, err := age.Encrypt(destination, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if armorWriter != nil {
		if err := armorWriter.Close(); err != nil {
			return nil, fmt.Errorf("finalizing armor: %w", err)
		}
	}
	return output.Bytes(), nil
}

// IsEncrypted reports whether data starts like an age file in either
// encoding.
func IsEncrypted(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte(binaryMagic)) ||
		bytes.HasPrefix(trimmed, []byte(armoredMagic))
}

// Decrypt opens ciphertext with the identity in privateKey. The key is
// borrowed, not closed.
func Decrypt(ciphertext []byte, privateKey *secret.Buffer) ([]byte, error) {
	identities, err := age.ParseIdentities(strings.NewReader(privateKey.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing identity: %w", err)
	}

	var source io.Reader = bytes.NewReader(ciphertext)
	if bytes.HasPrefix(bytes.TrimLeft(ciphertext, " \t\r\n"), []byte(armoredMagic)) {
		source = armor.NewReader(bufio.NewReader(source))
	}

	reader, err := age.Decrypt(source, identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}
	return plaintext, nil
}
