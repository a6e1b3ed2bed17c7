// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts snapshot exports with age x25519 keys so a
// copy of the tracker's data can be handed to someone (or stored
// somewhere) that should not read it without the matching identity.
//
// [Encrypt] wraps plaintext for one or more age1... recipients,
// optionally ASCII-armored. [Decrypt] accepts either form and needs an
// AGE-SECRET-KEY-1... identity held in a [secret.Buffer].
// [GenerateKeypair] backs the "export keygen" command.
package sealed
