// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot produces and reads point-in-time exports of the
// tracker's three files.
//
// A snapshot holds users (without their password column), tasks, and
// audit entries. On disk it is a one-line text header followed by the
// payload:
//
//	tasktracker-snapshot/1 format=cbor compression=zstd size=5120 blake3=9f2c…
//	<payload bytes>
//
// format is json or cbor (deterministic, see lib/codec). compression
// is none, zstd, or lz4 (block mode; size is the uncompressed length
// needed to decode it). blake3 is the digest of the uncompressed
// payload and is checked on read.
//
// The whole file may additionally be sealed with age (lib/sealed), in
// which case [Decode] needs the identity to open it.
package snapshot
