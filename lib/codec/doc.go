// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the tracker's CBOR configuration, used for
// binary snapshot exports.
//
// Encoding follows Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same snapshot therefore always produces the same bytes, which keeps
// exports diffable by hash.
//
// Types that implement encoding.TextMarshaler (schema.Status) travel as
// CBOR text strings, so a CBOR export names statuses the same way the
// JSON export does. Struct fields use their `json` tags; fxamacker/cbor
// falls back to them when no `cbor` tag is present.
package codec
