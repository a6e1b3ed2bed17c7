// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package csvfile implements the file-level primitives behind the
// tracker's flat-file stores: comma-separated text with a header row
// followed by one record per line.
//
// Three operations cover every store access pattern:
//
//   - [ReadRecords] reads the header and all records. Records are
//     returned with whatever field count they have; deciding whether a
//     record is well-formed is the caller's schema concern.
//   - [Append] adds one record, creating the file (with header) when
//     it does not exist yet.
//   - [Rewrite] replaces the whole file. The new content is written to
//     a temporary file in the same directory, synced, and renamed over
//     the target, so a failure at any point leaves the previous
//     content intact.
//
// Fields are quoted as needed on write, so values containing commas,
// quotes, or newlines survive a round trip.
package csvfile
