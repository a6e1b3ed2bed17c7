// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/tasktracker/lib/codec"
	"github.com/bureau-foundation/tasktracker/lib/sealed"
	"github.com/bureau-foundation/tasktracker/lib/secret"
)

const headerMagic = "tasktracker-snapshot/1"

var (
	// ErrEncrypted is returned by Decode for a sealed snapshot when no
	// identity was supplied.
	ErrEncrypted = errors.New("snapshot is encrypted")

	// ErrCorrupt is returned when the header is malformed or the
	// payload does not match its digest.
	ErrCorrupt = errors.New("snapshot is corrupt")
)

// Format names the payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch format := Format(name); format {
	case FormatJSON, FormatCBOR:
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or cbor)", name)
	}
}

// Options control Encode.
type Options struct {
	Format      Format
	Compression Compression

	// Recipients are age1... public keys. When set, the output is
	// sealed for them.
	Recipients []string

	// Armor selects ASCII-armored age output. Ignored without
	// Recipients.
	Armor bool
}

// Info describes an encoded snapshot.
type Info struct {
	Format      Format      `json:"format"`
	Compression Compression `json:"compression"`
	Size        int         `json:"size"`
	Digest      string      `json:"blake3"`
	Encrypted   bool        `json:"encrypted"`
}

// Encode serializes snapshot per options.
func Encode(snapshot Snapshot, options Options) ([]byte, Info, error) {
	if options.Format == "" {
		options.Format = FormatJSON
	}
	if options.Compression == "" {
		options.Compression = CompressionNone
	}

	var payload []byte
	var err error
	switch options.Format {
	case FormatJSON:
		payload, err = json.Marshal(snapshot)
	case FormatCBOR:
		payload, err = codec.Marshal(snapshot)
	default:
		err = fmt.Errorf("unsupported format %q", options.Format)
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	compressed, applied, err := compress(payload, options.Compression)
	if err != nil {
		return nil, Info{}, err
	}

	digest := blake3.Sum256(payload)
	info := Info{
		Format:      options.Format,
		Compression: applied,
		Size:        len(payload),
		Digest:      hex.EncodeToString(digest[:]),
	}

	var output bytes.Buffer
	fmt.Fprintf(&output, "%s format=%s compression=%s size=%d blake3=%s\n",
		headerMagic, info.Format, info.Compression, info.Size, info.Digest)
	output.Write(compressed)

	if len(options.Recipients) == 0 {
		return output.Bytes(), info, nil
	}
	sealedOutput, err := sealed.Encrypt(output.Bytes(), options.Recipients, options.Armor)
	if err != nil {
		return nil, Info{}, err
	}
	info.Encrypted = true
	return sealedOutput, info, nil
}

// DecodePayload opens data (decrypting with identity when sealed),
// verifies it, and returns the uncompressed payload in its encoded
// format.
func DecodePayload(data []byte, identity *secret.Buffer) ([]byte, Info, error) {
	encrypted := sealed.IsEncrypted(data)
	if encrypted {
		if identity == nil {
			return nil, Info{Encrypted: true}, ErrEncrypted
		}
		opened, err := sealed.Decrypt(data, identity)
		if err != nil {
			return nil, Info{Encrypted: true}, err
		}
		data = opened
	}

	headerLine, body, found := bytes.Cut(data, []byte("\n"))
	if !found {
		return nil, Info{}, fmt.Errorf("%w: missing header", ErrCorrupt)
	}
	info, err := parseHeader(string(headerLine))
	if err != nil {
		return nil, Info{}, err
	}
	info.Encrypted = encrypted

	payload, err := decompress(body, info.Compression, info.Size)
	if err != nil {
		return nil, info, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	digest := blake3.Sum256(payload)
	if hex.EncodeToString(digest[:]) != info.Digest {
		return nil, info, fmt.Errorf("%w: digest mismatch", ErrCorrupt)
	}
	return payload, info, nil
}

// Decode opens data and decodes the snapshot it holds.
func Decode(data []byte, identity *secret.Buffer) (Snapshot, Info, error) {
	payload, info, err := DecodePayload(data, identity)
	if err != nil {
		return Snapshot{}, info, err
	}

	var snapshot Snapshot
	switch info.Format {
	case FormatJSON:
		err = json.Unmarshal(payload, &snapshot)
	case FormatCBOR:
		err = codec.Unmarshal(payload, &snapshot)
	}
	if err != nil {
		return Snapshot{}, info, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if snapshot.Version != Version {
		return Snapshot{}, info, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	return snapshot, info, nil
}

func parseHeader(line string) (Info, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != headerMagic {
		return Info{}, fmt.Errorf("%w: not a tasktracker snapshot", ErrCorrupt)
	}

	var info Info
	seen := map[string]bool{}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Info{}, fmt.Errorf("%w: header field %q", ErrCorrupt, field)
		}
		seen[key] = true
		var err error
		switch key {
		case "format":
			info.Format, err = ParseFormat(value)
		case "compression":
			info.Compression, err = ParseCompression(value)
		case "size":
			info.Size, err = strconv.Atoi(value)
			if err == nil && info.Size < 0 {
				err = errors.New("negative size")
			}
		case "blake3":
			info.Digest = value
		}
		if err != nil {
			return Info{}, fmt.Errorf("%w: header %s: %v", ErrCorrupt, key, err)
		}
	}
	for _, required := range []string{"format", "compression", "size", "blake3"} {
		if !seen[required] {
			return Info{}, fmt.Errorf("%w: header missing %s", ErrCorrupt, required)
		}
	}
	return info, nil
}
