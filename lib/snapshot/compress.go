// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression names the payload compression.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ParseCompression validates a compression name.
func ParseCompression(name string) (Compression, error) {
	switch compression := Compression(name); compression {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return compression, nil
	default:
		return "", fmt.Errorf("unknown compression %q (want none, zstd, or lz4)", name)
	}
}

// zstd encoders and decoders are safe for concurrent use; one of each
// serves the process.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns the compressed payload and the compression actually
// applied. Input lz4 cannot shrink is stored uncompressed.
func compress(data []byte, compression Compression) ([]byte, Compression, error) {
	switch compression {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), CompressionZstd, nil
	case CompressionLZ4:
		destination := make([]byte, lz4.CompressBlockBound(len(data)))
		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, "", fmt.Errorf("lz4 compress: %w", err)
		}
		if written == 0 || written >= len(data) {
			return data, CompressionNone, nil
		}
		return destination[:written], CompressionLZ4, nil
	default:
		return nil, "", fmt.Errorf("unsupported compression %q", compression)
	}
}

func decompress(data []byte, compression Compression, size int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(data) != size {
			return nil, fmt.Errorf("payload is %d bytes, header says %d", len(data), size)
		}
		return data, nil
	case CompressionZstd:
		output, err := zstdDecoder.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(output) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, header says %d", len(output), size)
		}
		return output, nil
	case CompressionLZ4:
		output := make([]byte, size)
		read, err := lz4.UncompressBlock(data, output)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != size {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, header says %d", read, size)
		}
		return output, nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}
}
