// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the algorithm used to compress an asset
// payload. The tag is stored per entry in the bundle so the runtime
// knows how to reverse it. These values are format constants —
// changing them breaks bundle compatibility.
type CompressionTag uint8

const (
	// CompressionNone indicates the payload is stored uncompressed.
	// Used when compression is disabled and as the fallback when a
	// payload does not shrink (PNG, WOFF2, and other already-packed
	// formats rarely do).
	CompressionNone CompressionTag = 0

	// CompressionZstd indicates zstd at its default level. The default
	// for web assets: HTML, JS, and CSS are text-heavy and compress
	// 3-5x, and decode speed keeps runtime startup cost negligible.
	CompressionZstd CompressionTag = 1

	// CompressionLZ4 indicates LZ4 block compression. Selectable for
	// builds that prioritize decompression speed over ratio.
	CompressionLZ4 CompressionTag = 2
)

// String returns the human-readable name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// ParseCompressionTag parses a compression tag from its string
// representation (the form used in glaze.conf.json).
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent use,
// which the parallel load pipeline relies on. The encoder pins
// single-threaded mode and a fixed window so output bytes depend only
// on input bytes, not core count.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
		zstd.WithSingleSegment(true),
	)
	if err != nil {
		panic("asset: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("asset: zstd decoder initialization failed: " + err.Error())
	}
}

// errIncompressible is returned when compressed output would not be
// smaller than the input. Callers fall back to CompressionNone.
var errIncompressible = errors.New("data is incompressible")

// IsIncompressible reports whether err indicates data that could not
// be compressed smaller than its original size.
func IsIncompressible(err error) bool {
	return errors.Is(err, errIncompressible)
}

// Compress compresses data with the given algorithm. For
// CompressionNone the input is returned unchanged (no copy). Returns
// errIncompressible when the output would not be smaller than the
// input.
func Compress(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}
		return compressed, nil

	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(data))
		destination := make([]byte, bound)
		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// CompressBlock returns 0 when it determines the data is
		// incompressible; also reject output that fails to shrink.
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return destination[:written], nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// CompressFallback compresses data with the given algorithm, degrading
// to stored-uncompressed when the data is incompressible or the codec
// fails. Compression is an optimization, not a correctness
// requirement, so it must never fail a build: the worst case is a
// larger bundle.
func CompressFallback(data []byte, tag CompressionTag) ([]byte, CompressionTag) {
	compressed, err := Compress(data, tag)
	if err != nil {
		return data, CompressionNone
	}
	return compressed, tag
}

// Decompress reverses Compress. The originalSize must match the
// pre-compression length exactly — this is verified and a mismatch is
// an error, since a wrong length means a corrupt entry.
func Decompress(compressed []byte, tag CompressionTag, originalSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(compressed) != originalSize {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match expected %d",
				len(compressed), originalSize)
		}
		return compressed, nil

	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, originalSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != originalSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), originalSize)
		}
		return result, nil

	case CompressionLZ4:
		destination := make([]byte, originalSize)
		read, err := lz4.UncompressBlock(compressed, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != originalSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, originalSize)
		}
		return destination, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}
