// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/hex"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// codecZstdV1 is the version tag prefixed to every compressed payload.
const codecZstdV1 byte = 0x01

// Codec compresses payloads above a size threshold. Compressed payloads start
// with a one-byte version tag so future formats can be told apart.
type Codec struct {
	threshold int
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder

	// compress is swapped in tests to simulate encoder failures.
	compress func(src []byte) ([]byte, error)
}

// NewCodec builds a codec that compresses payloads of at least threshold
// bytes. A threshold of zero or less disables automatic compression.
func NewCodec(threshold int) (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("error creating zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating zstd decoder: %w", err)
	}

	c := &Codec{
		threshold: threshold,
		encoder:   encoder,
		decoder:   decoder,
	}
	c.compress = c.zstdCompress

	return c, nil
}

func (c *Codec) zstdCompress(src []byte) ([]byte, error) {
	dst := make([]byte, 1, len(src)/2+1)
	dst[0] = codecZstdV1
	return c.encoder.EncodeAll(src, dst), nil
}

// Threshold returns the automatic compression threshold in bytes.
func (c *Codec) Threshold() int {
	return c.threshold
}

// Encode returns the bytes to store for raw and whether they are compressed.
// If compression fails or does not shrink the payload, raw is stored as is.
func (c *Codec) Encode(raw []byte) ([]byte, bool) {
	if c.threshold <= 0 || len(raw) < c.threshold {
		return raw, false
	}
	return c.Compress(raw)
}

// Compress compresses raw regardless of the threshold, falling back to raw
// when the encoder fails or the output is not smaller.
func (c *Codec) Compress(raw []byte) ([]byte, bool) {
	out, err := c.compress(raw)
	if err != nil || len(out) >= len(raw) {
		return raw, false
	}
	return out, true
}

// Decode reverses [Codec.Encode].
func (c *Codec) Decode(data []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return data, nil
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty compressed payload", ErrUnsupportedCodecVersion)
	}

	switch data[0] {
	case codecZstdV1:
		raw, err := c.decoder.DecodeAll(data[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("error decompressing payload: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedCodecVersion, data[0])
	}
}

// Close releases encoder resources.
func (c *Codec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}

// PayloadHash returns the hex blake2b-256 digest of an uncompressed payload.
func PayloadHash(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
