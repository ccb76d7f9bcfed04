// Package hash derives stable identifiers for column names.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum64 computes the xxHash64 of raw bytes.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest is a streaming xxHash64 accumulator.
type Digest = xxhash.Digest

// NewDigest creates a streaming xxHash64 accumulator.
func NewDigest() *Digest {
	return xxhash.New()
}
