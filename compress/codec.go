package compress

import (
	"bytes"
	"fmt"

	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/format"
)

// Compressor compresses a complete recording.
type Compressor interface {
	// Compress returns a newly allocated compressed copy of data.
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates a complete compressed recording.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes of data. It returns an error if data is
	// corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Magic prefixes of the supported container formats.
var (
	zstdMagic   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic    = []byte{0x04, 0x22, 0x4D, 0x18}
	gzipMagic   = []byte{0x1F, 0x8B}
	s2Magic     = []byte{0xFF, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	snappyMagic = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// DetectSize is the number of leading bytes Detect needs to recognise every format.
const DetectSize = 10

// Detect identifies the container format of a recording from its leading bytes.
//
// Detection is by content only. Uncompressed recordings start with a small
// little-endian version number and never match one of the magic prefixes.
//
// Parameters:
//   - prefix: The first DetectSize bytes of the source (fewer if the source is shorter)
//
// Returns:
//   - format.CompressionType: The detected format, CompressionNone when nothing matches
func Detect(prefix []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(prefix, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(prefix, s2Magic), bytes.HasPrefix(prefix, snappyMagic):
		return format.CompressionS2
	case bytes.HasPrefix(prefix, gzipMagic):
		return format.CompressionGzip
	default:
		return format.CompressionNone
	}
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Gzip)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid compression: %s", errs.ErrDecompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionGzip: NewGzipCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type: %s", errs.ErrDecompression, compressionType)
}

// Inflate detects the container format of data and decompresses it.
//
// Uncompressed data is returned as-is.
//
// Returns:
//   - []byte: The decompressed recording
//   - format.CompressionType: The detected format
//   - error: ErrDecompression wrapping the codec error
func Inflate(data []byte) ([]byte, format.CompressionType, error) {
	ct := Detect(data[:min(len(data), DetectSize)])
	if ct == format.CompressionNone {
		return data, ct, nil
	}

	codec, err := GetCodec(ct)
	if err != nil {
		return nil, ct, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, ct, fmt.Errorf("%w: %s: %w", errs.ErrDecompression, ct, err)
	}

	return out, ct, nil
}
