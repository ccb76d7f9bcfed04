package compress

// ZstdCompressor handles Zstandard frames, the usual format for archived recordings.
//
// The default build uses the pure Go klauspost/compress implementation with
// pooled encoders and decoders. Building with the gozstd tag (and cgo) switches
// to the libzstd bindings of valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
