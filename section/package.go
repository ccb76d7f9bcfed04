package section

import (
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/bytestream"
)

// PackageHeader is the header of one version 2+ sample-package.
type PackageHeader struct {
	// Elapsed is the package's elapsed time in milliseconds.
	Elapsed float64 // byte offset 4-11
	// SourceInputTime is only present in v3 source files that record it.
	SourceInputTime float64 // byte offset 12-19 when present
	// SampleID is the sample-package id.
	SampleID uint32 // byte offset 0-3
	// SampleCount is the number of samples per stream (source only, pipeline packages leave it 0).
	SampleCount uint16 // last 2 bytes of a source package header
}

// ReadPackageHeader reads a package header of the layout described by h.
//
// The caller must have checked that h.PackageHeaderSize() bytes are available.
//
// Parameters:
//   - c: Cursor positioned at the start of the package
//   - h: Header of the recording, selects the package layout
//
// Returns:
//   - PackageHeader: The decoded package header
//   - error: A short read error from the cursor
func ReadPackageHeader(c *bytestream.Cursor, h *Header) (PackageHeader, error) {
	var (
		p   PackageHeader
		err error
	)

	if p.SampleID, err = c.Uint32(); err != nil {
		return PackageHeader{}, err
	}
	if p.Elapsed, err = c.Float64(); err != nil {
		return PackageHeader{}, err
	}
	if h.Kind != format.KindSource {
		return p, nil
	}
	if h.IncludesSourceInputTime {
		if p.SourceInputTime, err = c.Float64(); err != nil {
			return PackageHeader{}, err
		}
	}
	if p.SampleCount, err = c.Uint16(); err != nil {
		return PackageHeader{}, err
	}

	return p, nil
}

// ChunkHeader is the header of one stream chunk inside a chunked pipeline package.
type ChunkHeader struct {
	// StreamCount is the number of consecutive streams the chunk covers.
	StreamCount uint16 // byte offset 0-1
	// SampleCount is the number of samples each of those streams logged.
	SampleCount uint16 // byte offset 2-3
}

// Values returns the number of f64 values following the chunk header.
func (ch ChunkHeader) Values() int64 {
	return int64(ch.StreamCount) * int64(ch.SampleCount)
}

// ReadChunkHeader reads a 4 byte chunk header.
func ReadChunkHeader(c *bytestream.Cursor) (ChunkHeader, error) {
	streams, err := c.Uint16()
	if err != nil {
		return ChunkHeader{}, err
	}
	samples, err := c.Uint16()
	if err != nil {
		return ChunkHeader{}, err
	}

	return ChunkHeader{StreamCount: streams, SampleCount: samples}, nil
}
