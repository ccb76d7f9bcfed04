package recording

import (
	"fmt"

	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/bytestream"
	"github.com/palmtree-bci/palmrec/section"
)

// chunkLayout is one verified stream chunk of a chunked package.
type chunkLayout struct {
	header section.ChunkHeader
	// valuesOff is the offset of the chunk's first value.
	valuesOff int64
	// streamOffset is the index of the chunk's first stream.
	streamOffset int
}

// packageLayout is a package whose every byte has been verified to lie within
// the source. Visitors only ever see complete layouts.
type packageLayout struct {
	// chunks is set for chunked packages, in file order.
	chunks []chunkLayout
	header section.PackageHeader
	// offset is the offset of the package header.
	offset int64
	// valuesOff and values describe the value run of a flat package.
	valuesOff int64
	values    int64
	// rows is the number of table rows the package occupies.
	rows int
}

func (l *packageLayout) reset(offset int64, header section.PackageHeader) {
	l.offset = offset
	l.header = header
	l.chunks = l.chunks[:0]
	l.valuesOff = 0
	l.values = 0
	l.rows = 0
}

// visitor receives every verified package of a scan, in file order.
type visitor interface {
	visit(l *packageLayout) error
}

// scan walks the sample-packages of a version 2+ recording and hands each
// complete package to v.
//
// A package is verified in full, every chunk header and every value byte,
// before v sees it, so a package that cannot be completed is never visited.
// Both decoding passes run through this function, which keeps the row count
// of the counting pass equal to the rows written by the filling pass.
//
// Parameters:
//   - c: Cursor over the recording
//   - h: Parsed header
//   - v: Visitor called once per complete package
//
// Returns:
//   - *diag.Diagnostic: The condition that stopped the scan early, nil if the data ended
//     exactly on a package boundary
//   - error: ErrUnsupportedFileKind for plugin data, or an error returned by v
func scan(c *bytestream.Cursor, h *section.Header, v visitor) (*diag.Diagnostic, error) {
	headerSize, err := h.PackageHeaderSize()
	if err != nil {
		return nil, err
	}
	if err := c.Seek(h.DataStart); err != nil {
		return nil, err
	}

	var layout packageLayout
	for c.Fits(headerSize) {
		offset := c.Offset()

		ph, err := section.ReadPackageHeader(c, h)
		if err != nil {
			return nil, err
		}
		layout.reset(offset, ph)

		var stop *diag.Diagnostic
		if h.Chunked() {
			stop = layoutChunked(c, h, &layout)
		} else {
			stop = layoutFlat(c, h, &layout)
		}
		if stop != nil {
			return stop, nil
		}

		if err := v.visit(&layout); err != nil {
			return nil, err
		}
	}

	if rest := c.Remaining(); rest > 0 {
		d := diag.New(diag.TruncatedPackage, c.Offset(),
			"data ends with %d bytes, less than a %d byte package header", rest, headerSize)

		return &d, nil
	}

	return nil, nil
}

// layoutFlat verifies a source package, or a pipeline package in which every
// stream logs a single sample.
func layoutFlat(c *bytestream.Cursor, h *section.Header, l *packageLayout) *diag.Diagnostic {
	samples := 1
	if h.Kind == format.KindSource {
		samples = int(l.header.SampleCount)
	}

	values := int64(h.NumStreams()) * int64(samples)
	if !c.Fits(values * section.ValueSize) {
		d := diag.New(diag.TruncatedPackage, l.offset,
			"package %d needs %d value bytes but only %d remain, discarding it",
			l.header.SampleID, values*section.ValueSize, c.Remaining())

		return &d
	}

	l.valuesOff = c.Offset()
	l.values = values
	l.rows = samples
	_ = c.Skip(values * section.ValueSize)

	return nil
}

// layoutChunked verifies the stream chunks of a pipeline package. The package
// reserves MaxSamplesPerPackage rows whatever its chunks hold.
func layoutChunked(c *bytestream.Cursor, h *section.Header, l *packageLayout) *diag.Diagnostic {
	numStreams := h.NumStreams()
	maxSamples := h.MaxSamplesPerPackage

	malformed := func(offset int64, msgFormat string, args ...any) *diag.Diagnostic {
		msg := fmt.Sprintf(msgFormat, args...)
		d := diag.New(diag.MalformedPackage, offset, "package %d: %s, discarding it", l.header.SampleID, msg)

		return &d
	}

	streamIndex := 0
	for streamIndex < numStreams {
		if !c.Fits(section.ChunkHeaderSize) {
			return malformed(l.offset, "data ends after %d of %d streams", streamIndex, numStreams)
		}

		chunkOff := c.Offset()
		ch, err := section.ReadChunkHeader(c)
		if err != nil {
			return malformed(chunkOff, "%v", err)
		}

		// A chunk that covers no streams holds no values and is skipped over.
		switch {
		case streamIndex+int(ch.StreamCount) > numStreams:
			return malformed(chunkOff, "chunk covers streams %d-%d of %d",
				streamIndex, streamIndex+int(ch.StreamCount)-1, numStreams)
		case ch.StreamCount > 0 && int(ch.SampleCount) > maxSamples:
			return malformed(chunkOff, "chunk holds %d samples, at most %d per package",
				ch.SampleCount, maxSamples)
		}

		size := ch.Values() * section.ValueSize
		if !c.Fits(size) {
			d := diag.New(diag.TruncatedChunk, chunkOff,
				"package %d: chunk needs %d value bytes but only %d remain, discarding the package",
				l.header.SampleID, size, c.Remaining())

			return &d
		}

		l.chunks = append(l.chunks, chunkLayout{
			header:       ch,
			valuesOff:    c.Offset(),
			streamOffset: streamIndex,
		})
		_ = c.Skip(size)
		streamIndex += int(ch.StreamCount)
	}

	l.rows = maxSamples

	return nil
}
