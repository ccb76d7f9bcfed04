package section

import (
	"fmt"

	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/bytestream"
	"github.com/palmtree-bci/palmrec/internal/encoding"
)

// Header is the decoded preamble of a recording plus the values derived from it.
//
// The package counters TotalSamples and TotalPackages are zero after ParseHeader;
// the recording decoder fills them during its counting pass.
type Header struct {
	// RunStartEpoch is the epoch at which the run started (v2+ only).
	RunStartEpoch *int64
	// FileStartEpoch is the epoch at which this file was started (v2+ only).
	FileStartEpoch *int64

	// Code is the three character origin tag, read verbatim.
	Code string
	// ColumnNames are the tab separated names, kept as parsed.
	ColumnNames []string
	// Streams describes every logged stream in file order (v2+ only).
	Streams []StreamDescriptor
	// Diagnostics collects the non-fatal conditions found in the preamble.
	Diagnostics diag.List

	// SampleRate is the nominal sample rate in Hz.
	SampleRate float64

	// DataStart is the offset of the first row (v1) or sample-package (v2+).
	DataStart int64
	// FileSize is the byte length of the (decompressed) recording.
	FileSize int64
	// RowSize is the byte size of one fixed row (v1 only).
	RowSize int64
	// NumRows is the number of complete fixed rows (v1 only).
	NumRows int64
	// TotalSamples is the number of table rows the package stream needs (v2+).
	TotalSamples int64
	// TotalPackages is the number of complete sample-packages (v2+).
	TotalPackages int64
	// MaxSamplesPerPackage is the largest SamplesPerPackage over Streams (v2+).
	MaxSamplesPerPackage int

	Version format.Version
	// NumPlaybackStreams is 0 when the pipeline inputs were not logged.
	NumPlaybackStreams int32
	NumColumns         int32
	ColumnNamesSize    int32

	Kind format.FileKind
	// IncludesSourceInputTime is set for v3 source files whose packages carry the input time.
	IncludesSourceInputTime bool
}

// NumStreams returns the number of logged streams.
func (h *Header) NumStreams() int {
	return len(h.Streams)
}

// HeaderColumns returns the number of table columns that precede the stream values
// in a version 2+ table: sample id and elapsed, plus the source input time when present.
func (h *Header) HeaderColumns() int {
	if h.IncludesSourceInputTime {
		return 3
	}

	return 2
}

// PackageHeaderSize returns the byte size of one sample-package header.
//
// Returns:
//   - int64: 14 for source, 22 for source with input time, 12 for pipeline
//   - error: ErrUnsupportedFileKind for plugin data, which has no package layout
func (h *Header) PackageHeaderSize() (int64, error) {
	switch h.Kind {
	case format.KindSource:
		if h.IncludesSourceInputTime {
			return SourceInputTimePackageHeaderSize, nil
		}

		return SourcePackageHeaderSize, nil
	case format.KindPipeline:
		return PipelinePackageHeaderSize, nil
	default:
		return 0, fmt.Errorf("%w: %s recording (code %q)", errs.ErrUnsupportedFileKind, h.Kind, h.Code)
	}
}

// Chunked reports whether sample-packages are split into stream chunks.
// Only pipeline recordings with a stream logging more than one sample per package are.
func (h *Header) Chunked() bool {
	return h.Kind == format.KindPipeline && h.MaxSamplesPerPackage > 1
}

// ParseHeader decodes the preamble at the cursor's position.
//
// On success the cursor is left at DataStart. Column count mismatches and
// unusable v1 row sizes are recorded in Header.Diagnostics; every other problem
// is fatal and no header is returned.
//
// Parameters:
//   - c: Cursor positioned at the start of the recording
//
// Returns:
//   - *Header: The decoded header
//   - error: ErrUnsupportedVersion or ErrTruncatedHeader
func ParseHeader(c *bytestream.Cursor) (*Header, error) {
	h := &Header{FileSize: c.Size()}

	version, err := c.Int32()
	if err != nil {
		return nil, truncated("version", err)
	}
	h.Version = format.Version(version)
	if !h.Version.Supported() {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	code, err := c.Bytes(CodeSize)
	if err != nil {
		return nil, truncated("code", err)
	}
	h.Code = string(code)
	h.Kind = format.KindFromCode(h.Code)

	if h.Version.HasPackages() {
		if err := h.parseEpochs(c); err != nil {
			return nil, err
		}
	}

	if h.Version == format.Version3 && h.Kind == format.KindSource {
		flag, err := c.Uint8()
		if err != nil {
			return nil, truncated("includesSourceInputTime", err)
		}
		h.IncludesSourceInputTime = flag != 0
	}

	if h.SampleRate, err = c.Float64(); err != nil {
		return nil, truncated("sampleRate", err)
	}
	if h.NumPlaybackStreams, err = c.Int32(); err != nil {
		return nil, truncated("numPlaybackStreams", err)
	}

	if h.Version.HasPackages() {
		if err := h.parseStreams(c); err != nil {
			return nil, err
		}
	}

	if err := h.parseColumns(c); err != nil {
		return nil, err
	}

	h.DataStart = c.Offset()

	if h.Version == format.Version1 {
		h.deriveRows()
	}

	return h, nil
}

func (h *Header) parseEpochs(c *bytestream.Cursor) error {
	runStart, err := c.Int64()
	if err != nil {
		return truncated("runStartEpoch", err)
	}
	fileStart, err := c.Int64()
	if err != nil {
		return truncated("fileStartEpoch", err)
	}
	h.RunStartEpoch = &runStart
	h.FileStartEpoch = &fileStart

	return nil
}

func (h *Header) parseStreams(c *bytestream.Cursor) error {
	numStreams, err := c.Int32()
	if err != nil {
		return truncated("numStreams", err)
	}
	if numStreams < 0 {
		return fmt.Errorf("%w: negative stream count %d", errs.ErrTruncatedHeader, numStreams)
	}
	if !c.Fits(int64(numStreams) * StreamDescriptorSize) {
		return fmt.Errorf("%w: %d stream descriptors exceed the remaining %d bytes",
			errs.ErrTruncatedHeader, numStreams, c.Remaining())
	}

	h.Streams = make([]StreamDescriptor, numStreams)
	for i := range h.Streams {
		dataType, err := c.Uint8()
		if err != nil {
			return truncated("stream data type", err)
		}
		samples, err := c.Uint16()
		if err != nil {
			return truncated("stream samples per package", err)
		}
		h.Streams[i] = StreamDescriptor{DataType: dataType, SamplesPerPackage: samples}
	}
	h.MaxSamplesPerPackage = maxSamplesPerPackage(h.Streams)

	return nil
}

func (h *Header) parseColumns(c *bytestream.Cursor) error {
	var err error
	if h.NumColumns, err = c.Int32(); err != nil {
		return truncated("numColumns", err)
	}
	if h.ColumnNamesSize, err = c.Int32(); err != nil {
		return truncated("columnNamesSize", err)
	}
	if h.ColumnNamesSize < 0 {
		return fmt.Errorf("%w: negative column names size %d", errs.ErrTruncatedHeader, h.ColumnNamesSize)
	}

	blob, err := c.Bytes(int(h.ColumnNamesSize))
	if err != nil {
		return truncated("column names", err)
	}
	h.ColumnNames = encoding.DecodeColumnNames(blob)

	if len(h.ColumnNames) != int(h.NumColumns) {
		h.Diagnostics = append(h.Diagnostics, diag.New(diag.ColumnCountMismatch, -1,
			"header declares %d columns but the names blob holds %d", h.NumColumns, len(h.ColumnNames)))
	}

	return nil
}

// deriveRows computes the v1 fixed row layout.
func (h *Header) deriveRows() {
	h.RowSize = RowSizeV1(h.Kind, int64(h.NumColumns))
	if h.RowSize <= 0 {
		h.NumRows = 0
		h.Diagnostics = append(h.Diagnostics, diag.New(diag.InvalidRowSize, h.DataStart,
			"row size %d for %d columns, no rows can be read", h.RowSize, h.NumColumns))

		return
	}

	h.NumRows = max(h.FileSize-h.DataStart, 0) / h.RowSize
}

// truncated maps a short read of the named preamble field to ErrTruncatedHeader.
func truncated(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrTruncatedHeader, field, err)
}
