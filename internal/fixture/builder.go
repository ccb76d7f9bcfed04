// Package fixture builds synthetic Palmtree recordings for tests.
//
// It is the only place that writes the format and is imported from _test.go
// files only.
//
//	b := fixture.New(format.Version2, "dat")
//	b.SampleRate = 1000
//	b.Streams = fixture.UniformStreams(2, 1)
//	b.ColumnNames = []string{"id", "elapsed", "ch1", "ch2"}
//	b.PipelinePackage(1, 10, 0.5, 0.6)
//	data := b.Bytes()
package fixture

import (
	"github.com/palmtree-bci/palmrec/endian"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/encoding"
)

// Stream is a stream descriptor entry of the preamble.
type Stream struct {
	DataType          uint8
	SamplesPerPackage uint16
}

// UniformStreams returns n streams that each log samplesPerPackage samples.
func UniformStreams(n int, samplesPerPackage uint16) []Stream {
	streams := make([]Stream, n)
	for i := range streams {
		streams[i] = Stream{DataType: 1, SamplesPerPackage: samplesPerPackage}
	}

	return streams
}

// Chunk is one stream chunk of a chunked pipeline package.
type Chunk struct {
	Values      []float64
	StreamCount uint16
	SampleCount uint16
}

// NewChunk builds a chunk from rows[sample][stream]. Every row must have the same length.
func NewChunk(rows ...[]float64) Chunk {
	c := Chunk{SampleCount: uint16(len(rows))} //nolint: gosec
	if len(rows) > 0 {
		c.StreamCount = uint16(len(rows[0])) //nolint: gosec
	}
	for _, row := range rows {
		c.Values = append(c.Values, row...)
	}

	return c
}

// Builder assembles a recording: preamble fields, then a body of rows or packages.
type Builder struct {
	engine endian.EndianEngine

	// NumColumns overrides len(ColumnNames) in the preamble when set.
	NumColumns *int32

	Code        string
	ColumnNames []string
	Streams     []Stream
	body        []byte

	RunStartEpoch      int64
	FileStartEpoch     int64
	SampleRate         float64
	Version            format.Version
	NumPlaybackStreams int32

	IncludesSourceInputTime bool
}

// New creates a builder for the given version and origin code.
func New(version format.Version, code string) *Builder {
	return &Builder{
		engine:     endian.GetLittleEndianEngine(),
		Version:    version,
		Code:       code,
		SampleRate: 1000,
	}
}

// Preamble encodes the header fields.
func (b *Builder) Preamble() []byte {
	e := b.engine

	buf := endian.AppendInt32(e, nil, int32(b.Version))
	code := []byte(b.Code)
	buf = append(buf, (code[:min(len(code), 3)])...)
	for i := len(code); i < 3; i++ {
		buf = append(buf, ' ')
	}

	if b.Version.HasPackages() {
		buf = endian.AppendInt64(e, buf, b.RunStartEpoch)
		buf = endian.AppendInt64(e, buf, b.FileStartEpoch)
	}
	if b.Version == format.Version3 && format.KindFromCode(b.Code) == format.KindSource {
		var flag byte
		if b.IncludesSourceInputTime {
			flag = 1
		}
		buf = append(buf, flag)
	}

	buf = endian.AppendFloat64(e, buf, b.SampleRate)
	buf = endian.AppendInt32(e, buf, b.NumPlaybackStreams)

	if b.Version.HasPackages() {
		buf = endian.AppendInt32(e, buf, int32(len(b.Streams))) //nolint: gosec
		for _, s := range b.Streams {
			buf = append(buf, s.DataType)
			buf = e.AppendUint16(buf, s.SamplesPerPackage)
		}
	}

	numColumns := int32(len(b.ColumnNames)) //nolint: gosec
	if b.NumColumns != nil {
		numColumns = *b.NumColumns
	}
	names := encoding.EncodeColumnNames(b.ColumnNames)
	buf = endian.AppendInt32(e, buf, numColumns)
	buf = endian.AppendInt32(e, buf, int32(len(names))) //nolint: gosec
	buf = append(buf, names...)

	return buf
}

// DataStart returns the offset at which the body starts.
func (b *Builder) DataStart() int {
	return len(b.Preamble())
}

// Bytes returns the complete recording.
func (b *Builder) Bytes() []byte {
	return append(b.Preamble(), b.body...)
}

// Len returns the size of the complete recording.
func (b *Builder) Len() int {
	return b.DataStart() + len(b.body)
}

// Raw appends arbitrary bytes to the body.
func (b *Builder) Raw(data ...byte) *Builder {
	b.body = append(b.body, data...)
	return b
}

// Row appends a version 1 source/pipeline row.
func (b *Builder) Row(sampleID uint32, values ...float64) *Builder {
	b.body = b.engine.AppendUint32(b.body, sampleID)
	b.body = encoding.AppendFloat64s(b.body, values, b.engine)

	return b
}

// PluginRow appends a version 1 plugin row.
func (b *Builder) PluginRow(values ...float64) *Builder {
	b.body = encoding.AppendFloat64s(b.body, values, b.engine)
	return b
}

// SourcePackage appends a source package holding rows[sample][stream].
func (b *Builder) SourcePackage(sampleID uint32, elapsed float64, rows ...[]float64) *Builder {
	return b.SourceInputPackage(sampleID, elapsed, 0, rows...)
}

// SourceInputPackage appends a source package with a source input time. The
// input time is only written when IncludesSourceInputTime is set.
func (b *Builder) SourceInputPackage(sampleID uint32, elapsed, inputTime float64, rows ...[]float64) *Builder {
	b.packageHeader(sampleID, elapsed)
	if b.IncludesSourceInputTime {
		b.body = endian.AppendFloat64(b.engine, b.body, inputTime)
	}
	b.body = b.engine.AppendUint16(b.body, uint16(len(rows))) //nolint: gosec
	for _, row := range rows {
		b.body = encoding.AppendFloat64s(b.body, row, b.engine)
	}

	return b
}

// PipelinePackage appends a flat pipeline package with one value per stream.
func (b *Builder) PipelinePackage(sampleID uint32, elapsed float64, values ...float64) *Builder {
	b.packageHeader(sampleID, elapsed)
	b.body = encoding.AppendFloat64s(b.body, values, b.engine)

	return b
}

// ChunkedPackage appends a chunked pipeline package.
func (b *Builder) ChunkedPackage(sampleID uint32, elapsed float64, chunks ...Chunk) *Builder {
	b.packageHeader(sampleID, elapsed)
	for _, c := range chunks {
		b.ChunkHeader(c.StreamCount, c.SampleCount)
		b.body = encoding.AppendFloat64s(b.body, c.Values, b.engine)
	}

	return b
}

// PackageHeader appends only the id and elapsed fields of a package header.
func (b *Builder) PackageHeader(sampleID uint32, elapsed float64) *Builder {
	b.packageHeader(sampleID, elapsed)
	return b
}

// ChunkHeader appends a bare chunk header.
func (b *Builder) ChunkHeader(streamCount, sampleCount uint16) *Builder {
	b.body = b.engine.AppendUint16(b.body, streamCount)
	b.body = b.engine.AppendUint16(b.body, sampleCount)

	return b
}

// Values appends raw f64 values to the body.
func (b *Builder) Values(values ...float64) *Builder {
	b.body = encoding.AppendFloat64s(b.body, values, b.engine)
	return b
}

// Truncate drops the last n bytes of the body.
func (b *Builder) Truncate(n int) *Builder {
	b.body = b.body[:max(len(b.body)-n, 0)]
	return b
}

func (b *Builder) packageHeader(sampleID uint32, elapsed float64) {
	b.body = b.engine.AppendUint32(b.body, sampleID)
	b.body = endian.AppendFloat64(b.engine, b.body, elapsed)
}
