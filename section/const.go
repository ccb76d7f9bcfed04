package section

import "github.com/palmtree-bci/palmrec/format"

// Field sizes of the preamble.
const (
	VersionSize          = 4 // version:i32
	CodeSize             = 3 // code:[3]u8
	EpochSize            = 8 // runStartEpoch / fileStartEpoch:i64
	InputTimeFlagSize    = 1 // includesSourceInputTime:u8 (v3 source only)
	SampleRateSize       = 8 // sampleRate:f64
	CountSize            = 4 // numPlaybackStreams / numStreams / numColumns / columnNamesSize:i32
	StreamDescriptorSize = 3 // dataType:u8 + samplesPerPackage:u16
)

// Sizes of the package stream structures.
const (
	SourcePackageHeaderSize          = 14 // sampleId:u32 + elapsed:f64 + sampleCount:u16
	SourceInputTimePackageHeaderSize = 22 // sampleId:u32 + elapsed:f64 + sourceInputTime:f64 + sampleCount:u16
	PipelinePackageHeaderSize        = 12 // sampleId:u32 + elapsed:f64
	ChunkHeaderSize                  = 4  // streamCount:u16 + sampleCount:u16
	SampleIDSize                     = 4  // sampleId:u32, also the leading field of a v1 source/pipeline row
	ValueSize                        = 8  // f64 sample value
)

// Table header columns preceding the stream values.
const (
	ColumnSampleID        = 0 // ColumnSampleID holds the sample-package id.
	ColumnElapsed         = 1 // ColumnElapsed holds the package's elapsed milliseconds.
	ColumnSourceInputTime = 2 // ColumnSourceInputTime holds the source input time when recorded.
)

// CodeSource and CodePipeline are the origin codes of source and pipeline recordings.
const (
	CodeSource   = "src"
	CodePipeline = "dat"
)

// RowSizeV1 returns the byte size of one fixed row in a version 1 recording.
//
// Source and pipeline rows start with a u32 sample id followed by numColumns-1
// doubles; plugin rows are numColumns doubles.
func RowSizeV1(kind format.FileKind, numColumns int64) int64 {
	if kind == format.KindPlugin {
		return numColumns * ValueSize
	}

	return SampleIDSize + (numColumns-1)*ValueSize
}
