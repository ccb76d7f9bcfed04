// Package section defines the binary structures of a Palmtree recording and the
// header codec that decodes its preamble.
//
// All multi-byte fields are little-endian.
//
// # Preamble
//
//	Field                    | Type        | Present
//	-------------------------|-------------|-------------------------------
//	version                  | i32         | always (1, 2 or 3)
//	code                     | [3]u8       | always ("src", "dat", other)
//	runStartEpoch            | i64         | v2, v3
//	fileStartEpoch           | i64         | v2, v3
//	includesSourceInputTime  | u8          | v3 source files
//	sampleRate               | f64         | always
//	numPlaybackStreams       | i32         | always
//	numStreams               | i32         | v2, v3
//	streams                  | numStreams × {dataType:u8, samplesPerPackage:u16}
//	numColumns               | i32         | always
//	columnNamesSize          | i32         | always
//	columnNames              | [size]u8    | tab separated
//
// The data starts right after the column names.
//
// # Version 1 rows
//
// Source and pipeline rows are a u32 sample id followed by numColumns-1 f64
// values. Plugin rows are numColumns f64 values. Trailing bytes that do not
// form a whole row are ignored.
//
// # Version 2+ sample-packages
//
//	Source:              sampleId:u32 elapsed:f64 sampleCount:u16               (14 bytes)
//	Source + input time: sampleId:u32 elapsed:f64 sourceInputTime:f64 sampleCount:u16 (22 bytes)
//	Pipeline:            sampleId:u32 elapsed:f64                                (12 bytes)
//
// A source package is followed by sampleCount × numStreams values, row-major.
// A pipeline package is followed by numStreams values when every stream logs one
// sample per package. Otherwise the body is a sequence of chunks, each a
// ChunkHeader {streamCount:u16, sampleCount:u16} and streamCount × sampleCount
// values, until the chunks have covered numStreams streams.
package section
