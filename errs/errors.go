// Package errs defines the sentinel errors returned by palmrec.
//
// Callers match them with errors.Is; the decoder wraps them with context
// (offsets, counts, paths) using fmt.Errorf("%w: ...").
package errs

import "errors"

// Source errors. The decoder surfaces them when a recording cannot be
// located or opened; they always abort the decode.
var (
	ErrNotFound      = errors.New("recording not found")
	ErrOpenFailure   = errors.New("recording could not be opened")
	ErrDecompression = errors.New("recording could not be decompressed")
)

// Header errors. Fatal: no header is returned.
var (
	ErrUnsupportedVersion = errors.New("unsupported data version")
	ErrTruncatedHeader    = errors.New("truncated header")
)

// Package stream errors. These are recovered locally: the scan stops at the
// last verified package and the partial table is returned together with a
// diagnostic that wraps one of them.
var (
	ErrTruncatedPackage = errors.New("truncated sample-package")
	ErrTruncatedChunk   = errors.New("truncated sample-chunk")
	ErrMalformedPackage = errors.New("malformed sample-package")
)

// Data stage errors.
var (
	ErrUnsupportedFileKind = errors.New("unsupported file kind for package data")
	ErrTableOverflow       = errors.New("write outside the allocated sample table")
	ErrTableTooLarge       = errors.New("sample table exceeds the allocation limit")
	ErrDuplicateColumn     = errors.New("duplicate column name")
)

// Timeline errors. Fatal to the timeline call only.
var (
	ErrInvalidMethodArgument     = errors.New("invalid timeline argument")
	ErrIncompatibleMethodVersion = errors.New("timeline method not supported for data version")
	ErrMissingPipelineStreams    = errors.New("pipeline input streams were not logged")
)

// Configuration errors.
var (
	ErrInvalidOption = errors.New("invalid option")
)
