// Package palmrec decodes recordings of the Palmtree real-time data acquisition
// pipeline and derives per-sample timelines from them.
//
// Palmtree writes three kinds of recordings: source data (.src) as received by
// the source module, pipeline data (.dat) that streamed through the pipeline,
// and plugin data. Version 1 recordings are fixed-size rows; versions 2 and 3
// are streams of sample-packages that carry one or more samples per stream.
//
// # Core Features
//
//   - Versions 1, 2 and 3, source, pipeline and plugin recordings
//   - Two-pass decoding into a single, pre-sized, NaN-initialised table
//   - Recovery of truncated recordings up to the last complete sample-package
//   - Structured diagnostics instead of silent warnings
//   - Transparent zstd, LZ4, S2/Snappy and gzip decompression
//   - Timeline synthesis from elapsed times or from the nominal sample rate
//
// # Basic Usage
//
//	rec, err := palmrec.ReadHeaderAndData("run_001.dat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if rec.Partial() {
//	    log.Printf("incomplete recording: %v", rec.Diagnostics.Err())
//	}
//
//	tl, err := palmrec.GenerateTimeline(rec.Header, rec.Table, format.ElapsedAndSamplerate)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, ms := range tl.Times {
//	    fmt.Printf("%8.2f ms: %v\n", ms, rec.Table.Row(i))
//	}
//
// # Package Structure
//
// This package wraps the recording, section and timeline packages for the
// common cases. Use recording.NewDecoder directly to reuse a configuration or
// to decode from an io.ReaderAt.
package palmrec

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/hash"
	"github.com/palmtree-bci/palmrec/recording"
	"github.com/palmtree-bci/palmrec/sample"
	"github.com/palmtree-bci/palmrec/section"
	"github.com/palmtree-bci/palmrec/timeline"
)

// ReadHeader reads the header of the recording at path without decoding its data.
//
// For version 2+ recordings the package stream is still counted, so
// TotalSamples and TotalPackages are set.
//
// Parameters:
//   - path: Path to a recording, possibly compressed
//   - opts: Decoder options (see recording.Option)
//
// Returns:
//   - *section.Header: The decoded header, also returned with ErrUnsupportedFileKind
//   - error: ErrNotFound, ErrOpenFailure, ErrUnsupportedVersion, ErrTruncatedHeader, ...
func ReadHeader(path string, opts ...recording.Option) (*section.Header, error) {
	rec, err := decodeFile(path, append(opts, recording.WithHeaderOnly())...)
	if rec == nil {
		return nil, err
	}

	return rec.Header, err
}

// ReadHeaderAndData decodes the recording at path.
//
// A truncated recording is not an error: the table holds every complete
// sample-package and Recording.Partial reports the early stop.
//
// Parameters:
//   - path: Path to a recording, possibly compressed
//   - opts: Decoder options (see recording.Option)
//
// Returns:
//   - *recording.Recording: Header, table and diagnostics
//   - error: A fatal source, header or data stage error
//
// Example:
//
//	rec, err := palmrec.ReadHeaderAndData("run_001.src", recording.WithMaxTableBytes(2<<30))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rec.Header.TotalSamples, rec.Table.Cols())
func ReadHeaderAndData(path string, opts ...recording.Option) (*recording.Recording, error) {
	return decodeFile(path, opts...)
}

// Decode decodes a recording from the first size bytes of r.
func Decode(r io.ReaderAt, size int64, opts ...recording.Option) (*recording.Recording, error) {
	dec, err := recording.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(r, size)
}

// DecodeBytes decodes an in-memory recording.
func DecodeBytes(data []byte, opts ...recording.Option) (*recording.Recording, error) {
	dec, err := recording.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.DecodeBytes(data)
}

// GenerateTimeline builds one time in milliseconds per table row.
//
// Parameters:
//   - h: Header of the decoded recording
//   - t: Decoded sample table
//   - method: format.ElapsedAndSamplerate or format.ZeroLinearSamplerate
//   - opts: Timeline options, e.g. timeline.WithLogger(nil) to mute warnings
//
// Returns:
//   - timeline.Result: Times plus non-fatal warnings
//   - error: ErrInvalidMethodArgument, ErrIncompatibleMethodVersion or ErrMissingPipelineStreams
func GenerateTimeline(h *section.Header, t *sample.Table, method format.TimelineMethod, opts ...timeline.Option) (timeline.Result, error) {
	return timeline.Generate(h, t, method, opts...)
}

// ColumnID returns the xxHash64 id used to look up columns by name.
func ColumnID(name string) uint64 {
	return hash.ID(name)
}

func decodeFile(path string, opts ...recording.Option) (*recording.Recording, error) {
	dec, err := recording.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailure, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailure, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", errs.ErrOpenFailure, path)
	}

	return dec.Decode(f, info.Size())
}
