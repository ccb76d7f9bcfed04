// Package recording decodes Palmtree recordings into a sample table.
//
// # Decoding
//
// A Decoder parses the preamble with section.ParseHeader and then reads the
// data that follows it:
//
//   - Version 1 recordings hold fixed-size rows. The header already knows how
//     many complete rows there are, so the table is allocated and filled directly.
//   - Version 2 and 3 recordings hold a stream of variable-size sample-packages.
//     They are decoded in two passes over one traversal: a counting pass sizes
//     the table, and a filling pass writes the packages into it.
//
// The traversal verifies a package in full before handing it to either pass,
// so both passes see the same packages and the table never grows.
//
// # Partial recordings
//
// A recording that was cut short (the acquisition crashed, the copy was
// interrupted) still decodes. The scan stops at the last complete package,
// records a diagnostic wrapping errs.ErrTruncatedPackage, errs.ErrTruncatedChunk
// or errs.ErrMalformedPackage, and logs a warning. Recording.Partial reports it.
//
// # Compressed recordings
//
// Sources compressed with zstd, LZ4, S2/Snappy or gzip are detected from their
// first bytes and inflated in memory before decoding. Use WithDecompression(false)
// to turn detection off.
//
// Example:
//
//	dec, err := recording.NewDecoder(recording.WithMaxTableBytes(1 << 30))
//	if err != nil {
//	    return err
//	}
//	rec, err := dec.DecodeBytes(data)
//	if err != nil {
//	    return err
//	}
//	if rec.Partial() {
//	    log.Printf("recording is incomplete: %v", rec.Diagnostics.Err())
//	}
package recording
