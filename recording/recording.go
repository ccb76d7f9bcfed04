package recording

import (
	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/sample"
	"github.com/palmtree-bci/palmrec/section"
)

// Recording is the result of decoding one recording.
type Recording struct {
	// Header is the decoded preamble with the package counters filled in.
	Header *section.Header
	// Table holds the samples. It is nil for header-only decodes and for
	// recordings whose data could not be read.
	Table *sample.Table
	// Diagnostics lists every non-fatal condition, header ones first.
	Diagnostics diag.List
	// Fingerprint is the xxHash64 of the source, set with WithFingerprint.
	Fingerprint uint64
	// Compression is the container format the source was stored in.
	Compression format.CompressionType
}

// Partial reports whether the package scan stopped before the end of the data,
// in which case Table holds every package up to the last complete one.
func (r *Recording) Partial() bool {
	for _, d := range r.Diagnostics {
		if d.Err != nil {
			return true
		}
	}

	return false
}
