// Package diag carries the non-fatal conditions found while decoding a recording.
//
// Header and package-stream problems that still leave a usable result are
// recorded as Diagnostic values instead of errors. A diagnostic that stops the
// package scan wraps one of the errs sentinels, so errors.Is works on it.
package diag

import (
	"errors"
	"fmt"

	"github.com/palmtree-bci/palmrec/errs"
)

// Kind classifies a diagnostic.
type Kind uint8

const (
	ColumnCountMismatch Kind = iota + 1 // ColumnCountMismatch means the names blob disagrees with numColumns.
	InvalidRowSize                      // InvalidRowSize means a v1 row size is not positive.
	TruncatedPackage                    // TruncatedPackage means a package body ran past the end of the data.
	TruncatedChunk                      // TruncatedChunk means a stream chunk's values ran past the end of the data.
	MalformedPackage                    // MalformedPackage means a chunked package cannot be laid out.
	UnreliableTimeline                  // UnreliableTimeline means back-dated times may be inaccurate.
	DuplicateColumn                     // DuplicateColumn means two columns share a name.
)

func (k Kind) String() string {
	switch k {
	case ColumnCountMismatch:
		return "ColumnCountMismatch"
	case InvalidRowSize:
		return "InvalidRowSize"
	case TruncatedPackage:
		return "TruncatedPackage"
	case TruncatedChunk:
		return "TruncatedChunk"
	case MalformedPackage:
		return "MalformedPackage"
	case UnreliableTimeline:
		return "UnreliableTimeline"
	case DuplicateColumn:
		return "DuplicateColumn"
	default:
		return "Unknown"
	}
}

// Sentinel returns the errs sentinel wrapped by diagnostics of this kind, or nil
// for kinds that do not stop decoding.
func (k Kind) Sentinel() error {
	switch k {
	case TruncatedPackage:
		return errs.ErrTruncatedPackage
	case TruncatedChunk:
		return errs.ErrTruncatedChunk
	case MalformedPackage:
		return errs.ErrMalformedPackage
	default:
		return nil
	}
}

// Diagnostic is one recorded condition.
type Diagnostic struct {
	// Err wraps the matching errs sentinel for conditions that stopped the scan.
	Err error
	// Message is a human readable description.
	Message string
	// Offset is the byte offset the condition refers to, or -1 when not applicable.
	Offset int64
	Kind   Kind
}

// New creates a diagnostic of the given kind. Err is derived from the kind.
func New(kind Kind, offset int64, format string, args ...any) Diagnostic {
	msg := fmt.Sprintf(format, args...)

	d := Diagnostic{Kind: kind, Offset: offset, Message: msg}
	if sentinel := kind.Sentinel(); sentinel != nil {
		d.Err = fmt.Errorf("%w: %s", sentinel, msg)
	}

	return d
}

// String formats the diagnostic for logs.
func (d Diagnostic) String() string {
	if d.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", d.Kind, d.Offset, d.Message)
	}

	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Has reports whether the list contains a diagnostic of the given kind.
func (l List) Has(kind Kind) bool {
	for i := range l {
		if l[i].Kind == kind {
			return true
		}
	}

	return false
}

// Kinds returns the kind of every diagnostic, in order.
func (l List) Kinds() []Kind {
	kinds := make([]Kind, len(l))
	for i := range l {
		kinds[i] = l[i].Kind
	}

	return kinds
}

// Err joins the errors of all diagnostics that carry one. It returns nil when
// no diagnostic stopped decoding.
func (l List) Err() error {
	var joined []error
	for i := range l {
		if l[i].Err != nil {
			joined = append(joined, l[i].Err)
		}
	}

	return errors.Join(joined...)
}
