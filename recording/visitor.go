package recording

import (
	"github.com/palmtree-bci/palmrec/internal/bytestream"
	"github.com/palmtree-bci/palmrec/internal/pool"
	"github.com/palmtree-bci/palmrec/sample"
	"github.com/palmtree-bci/palmrec/section"
)

// countVisitor sizes the table: the first pass.
type countVisitor struct {
	packages int64
	samples  int64
}

func (v *countVisitor) visit(l *packageLayout) error {
	v.packages++
	v.samples += int64(l.rows)

	return nil
}

// fillVisitor writes every package into the table: the second pass.
type fillVisitor struct {
	c     *bytestream.Cursor
	h     *section.Header
	table *sample.Table
	row   int
}

func (v *fillVisitor) visit(l *packageLayout) error {
	first := v.h.HeaderColumns()

	if v.h.Chunked() {
		for _, ch := range l.chunks {
			if err := v.copyValues(ch.valuesOff, ch.header.Values(), first+ch.streamOffset, int(ch.header.StreamCount)); err != nil {
				return err
			}
		}
	} else if numStreams := v.h.NumStreams(); numStreams > 0 {
		if err := v.copyValues(l.valuesOff, l.values, first, numStreams); err != nil {
			return err
		}
	}

	// The package is complete: its id and times now cover all of its rows.
	if err := v.table.Fill(v.row, l.rows, section.ColumnSampleID, float64(l.header.SampleID)); err != nil {
		return err
	}
	if err := v.table.Fill(v.row, l.rows, section.ColumnElapsed, l.header.Elapsed); err != nil {
		return err
	}
	if v.h.IncludesSourceInputTime {
		if err := v.table.Fill(v.row, l.rows, section.ColumnSourceInputTime, l.header.SourceInputTime); err != nil {
			return err
		}
	}

	v.row += l.rows

	return nil
}

// copyValues reads n row-major values at off and stores them as a block of
// width columns starting at the current row and column col.
func (v *fillVisitor) copyValues(off, n int64, col, width int) error {
	if n == 0 {
		return nil
	}

	values, release := pool.GetFloat64Slice(int(n))
	defer release()

	if err := v.c.Float64sAt(off, values); err != nil {
		return err
	}

	return v.table.SetBlock(v.row, col, width, values)
}
