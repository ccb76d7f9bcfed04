package recording

import (
	"fmt"

	"github.com/palmtree-bci/palmrec/format"
	"github.com/palmtree-bci/palmrec/internal/bytestream"
	"github.com/palmtree-bci/palmrec/sample"
	"github.com/palmtree-bci/palmrec/section"
)

// readRows decodes the fixed rows of a version 1 recording into t.
//
// Source and pipeline rows store the sample id as u32 in column 0 and f64
// values in the remaining columns; plugin rows are all f64.
func readRows(c *bytestream.Cursor, h *section.Header, t *sample.Table) error {
	for i := range int(h.NumRows) {
		off := h.DataStart + int64(i)*h.RowSize
		row := t.Row(i)

		if h.Kind == format.KindPlugin {
			if err := c.Float64sAt(off, row); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}

			continue
		}

		if err := c.Seek(off); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		id, err := c.Uint32()
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		row[section.ColumnSampleID] = float64(id)

		if err := c.Float64sAt(off+section.SampleIDSize, row[1:]); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}

	return nil
}
