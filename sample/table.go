// Package sample holds the decoded sample table of a recording.
//
// A Table is a dense row-major matrix of float64 values. Every cell starts as
// NaN, the "unset" marker: cells that a recording never wrote (streams that
// logged fewer samples than the package reserved) stay NaN after decoding.
//
// The table is allocated once with its final size and never grows. Writes
// outside of it return ErrTableOverflow.
package sample

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/palmtree-bci/palmrec/diag"
	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/internal/collision"
)

// Table is a NaN-initialised rows × cols matrix of samples.
type Table struct {
	columns *collision.Tracker
	data    []float64
	rows    int
	cols    int
}

// NewTable allocates a rows × cols table with every cell set to NaN.
//
// Parameters:
//   - rows: Number of rows, must not be negative
//   - cols: Number of columns, must not be negative
//
// Returns:
//   - *Table: The allocated table
//   - error: ErrTableTooLarge for negative or overflowing dimensions
func NewTable(rows, cols int) (*Table, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %d × %d", errs.ErrTableTooLarge, rows, cols)
	}
	if cols > 0 && rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%w: %d × %d cells overflow", errs.ErrTableTooLarge, rows, cols)
	}

	data := make([]float64, rows*cols)
	nan := math.NaN()
	for i := range data {
		data[i] = nan
	}

	return &Table{data: data, rows: rows, cols: cols}, nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return t.rows
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return t.cols
}

// Len returns the number of cells.
func (t *Table) Len() int {
	return len(t.data)
}

// Data returns the row-major backing slice. It is shared with the table.
func (t *Table) Data() []float64 {
	return t.data
}

// At returns the value at row r, column c. It panics when out of range, like a slice index.
func (t *Table) At(r, c int) float64 {
	if r < 0 || r >= t.rows || c < 0 || c >= t.cols {
		panic(fmt.Sprintf("sample: index (%d, %d) out of range [%d × %d]", r, c, t.rows, t.cols))
	}

	return t.data[r*t.cols+c]
}

// Row returns row r as a slice sharing the table's storage.
func (t *Table) Row(r int) []float64 {
	if r < 0 || r >= t.rows {
		panic(fmt.Sprintf("sample: row %d out of range [%d]", r, t.rows))
	}

	return t.data[r*t.cols : (r+1)*t.cols : (r+1)*t.cols]
}

// Col returns a copy of column c.
func (t *Table) Col(c int) []float64 {
	if c < 0 || c >= t.cols {
		panic(fmt.Sprintf("sample: column %d out of range [%d]", c, t.cols))
	}
	if t.rows == 0 {
		return []float64{}
	}

	return mat.Col(nil, c, t.Dense())
}

// Set writes v at row r, column c.
func (t *Table) Set(r, c int, v float64) error {
	if err := t.check(r, 1, c, 1); err != nil {
		return err
	}
	t.data[r*t.cols+c] = v

	return nil
}

// SetRange copies values into row r starting at column c.
func (t *Table) SetRange(r, c int, values []float64) error {
	if err := t.check(r, 1, c, len(values)); err != nil {
		return err
	}
	copy(t.data[r*t.cols+c:], values)

	return nil
}

// Fill sets column c of rows [r, r+n) to v.
func (t *Table) Fill(r, n, c int, v float64) error {
	if err := t.check(r, n, c, 1); err != nil {
		return err
	}
	for i := r; i < r+n; i++ {
		t.data[i*t.cols+c] = v
	}

	return nil
}

// SetBlock copies a rows × width block of row-major values into the table,
// with its top-left cell at row r, column c.
//
// Parameters:
//   - r: First table row
//   - c: First table column
//   - width: Number of columns per block row
//   - values: Row-major block values, len(values) must be a multiple of width
//
// Returns:
//   - error: ErrTableOverflow if the block does not fit
func (t *Table) SetBlock(r, c, width int, values []float64) error {
	if width <= 0 || len(values)%width != 0 {
		return fmt.Errorf("%w: block of %d values is not a multiple of width %d", errs.ErrTableOverflow, len(values), width)
	}

	n := len(values) / width
	if err := t.check(r, n, c, width); err != nil {
		return err
	}
	for i := range n {
		copy(t.data[(r+i)*t.cols+c:(r+i)*t.cols+c+width], values[i*width:(i+1)*width])
	}

	return nil
}

// Dense returns a gonum matrix view sharing the table's storage, or nil when
// the table has no cells.
func (t *Table) Dense() *mat.Dense {
	if t.rows == 0 || t.cols == 0 {
		return nil
	}

	return mat.NewDense(t.rows, t.cols, t.data)
}

// SetColumnNames attaches column names to the table for lookups by name.
//
// Names beyond the table width are ignored. Repeated names are reported as
// DuplicateColumn diagnostics; lookups resolve to the first occurrence.
func (t *Table) SetColumnNames(names []string) diag.List {
	var diags diag.List

	t.columns = collision.NewTracker()
	for _, name := range names[:min(len(names), t.cols)] {
		if _, err := t.columns.Track(name); err != nil {
			diags = append(diags, diag.New(diag.DuplicateColumn, -1, "%v", err))
		}
	}

	return diags
}

// ColumnIndex returns the index of the first column called name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t.columns == nil {
		return 0, false
	}

	return t.columns.Lookup(name)
}

// ColumnByName returns a copy of the first column called name.
func (t *Table) ColumnByName(name string) ([]float64, bool) {
	c, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}

	return t.Col(c), true
}

// check verifies that rows [r, r+n) and columns [c, c+w) are inside the table.
func (t *Table) check(r, n, c, w int) error {
	if r < 0 || n < 0 || c < 0 || w < 0 || r+n > t.rows || c+w > t.cols {
		return fmt.Errorf("%w: rows [%d, %d) columns [%d, %d) in %d × %d table",
			errs.ErrTableOverflow, r, r+n, c, c+w, t.rows, t.cols)
	}

	return nil
}
