package collision

import (
	"fmt"

	"github.com/palmtree-bci/palmrec/errs"
	"github.com/palmtree-bci/palmrec/internal/hash"
)

// Tracker maps column names to column indexes by their xxHash64 id and detects
// duplicate names and hash collisions.
//
// Lookups go through the id map. Once two different names share an id the
// tracker falls back to comparing names.
type Tracker struct {
	columns      map[uint64]int // id → first column index with that id
	names        []string       // column index → name, in tracking order
	hasCollision bool           // two different names share an id
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		columns: make(map[uint64]int),
		names:   make([]string, 0),
	}
}

// Track registers the next column name and returns its index.
//
// Empty names are kept in order but are not indexed.
//
// Returns:
//   - int: The column index assigned to name
//   - error: ErrDuplicateColumn if the same name was tracked before; the column
//     is still assigned an index but lookups keep resolving to the first one
func (t *Tracker) Track(name string) (int, error) {
	col := len(t.names)
	t.names = append(t.names, name)

	if name == "" {
		return col, nil
	}

	id := hash.ID(name)
	if existing, exists := t.columns[id]; exists {
		if t.names[existing] == name {
			return col, fmt.Errorf("%w: %q at columns %d and %d", errs.ErrDuplicateColumn, name, existing, col)
		}
		// Different name, same id: keep the first mapping and switch lookups to names.
		t.hasCollision = true

		return col, nil
	}
	t.columns[id] = col

	return col, nil
}

// Lookup returns the index of the first column called name.
func (t *Tracker) Lookup(name string) (int, bool) {
	if name == "" {
		return 0, false
	}

	if t.hasCollision {
		for i, n := range t.names {
			if n == name {
				return i, true
			}
		}

		return 0, false
	}

	col, ok := t.columns[hash.ID(name)]
	if !ok || t.names[col] != name {
		return 0, false
	}

	return col, true
}

// HasCollision returns true if two different names share an id.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in column order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked columns.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked columns and collision state.
func (t *Tracker) Reset() {
	clear(t.columns)
	t.names = t.names[:0]
	t.hasCollision = false
}
