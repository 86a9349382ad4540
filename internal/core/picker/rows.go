package picker

import "sync"

// Rows is the arena of live autocomplete rows, keyed by row identity.
//
// One state record exists per mounted row; rows edit independently. The
// arena is also the stale-result gate: unmounting a row invalidates it, so
// a creation response that lands afterwards is discarded instead of
// clobbering a recycled row slot.
type Rows struct {
	mu   sync.Mutex
	rows map[string]*Row
}

// NewRows creates an empty arena.
func NewRows() *Rows {
	return &Rows{rows: make(map[string]*Row)}
}

// Mount creates (or replaces) the row for the given identity. Replacing an
// identity invalidates the previous row first, so its pending work cannot
// leak into the fresh state record.
func (rows *Rows) Mount(id string, config RowConfig) *Row {
	rows.mu.Lock()
	defer rows.mu.Unlock()

	if previous, ok := rows.rows[id]; ok {
		previous.invalidate()
	}

	row := newRow(id, config)
	rows.rows[id] = row
	return row
}

// Get returns the live row for the identity, if mounted.
func (rows *Rows) Get(id string) (*Row, bool) {
	rows.mu.Lock()
	defer rows.mu.Unlock()

	row, ok := rows.rows[id]
	return row, ok
}

// Unmount removes and invalidates the row for the identity.
func (rows *Rows) Unmount(id string) {
	rows.mu.Lock()
	defer rows.mu.Unlock()

	if row, ok := rows.rows[id]; ok {
		row.invalidate()
		delete(rows.rows, id)
	}
}

// Len reports the number of mounted rows.
func (rows *Rows) Len() int {
	rows.mu.Lock()
	defer rows.mu.Unlock()
	return len(rows.rows)
}
