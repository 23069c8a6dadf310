package model

// Row is one batch of problem ids presented before the next batch is generated.
// IDs and Reinforcing are index-aligned.
type Row struct {
	IDs         []int
	Reinforcing []bool
	cursor      int
}

// NewRow builds a row with its cursor at the first position.
func NewRow(ids []int, reinforcing []bool) Row {
	return Row{IDs: ids, Reinforcing: reinforcing}
}

// Len returns the number of positions in the row.
func (r *Row) Len() int {
	return len(r.IDs)
}

// Position returns the cursor.
func (r *Row) Position() int {
	return r.cursor
}

// Current returns the id under the cursor and whether it is a reinforcement pick.
func (r *Row) Current() (id int, reinforcing bool, ok bool) {
	if r.cursor >= len(r.IDs) {
		return 0, false, false
	}
	return r.IDs[r.cursor], r.Reinforcing[r.cursor], true
}

// AdvanceCursor moves to the next position and reports whether one remains.
func (r *Row) AdvanceCursor() bool {
	if r.cursor < len(r.IDs) {
		r.cursor++
	}
	return r.cursor < len(r.IDs)
}

// Done reports whether every position has been answered.
func (r *Row) Done() bool {
	return r.cursor >= len(r.IDs)
}
