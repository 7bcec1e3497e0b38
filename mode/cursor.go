package mode

// maxCol is the rightmost cursor column (the "other" triplet).
const maxCol = 2

// Cursor selects which subject class the editor is pointing at: column 0
// is owner, 1 group, 2 other. Cursor is a value; Move returns a new
// Cursor, so stale copies remain valid snapshots.
type Cursor struct {
	col int
}

// Move returns a Cursor shifted by delta, saturating at the bounds.
func (c Cursor) Move(delta int) Cursor {
	return Cursor{col: clamp(c.col+delta, 0, maxCol)}
}

// Col returns the column in [0,2].
func (c Cursor) Col() int { return c.col }
