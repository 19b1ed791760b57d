package menu

// Cursor is a selection index clamped to [0, count). Moving past either end
// is a no-op.
type Cursor struct {
	index int
	count int
}

// NewCursor returns a cursor at 0 over count entries.
func NewCursor(count int) Cursor {
	return Cursor{count: max(count, 0)}
}

// Index returns the selected entry.
func (c Cursor) Index() int {
	return c.index
}

// Count returns the number of entries.
func (c Cursor) Count() int {
	return c.count
}

// Up moves one entry up and reports whether the cursor moved.
func (c *Cursor) Up() bool {
	if c.index == 0 {
		return false
	}
	c.index--
	return true
}

// Down moves one entry down and reports whether the cursor moved.
func (c *Cursor) Down() bool {
	if c.index+1 >= c.count {
		return false
	}
	c.index++
	return true
}
