package pagination

// Cursor is a page position bounded to [1, Last].
type Cursor struct {
	Page int `json:"page"`
	Last int `json:"last"`
}

// NewCursor returns a cursor on page 1 of last pages. A non-positive last
// is treated as a single page.
func NewCursor(last int) Cursor {
	if last < 1 {
		last = 1
	}
	return Cursor{Page: 1, Last: last}
}

// Clamp returns the cursor with Page forced into [1, Last].
func (c Cursor) Clamp() Cursor {
	if c.Last < 1 {
		c.Last = 1
	}
	if c.Page < 1 {
		c.Page = 1
	}
	if c.Page > c.Last {
		c.Page = c.Last
	}
	return c
}

// IsFirst reports whether the cursor is on the first page.
func (c Cursor) IsFirst() bool { return c.Page <= 1 }

// IsLast reports whether the cursor is on the last page.
func (c Cursor) IsLast() bool { return c.Page >= c.Last }

// Prev moves one page back. On the first page it is a no-op.
func (c Cursor) Prev() Cursor {
	if c.Page > 1 {
		c.Page--
	}
	return c
}

// Next moves one page forward. On the last page it is a no-op.
func (c Cursor) Next() Cursor {
	if c.Page < c.Last {
		c.Page++
	}
	return c
}

// Goto jumps to page. Pages outside [1, Last] leave the cursor unchanged
// and report false.
func (c Cursor) Goto(page int) (Cursor, bool) {
	if page < 1 || page > c.Last {
		return c, false
	}
	c.Page = page
	return c, true
}
