package bencode

// Cursor is a forward-only read position over an immutable buffer that can
// step back. It never copies or modifies the buffer.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Next returns the byte at the current position and advances past it.
// It reports false at the end of the buffer.
func (c *Cursor) Next() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	b := c.data[c.pos]
	c.pos++
	return b, true
}

// Rewind moves the position back by n bytes
func (c *Cursor) Rewind(n int) error {
	if n < 0 || n > c.pos {
		return newError(CursorUnderflow, c.pos, "cannot rewind %d bytes", n)
	}
	c.pos -= n
	return nil
}

// Position returns the current offset
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Read returns the next n bytes as a sub-slice of the buffer and advances
// past them. It reports false, without moving, if fewer than n bytes are left.
func (c *Cursor) Read(n int) ([]byte, bool) {
	if n < 0 || n > c.Remaining() {
		return nil, false
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, true
}
