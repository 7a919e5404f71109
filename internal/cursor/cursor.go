// Package cursor provides the input view used by the mangled-name parser.
package cursor

import "strings"

// Cursor is a view over the unparsed suffix of a mangled name.
// It only ever moves forward; a consumed byte is never re-examined.
// An empty cursor is a valid state, not an error.
type Cursor struct {
	input string
	pos   int
}

// New creates a Cursor over the given input.
func New(input string) Cursor {
	return Cursor{input: input}
}

// Empty reports whether all input has been consumed.
func (c *Cursor) Empty() bool {
	return c.pos >= len(c.input)
}

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int {
	if c.Empty() {
		return 0
	}
	return len(c.input) - c.pos
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.pos
}

// Peek returns the next byte without consuming it, or 0 if empty.
func (c *Cursor) Peek() byte {
	if c.Empty() {
		return 0
	}
	return c.input[c.pos]
}

// PeekIs reports whether the next byte equals b.
func (c *Cursor) PeekIs(b byte) bool {
	return !c.Empty() && c.input[c.pos] == b
}

// PeekNumber scans a decimal number without consuming anything.
// A number starting with '0' scans as 0.
func (c *Cursor) PeekNumber() uint {
	if c.Empty() || c.input[c.pos] == '0' {
		return 0
	}

	var acc uint
	for i := c.pos; i < len(c.input); i++ {
		d := c.input[i]
		if d < '0' || d > '9' {
			break
		}
		acc = 10*acc + uint(d-'0')
	}
	return acc
}

// PopFront consumes and returns the next byte, or 0 if empty.
func (c *Cursor) PopFront() byte {
	if c.Empty() {
		return 0
	}
	b := c.input[c.pos]
	c.pos++
	return b
}

// ConsumeFront consumes b if it is the next byte.
func (c *Cursor) ConsumeFront(b byte) bool {
	if !c.PeekIs(b) {
		return false
	}
	c.pos++
	return true
}

// ConsumeFrontString consumes s if it is a prefix of the remaining input.
func (c *Cursor) ConsumeFrontString(s string) bool {
	if !strings.HasPrefix(c.input[c.pos:], s) {
		return false
	}
	c.pos += len(s)
	return true
}

// Advance consumes n bytes and returns them.
// Returns "" and false if fewer than n bytes remain.
func (c *Cursor) Advance(n int) (string, bool) {
	if n < 0 || c.Len() < n {
		return "", false
	}
	s := c.input[c.pos : c.pos+n]
	c.pos += n
	return s, true
}

// CutUntil consumes and returns everything up to the first occurrence of
// delim, leaving the cursor on the delimiter. Returns false if delim does
// not occur in the remaining input; nothing is consumed in that case.
func (c *Cursor) CutUntil(delim byte) (string, bool) {
	idx := strings.IndexByte(c.input[c.pos:], delim)
	if idx < 0 {
		return "", false
	}
	s := c.input[c.pos : c.pos+idx]
	c.pos += idx
	return s, true
}

// CutUntilAny consumes and returns everything up to the first byte from
// delims, leaving the cursor on that byte. Returns false if none of the
// delimiters occurs in the remaining input; nothing is consumed then.
func (c *Cursor) CutUntilAny(delims string) (string, bool) {
	idx := strings.IndexAny(c.input[c.pos:], delims)
	if idx < 0 {
		return "", false
	}
	s := c.input[c.pos : c.pos+idx]
	c.pos += idx
	return s, true
}

// Remaining returns the unconsumed suffix.
func (c *Cursor) Remaining() string {
	if c.Empty() {
		return ""
	}
	return c.input[c.pos:]
}
