package parser

import "strings"

// Location is a 1-based line and column in the input text.
type Location struct {
	Line   int
	Column int
}

// cursor walks the input one byte at a time.
type cursor struct {
	text string
	pos  int
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.text)
}

// peek returns the current byte, or false at end of input.
func (c *cursor) peek() (byte, bool) {
	if c.atEnd() {
		return 0, false
	}
	return c.text[c.pos], true
}

func (c *cursor) advance() {
	if !c.atEnd() {
		c.pos++
	}
}

func (c *cursor) advanceN(n int) {
	c.pos += n
	if c.pos > len(c.text) {
		c.pos = len(c.text)
	}
}

func (c *cursor) hasPrefix(s string) bool {
	return strings.HasPrefix(c.text[c.pos:], s)
}

func (c *cursor) skipWhitespace() {
	for c.pos < len(c.text) {
		switch c.text[c.pos] {
		case ' ', '\t', '\n', '\r':
			c.pos++
		default:
			return
		}
	}
}

// location computes the line and column of the current offset by counting
// the newlines consumed so far.
func (c *cursor) location() Location {
	consumed := c.text[:c.pos]
	line := strings.Count(consumed, "\n") + 1
	column := c.pos - strings.LastIndexByte(consumed, '\n')
	return Location{Line: line, Column: column}
}
