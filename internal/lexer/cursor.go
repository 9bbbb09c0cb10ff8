package lexer

import (
	"fmt"
	"unicode/utf8"

	"calc/internal/source"

	"fortio.org/safecast"
)

// Cursor walks the bytes of one source file. It never moves backwards
// except through Rewind.
type Cursor struct {
	src  []byte
	file source.FileID
	pos  uint32
}

// Mark is a saved cursor position.
type Mark uint32

// NewCursor positions a cursor at the first byte of f.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("source %q is too large: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) end() uint32 { return uint32(len(c.src)) } //nolint:gosec // checked in NewCursor

// AtEnd reports whether all input was consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= c.end() }

// Pos is the current byte offset.
func (c *Cursor) Pos() uint32 { return c.pos }

// Peek returns the byte under the cursor or 0 at the end.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt looks n bytes ahead; 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := c.pos + n; i < c.end() {
		return c.src[i]
	}
	return 0
}

// PeekRune decodes the rune under the cursor. size is 0 at the end.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.AtEnd() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.pos]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.src[c.pos:])
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.AtEnd() {
		c.pos++
	}
	return b
}

// BumpRune consumes one rune, or one byte of malformed UTF-8.
func (c *Cursor) BumpRune() {
	if _, size := c.PeekRune(); size > 0 {
		c.pos += uint32(size) //nolint:gosec // size <= utf8.UTFMax
	}
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.AtEnd() || c.src[c.pos] != b {
		return false
	}
	c.pos++
	return true
}

// SkipWhile consumes bytes while keep holds and returns how many it took.
func (c *Cursor) SkipWhile(keep func(byte) bool) int {
	from := c.pos
	for !c.AtEnd() && keep(c.src[c.pos]) {
		c.pos++
	}
	return int(c.pos - from)
}

// Finish moves the cursor past the last byte.
func (c *Cursor) Finish() { c.pos = c.end() }

func (c *Cursor) Mark() Mark { return Mark(c.pos) }

// Rewind returns to a saved position.
func (c *Cursor) Rewind(m Mark) { c.pos = uint32(m) }

// SpanFrom covers [m, pos).
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.pos}
}

// Text returns the bytes of sp; sp must belong to this cursor's file.
func (c *Cursor) Text(sp source.Span) string {
	return string(c.src[sp.Start:sp.End])
}
