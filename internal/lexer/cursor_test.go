package lexer

import (
	"testing"

	"calc/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.calc", []byte(content))
	return fs.Get(id)
}

func TestCursorBumpUntilEnd(t *testing.T) {
	c := NewCursor(createFile("1\n+"))
	for _, want := range []byte("1\n+") {
		if c.AtEnd() {
			t.Fatalf("unexpected end before %q", want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !c.AtEnd() || c.Peek() != 0 || c.Bump() != 0 || c.Pos() != 3 {
		t.Fatalf("cursor past the end: pos=%d", c.Pos())
	}
}

func TestCursorLookahead(t *testing.T) {
	c := NewCursor(createFile("12.5"))
	m := c.Mark()
	if n := c.SkipWhile(isDec); n != 2 {
		t.Fatalf("SkipWhile = %d, want 2", n)
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 || c.Text(sp) != "12" {
		t.Fatalf("SpanFrom = %v", sp)
	}
	if c.PeekAt(1) != '5' || c.PeekAt(2) != 0 {
		t.Fatalf("PeekAt: %q %q", c.PeekAt(1), c.PeekAt(2))
	}
	if !c.Eat('.') || c.Eat('.') {
		t.Fatal("Eat must consume exactly one matching byte")
	}
	c.Rewind(m)
	if c.Peek() != '1' {
		t.Fatalf("Rewind did not move back, Peek() = %q", c.Peek())
	}
	c.Finish()
	if !c.AtEnd() {
		t.Fatal("Finish must move to the end")
	}
}

func TestCursorRunes(t *testing.T) {
	c := NewCursor(createFile("＋\xff"))
	r, size := c.PeekRune()
	if r != '＋' || size != 3 {
		t.Fatalf("PeekRune = %q/%d", r, size)
	}
	c.BumpRune()
	if _, size := c.PeekRune(); size != 1 {
		t.Fatalf("broken byte size = %d, want 1", size)
	}
	c.BumpRune()
	if _, size := c.PeekRune(); size != 0 || !c.AtEnd() {
		t.Fatal("expected end after two runes")
	}
}
