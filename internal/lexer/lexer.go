package lexer

import (
	"calc/internal/source"
	"calc/internal/token"
)

// Lexer turns one expression source into tokens on demand.
// The cursor only moves forward; Peek buffers a single token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена

	// offset of a '.' that directly followed a digit run with no fraction ("3.")
	danglingDot uint32
	hasDangling bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the source being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.AtEnd() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.':
		return lx.scanStrayDot()
	case isOpByte(ch):
		return lx.scanOperatorOrPunct()
	default:
		return lx.scanInvalid()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// SkipToEOF drops the rest of the input without reporting anything.
// The parser calls it after a fatal error such as excessive nesting.
func (lx *Lexer) SkipToEOF() {
	lx.look = nil
	lx.cursor.Finish()
}

// All drains the lexer, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Pos(), End: lx.cursor.Pos()}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: lx.cursor.Text(sp),
	}
}
