package lexer

import (
	"fmt"

	"calc/internal/diag"
	"calc/internal/fix"
	"calc/internal/token"
)

// scanNumber: [0-9]+ или [0-9]+ '.' [0-9]+.
// Точка без цифр после неё не входит в литерал: "3." даёт IntLit "3",
// а '.' достаётся следующему вызову Next и там репортится как BadNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	lx.cursor.SkipWhile(isDec)
	if lx.cursor.Peek() == '.' {
		if isDec(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump() // '.'
			lx.cursor.SkipWhile(isDec)
			kind = token.FloatLit
		} else {
			lx.danglingDot = lx.cursor.Pos()
			lx.hasDangling = true
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp,
			fmt.Sprintf("number literal is %d bytes long, the limit is %d", sp.Len(), maxTokenLength)).Emit()
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(kind, start)
}

// scanStrayDot handles a '.' that does not sit between two digit runs.
func (lx *Lexer) scanStrayDot() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	tok := lx.emit(token.Invalid, start)

	if lx.hasDangling && lx.danglingDot == tok.Span.Start {
		lx.hasDangling = false
		lx.errLex(diag.LexBadNumber, tok.Span, "expected digit after '.'").
			WithNote(tok.Span, "a float literal needs digits on both sides of '.'").
			WithFix("insert \"0\" after '.'", fix.InsertAfter(tok.Span, "0")).
			Emit()
		return tok
	}

	b := lx.errLex(diag.LexUnknownChar, tok.Span, "invalid character '.'")
	if isDec(lx.cursor.Peek()) {
		b = b.WithFix("insert \"0\" before '.'", fix.InsertBefore(tok.Span, "0"))
	}
	b.Emit()
	return tok
}
