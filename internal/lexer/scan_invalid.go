package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"calc/internal/diag"
	"calc/internal/fix"
	"calc/internal/token"

	"golang.org/x/text/width"
)

// scanInvalid consumes exactly one rune (or one byte of broken UTF-8) and
// reports it. The token is handed to the parser; skipping is its decision.
func (lx *Lexer) scanInvalid() token.Token {
	start := lx.cursor.Mark()
	r, size := lx.cursor.PeekRune()
	lx.cursor.BumpRune()
	tok := lx.emit(token.Invalid, start)

	if r == utf8.RuneError && size <= 1 {
		lx.errLex(diag.LexUnknownChar, tok.Span,
			fmt.Sprintf("invalid UTF-8 byte 0x%02X", tok.Text[0])).Emit()
		return tok
	}

	b := lx.errLex(diag.LexUnknownChar, tok.Span, "invalid character "+describeRune(r))
	if narrow, ok := narrowForm(tok.Text); ok {
		b = b.WithNote(tok.Span, fmt.Sprintf("this looks like a full-width form of '%s'", narrow)).
			WithFix(fmt.Sprintf("replace with '%s'", narrow), fix.Replace(tok.Span, narrow, tok.Text))
	}
	b.Emit()
	return tok
}

// narrowForm maps full-width digits, operators and parens to their ASCII spelling.
func narrowForm(s string) (string, bool) {
	n := width.Narrow.String(s)
	if n == s || len(n) != 1 {
		return "", false
	}
	if c := n[0]; isDec(c) || isOpByte(c) || c == '.' {
		return n, true
	}
	return "", false
}

func describeRune(r rune) string {
	if unicode.IsPrint(r) && !unicode.IsSpace(r) {
		return fmt.Sprintf("'%c'", r)
	}
	return fmt.Sprintf("%U", r)
}
