package lexer

import (
	"calc/internal/token"
)

// scanOperatorOrPunct: все операторы и скобки односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	switch lx.cursor.Bump() {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	}
	lx.cursor.Rewind(start)
	return lx.scanInvalid()
}
