package token

import (
	"calc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == FloatLit
}

// IsBinaryOp reports whether the token can join two operands.
func (t Token) IsBinaryOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}

// CanStartExpr reports whether an expression may begin with this token.
func (t Token) CanStartExpr() bool {
	switch t.Kind {
	case IntLit, FloatLit, LParen, Minus:
		return true
	default:
		return false
	}
}

// CanContinueExpr reports whether the token may legally follow a complete operand.
func (t Token) CanContinueExpr() bool {
	return t.IsBinaryOp() || t.Kind == RParen || t.Kind == EOF
}
