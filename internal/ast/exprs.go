package ast

import (
	"calc/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[ExprLiteralData]
	Binaries *Arena[ExprBinaryData]
	Parens   *Arena[ExprParenData]
	Negs     *Arena[ExprNegData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Literals: NewArena[ExprLiteralData](capHint / 2),
		Binaries: NewArena[ExprBinaryData](capHint / 2),
		Parens:   NewArena[ExprParenData](capHint / 4),
		Negs:     NewArena[ExprNegData](capHint / 4),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID, or nil for NoExprID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len returns the number of allocated nodes.
func (e *Exprs) Len() uint32 {
	return e.Arena.Len()
}

// NewNumber creates an integer literal.
func (e *Exprs) NewNumber(span source.Span, value string) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Value: value})
	return e.new(ExprNumber, span, PayloadID(payload))
}

// NewFloat creates a float literal.
func (e *Exprs) NewFloat(span source.Span, value string) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Value: value})
	return e.new(ExprFloat, span, PayloadID(payload))
}

// Literal returns the literal data for number and float nodes.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprNumber && expr.Kind != ExprFloat) {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary expression spanning left.Start..right.End.
func (e *Exprs) NewBinary(op ExprBinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	span := e.Get(left).Span.Cover(e.Get(right).Span)
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewParen creates a parenthesized expression; span includes both parens.
func (e *Exprs) NewParen(span source.Span, inner ExprID, closed bool) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Inner: inner, Closed: closed})
	return e.new(ExprParen, span, PayloadID(payload))
}

// Paren returns the paren data for the given expression ID.
func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

// NewNeg creates a unary minus covering the operator and its operand.
func (e *Exprs) NewNeg(opSpan source.Span, operand ExprID) ExprID {
	span := opSpan.Cover(e.Get(operand).Span)
	payload := e.Negs.Allocate(ExprNegData{OpSpan: opSpan, Operand: operand})
	return e.new(ExprNeg, span, PayloadID(payload))
}

// Neg returns the negation data for the given expression ID.
func (e *Exprs) Neg(id ExprID) (*ExprNegData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNeg {
		return nil, false
	}
	return e.Negs.Get(uint32(expr.Payload)), true
}

// NewError creates a recovery placeholder.
func (e *Exprs) NewError(span source.Span) ExprID {
	return e.new(ExprError, span, NoPayloadID)
}
