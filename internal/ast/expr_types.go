package ast

import (
	"calc/internal/source"
)

// ExprKind enumerates the closed set of expression shapes.
type ExprKind uint8

const (
	// ExprNumber is an integer literal (digits only, never signed).
	ExprNumber ExprKind = iota + 1
	// ExprFloat is digits '.' digits.
	ExprFloat
	// ExprParen is '(' inner ')'.
	ExprParen
	// ExprBinary is left op right.
	ExprBinary
	// ExprNeg is unary minus; "--5" is two nested ExprNeg nodes.
	ExprNeg
	// ExprError is a placeholder produced by best-effort recovery.
	ExprError
)

var exprKindNames = [...]string{
	ExprNumber: "NumberLiteral",
	ExprFloat:  "FloatLiteral",
	ExprParen:  "ParenExpr",
	ExprBinary: "BinaryExpr",
	ExprNeg:    "NegExpr",
	ExprError:  "Error",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) && exprKindNames[k] != "" {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// ParseExprKind is the inverse of ExprKind.String.
func ParseExprKind(s string) (ExprKind, bool) {
	for k, name := range exprKindNames {
		if name != "" && name == s {
			return ExprKind(k), true
		}
	}
	return 0, false
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	}
	return "?"
}

// ParseBinaryOp maps "+", "-", "*", "/" to operators.
func ParseBinaryOp(s string) (ExprBinaryOp, bool) {
	switch s {
	case "+":
		return ExprBinaryAdd, true
	case "-":
		return ExprBinarySub, true
	case "*":
		return ExprBinaryMul, true
	case "/":
		return ExprBinaryDiv, true
	}
	return 0, false
}

// ExprLiteralData holds the exact source text of a number literal.
type ExprLiteralData struct {
	Value string
}

type ExprBinaryData struct {
	Op     ExprBinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

// ExprParenData is the payload of ExprParen. Closed is false when recovery
// synthesized the ')' at end of input.
type ExprParenData struct {
	Inner  ExprID
	Closed bool
}

type ExprNegData struct {
	OpSpan  source.Span
	Operand ExprID
}
