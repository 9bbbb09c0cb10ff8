package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"calc/internal/ast"
	"calc/internal/source"
)

// CheckSpanInvariants runs structural span checks on a parsed tree:
// 1) every span points into sf and stays within its content
// 2) every child span is contained in its parent span
// 3) a binary span covers left.Start..right.End and its operator lies between them
// 4) literal spans hold exactly the literal text
// 5) a closed paren starts with '(' and ends with ')'
func CheckSpanInvariants(exprs *ast.Exprs, root ast.ExprID, sf *source.File) error {
	if exprs == nil || sf == nil {
		return fmt.Errorf("nil exprs or file")
	}
	if !root.IsValid() {
		return nil
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var failure error
	exprs.Walk(root, func(id ast.ExprID, expr *ast.Expr) bool {
		if failure != nil {
			return false
		}
		failure = checkNode(exprs, id, expr, sf, size)
		return failure == nil
	})
	return failure
}

func checkNode(exprs *ast.Exprs, id ast.ExprID, expr *ast.Expr, sf *source.File, size uint32) error {
	sp := expr.Span
	if sp.File != sf.ID {
		return fmt.Errorf("expr %d: span file mismatch: got=%d want=%d", id, sp.File, sf.ID)
	}
	if sp.Start > sp.End || sp.End > size {
		return fmt.Errorf("expr %d: span %v outside content of %d bytes", id, sp, size)
	}
	for _, c := range exprs.Children(id) {
		child := exprs.Get(c.ID)
		if child == nil {
			return fmt.Errorf("expr %d: missing %s child", id, c.Role)
		}
		if !sp.Contains(child.Span) {
			return fmt.Errorf("expr %d: %s child span %v escapes %v", id, c.Role, child.Span, sp)
		}
	}

	text := func(s source.Span) string { return string(sf.Content[s.Start:s.End]) }
	switch expr.Kind {
	case ast.ExprNumber, ast.ExprFloat:
		lit, _ := exprs.Literal(id)
		if got := text(sp); got != lit.Value {
			return fmt.Errorf("expr %d: literal %q spans text %q", id, lit.Value, got)
		}
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		left, right := exprs.Get(data.Left).Span, exprs.Get(data.Right).Span
		if sp.Start != left.Start || sp.End != right.End {
			return fmt.Errorf("expr %d: binary span %v does not cover %v..%v", id, sp, left, right)
		}
		if data.OpSpan.Start < left.End || data.OpSpan.End > right.Start {
			return fmt.Errorf("expr %d: operator span %v not between operands", id, data.OpSpan)
		}
		if got := text(data.OpSpan); got != data.Op.String() {
			return fmt.Errorf("expr %d: operator %q spans text %q", id, data.Op, got)
		}
	case ast.ExprParen:
		data, _ := exprs.Paren(id)
		if sp.Empty() || sf.Content[sp.Start] != '(' {
			return fmt.Errorf("expr %d: paren span %v does not start with '('", id, sp)
		}
		if data.Closed && sf.Content[sp.End-1] != ')' {
			return fmt.Errorf("expr %d: closed paren span %v does not end with ')'", id, sp)
		}
	case ast.ExprNeg:
		data, _ := exprs.Neg(id)
		if got := text(data.OpSpan); got != "-" {
			return fmt.Errorf("expr %d: negation operator spans %q", id, got)
		}
	}
	return nil
}
