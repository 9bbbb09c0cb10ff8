package ast

// Equal reports whether two trees have the same shape, operators and literal
// text. Spans and the Closed flag of parens are ignored.
func Equal(a *Exprs, ai ExprID, b *Exprs, bi ExprID) bool {
	ea, eb := a.Get(ai), b.Get(bi)
	if ea == nil || eb == nil {
		return ea == nil && eb == nil
	}
	if ea.Kind != eb.Kind {
		return false
	}
	switch ea.Kind {
	case ExprNumber, ExprFloat:
		la, _ := a.Literal(ai)
		lb, _ := b.Literal(bi)
		return la.Value == lb.Value
	case ExprBinary:
		ba, _ := a.Binary(ai)
		bb, _ := b.Binary(bi)
		return ba.Op == bb.Op &&
			Equal(a, ba.Left, b, bb.Left) &&
			Equal(a, ba.Right, b, bb.Right)
	case ExprParen:
		pa, _ := a.Paren(ai)
		pb, _ := b.Paren(bi)
		return Equal(a, pa.Inner, b, pb.Inner)
	case ExprNeg:
		na, _ := a.Neg(ai)
		nb, _ := b.Neg(bi)
		return Equal(a, na.Operand, b, nb.Operand)
	}
	return true
}
