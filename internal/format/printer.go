package format

import (
	"calc/internal/ast"
)

type Options struct {
	// Compact drops the spaces around binary operators.
	Compact bool
	// ErrorText is printed for recovery placeholders.
	ErrorText string
}

func (o Options) withDefaults() Options {
	if o.ErrorText == "" {
		o.ErrorText = "<error>"
	}
	return o
}

type printer struct {
	exprs  *ast.Exprs
	writer *Writer
}

// Expr prints the tree rooted at id. An invalid id prints as "".
func Expr(exprs *ast.Exprs, id ast.ExprID, opt Options) string {
	opt = opt.withDefaults()
	p := printer{
		exprs:  exprs,
		writer: NewWriter(int(exprs.Len())*4, opt),
	}
	p.printExpr(id)
	return p.writer.String()
}

func (p *printer) printExpr(id ast.ExprID) {
	expr := p.exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprNumber, ast.ExprFloat:
		lit, _ := p.exprs.Literal(id)
		p.writer.WriteString(lit.Value)
	case ast.ExprParen:
		data, _ := p.exprs.Paren(id)
		_ = p.writer.WriteByte('(')
		p.printExpr(data.Inner)
		_ = p.writer.WriteByte(')')
	case ast.ExprNeg:
		data, _ := p.exprs.Neg(id)
		_ = p.writer.WriteByte('-')
		p.printOperand(data.Operand, p.strength(data.Operand) < strengthUnary)
	case ast.ExprBinary:
		data, _ := p.exprs.Binary(id)
		prec := binaryStrength(data.Op)
		p.printOperand(data.Left, p.strength(data.Left) < prec)
		p.writer.Operator(data.Op.String())
		// операторы левоассоциативны: справа равный приоритет тоже в скобках
		p.printOperand(data.Right, p.strength(data.Right) <= prec)
	case ast.ExprError:
		p.writer.WriteString(p.writer.opt.ErrorText)
	}
}

// Binding strength of a printed subtree. Trees from the parser carry their
// own paren nodes; recovery and hand-built trees may not, so the printer adds
// the parens a re-parse needs to get the same shape back.
const (
	strengthAdditive = iota + 1
	strengthMultiplicative
	strengthUnary
	strengthAtom
)

func binaryStrength(op ast.ExprBinaryOp) int {
	if op == ast.ExprBinaryMul || op == ast.ExprBinaryDiv {
		return strengthMultiplicative
	}
	return strengthAdditive
}

func (p *printer) strength(id ast.ExprID) int {
	expr := p.exprs.Get(id)
	if expr == nil {
		return strengthAtom
	}
	switch expr.Kind {
	case ast.ExprBinary:
		data, _ := p.exprs.Binary(id)
		return binaryStrength(data.Op)
	case ast.ExprNeg:
		return strengthUnary
	}
	return strengthAtom
}

func (p *printer) printOperand(id ast.ExprID, wrap bool) {
	if !wrap {
		p.printExpr(id)
		return
	}
	_ = p.writer.WriteByte('(')
	p.printExpr(id)
	_ = p.writer.WriteByte(')')
}
