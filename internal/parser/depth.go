package parser

import (
	"fmt"

	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/token"
)

// enter counts one level of '(' or unary '-' nesting. When the limit is
// exceeded it reports NestingTooDeep once and drops the rest of the input.
// The caller must call leave only when enter returned true.
func (p *Parser) enter(at token.Token) bool {
	if p.depth >= p.opts.maxDepth() {
		p.report(diag.SynNestingTooDeep, at.Span,
			fmt.Sprintf("expression nests deeper than %d levels", p.opts.maxDepth())).Emit()
		p.stop()
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// fatalNode is what a nesting overflow yields: nothing in strict mode,
// a placeholder in best-effort mode.
func (p *Parser) fatalNode(at token.Token) (ast.ExprID, bool) {
	if p.strict() {
		return ast.NoExprID, false
	}
	return p.exprs.NewError(at.Span), true
}
