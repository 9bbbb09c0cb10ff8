package parser

import (
	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/fix"
	"calc/internal/token"
)

// parseExpression := additive
func (p *Parser) parseExpression() (ast.ExprID, bool) {
	return p.parseBinary(precAdditive)
}

// parseBinary: precedence climbing, операнд, затем все операторы с приоритетом >= minPrec.
// additive и multiplicative это parseBinary(precAdditive) и parseBinary(precMultiplicative).
func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseBinaryTail(left, minPrec)
}

// parseBinaryTail folds operators onto an already parsed left operand.
// Recovery reuses it to resume after discarded input.
func (p *Parser) parseBinaryTail(left ast.ExprID, minPrec int) (ast.ExprID, bool) {
	for {
		prec := binaryPrec(p.lx.Peek().Kind)
		if prec == precNone || prec < minPrec {
			return left, true
		}
		opTok := p.advance()

		// prec+1: правый операнд не может содержать оператор того же уровня,
		// поэтому a - b - c сворачивается влево.
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.exprs.NewBinary(tokenKindToBinaryOp(opTok.Kind), opTok.Span, left, right)
	}
}

// parseUnary := '-' unary | primary
func (p *Parser) parseUnary() (ast.ExprID, bool) {
	if !p.at(token.Minus) {
		return p.parsePrimary()
	}
	opTok := p.advance()
	if !p.enter(opTok) {
		return p.fatalNode(opTok)
	}
	operand, ok := p.parseUnary()
	p.leave()
	if !ok {
		return ast.NoExprID, false
	}
	return p.exprs.NewNeg(opTok.Span, operand), true
}

// parsePrimary := Number | Float | '(' expression ')'
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.exprs.NewNumber(tok.Span, tok.Text), true
	case token.FloatLit:
		p.advance()
		return p.exprs.NewFloat(tok.Span, tok.Text), true
	case token.LParen:
		return p.parseParen()
	case token.Invalid:
		span, _ := p.skipInvalid()
		if p.strict() {
			return ast.NoExprID, false
		}
		// мусор перед нормальным операндом просто выбрасываем
		if !p.fatal && p.lx.Peek().CanStartExpr() {
			return p.parseUnary()
		}
		return p.exprs.NewError(span), true
	}

	// ')', бинарный оператор или EOF: операнда нет, токен не трогаем
	p.report(diag.SynExpectExpression, tok.Span, "expected expression, found "+describe(tok)).Emit()
	if p.strict() {
		return ast.NoExprID, false
	}
	return p.exprs.NewError(tok.Span.ZeroAt()), true
}

func (p *Parser) parseParen() (ast.ExprID, bool) {
	open := p.advance()
	if !p.enter(open) {
		return p.fatalNode(open)
	}
	defer p.leave()

	inner, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.RParen) {
		closeTok := p.advance()
		return p.exprs.NewParen(open.Span.Cover(closeTok.Span), inner, true), true
	}

	if p.strict() {
		if tok := p.lx.Peek(); tok.Kind == token.Invalid {
			p.noteInvalid(tok.Span)
		} else {
			p.reportUnclosed(open, tok)
		}
		return ast.NoExprID, false
	}
	return p.closeParen(open, inner), true
}

// reportUnclosed reports the missing ')' at tok, where it was expected.
func (p *Parser) reportUnclosed(open, tok token.Token) {
	if tok.Kind == token.EOF {
		p.report(diag.SynUnclosedParen, tok.Span, "expected ')' before end of input").
			WithNote(open.Span, "'(' opened here").
			WithFix("insert ')'", fix.Insert(tok.Span, ")")).
			Emit()
		return
	}
	p.report(diag.SynUnclosedParen, tok.Span, "expected ')', found "+describe(tok)).
		WithNote(open.Span, "'(' opened here").
		Emit()
}
