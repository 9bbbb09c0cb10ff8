package parser

import (
	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/fix"
	"calc/internal/token"
)

// rejectTrailing reports the first token after a complete expression (strict mode).
func (p *Parser) rejectTrailing() {
	tok := p.lx.Peek()
	if tok.Kind == token.Invalid {
		p.noteInvalid(tok.Span)
		return
	}
	p.reportTrailing(tok)
}

// recoverTrailing discards input after a complete expression one token at a
// time. A binary operator found after discarded input resumes folding onto
// root, so "1 ) + 2" still yields 1 + 2. One report covers a whole run of junk.
func (p *Parser) recoverTrailing(root ast.ExprID) ast.ExprID {
	reported := false
	for !p.at(token.EOF) {
		tok := p.lx.Peek()
		if tok.Kind == token.Invalid {
			p.skipInvalid()
		} else {
			if !reported && !p.erroredAt(tok.Span.Start) {
				p.reportTrailing(tok)
			}
			reported = true
			p.discard()
		}
		if p.lx.Peek().IsBinaryOp() {
			root, _ = p.parseBinaryTail(root, precAdditive)
			reported = false
		}
	}
	return root
}

// closeParen recovers a group whose ')' does not directly follow the inner
// expression: junk is dropped up to the matching ')' or end of input.
func (p *Parser) closeParen(open token.Token, inner ast.ExprID) ast.ExprID {
	reported := false
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.RParen:
			closeTok := p.advance()
			return p.exprs.NewParen(open.Span.Cover(closeTok.Span), inner, true)
		case token.EOF:
			if !reported {
				p.reportUnclosed(open, tok)
			}
			return p.exprs.NewParen(open.Span.Cover(p.lastSpan), inner, false)
		case token.Invalid:
			p.skipInvalid()
		default:
			if !reported && !p.erroredAt(tok.Span.Start) {
				p.reportUnclosed(open, tok)
			}
			reported = true
			p.discard()
		}
		if p.lx.Peek().IsBinaryOp() {
			inner, _ = p.parseBinaryTail(inner, precAdditive)
			reported = false
		}
	}
}

// discard drops one token; a '(' takes its whole balanced group with it.
func (p *Parser) discard() {
	if !p.at(token.LParen) {
		p.advance()
		return
	}
	depth := 0
	for {
		tok := p.advance()
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		case token.Invalid:
			p.noteInvalid(tok.Span)
		case token.EOF:
			return
		}
		if depth == 0 {
			return
		}
	}
}

// reportTrailing reports tok as input left over after a complete expression.
// An unmatched ')' gets a fix that deletes it.
func (p *Parser) reportTrailing(tok token.Token) {
	b := p.report(diag.SynUnexpectedTrailingInput, tok.Span, trailingMessage(tok))
	if tok.Kind == token.RParen {
		b = b.WithFix("remove unmatched ')'", fix.Delete(tok.Span, ")"))
	}
	b.Emit()
}

func trailingMessage(tok token.Token) string {
	if tok.Kind == token.RParen {
		return "unmatched ')'"
	}
	return "unexpected " + describe(tok) + " after complete expression"
}
