package parser

import (
	"calc/internal/diag"
	"calc/internal/source"
	"calc/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// skipInvalid consumes a run of Invalid tokens. The lexer has already
// reported each of them; the parser only counts them. In strict mode the
// first one stops the parse, so the rest of the run is never lexed.
func (p *Parser) skipInvalid() (source.Span, bool) {
	if !p.at(token.Invalid) {
		return source.Span{}, false
	}
	span := p.advance().Span
	p.noteInvalid(span)
	for !p.fatal && p.at(token.Invalid) {
		tok := p.advance()
		p.noteInvalid(tok.Span)
		span = span.Cover(tok.Span)
	}
	return span, true
}

func (p *Parser) noteInvalid(sp source.Span) {
	p.opts.CurrentErrors++
	p.lastErr, p.hasErr = sp.Start, true
	p.checkBudget()
}

// report emits a parser diagnostic unless the parse already went fatal.
// The returned builder may be nil; its methods are nil-safe.
func (p *Parser) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	if p.fatal {
		return nil
	}
	p.opts.CurrentErrors++
	p.lastErr, p.hasErr = sp.Start, true
	var b *diag.ReportBuilder
	if p.opts.Reporter != nil {
		b = diag.ReportError(p.opts.Reporter, code, sp, msg)
	}
	p.checkBudget()
	return b
}

// checkBudget stops the parse once MaxErrors is reached, or at the first
// error in strict mode.
func (p *Parser) checkBudget() {
	if !p.fatal && (p.strict() || p.opts.Enough()) {
		p.stop()
	}
}

// stop drops the remaining input; later reports are suppressed.
func (p *Parser) stop() {
	p.fatal = true
	p.lx.SkipToEOF()
}

// erroredAt reports whether the last diagnostic started at off.
func (p *Parser) erroredAt(off uint32) bool {
	return p.hasErr && p.lastErr == off
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.IntLit, token.FloatLit:
		return "number '" + tok.Text + "'"
	case token.Invalid:
		return "'" + tok.Text + "'"
	}
	return "'" + tok.Kind.Symbol() + "'"
}
