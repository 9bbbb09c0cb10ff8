package lexer

import (
	"calc/internal/diag"
	"calc/internal/source"
)

// maxTokenLength bounds a single literal; longer digit runs become Invalid.
const maxTokenLength = 4096

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	if lx.opts.Reporter == nil {
		return nil
	}
	return diag.ReportError(lx.opts.Reporter, code, sp, msg)
}
