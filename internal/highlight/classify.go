// Package highlight assigns display classes to the tokens of an expression
// and paints them for terminals.
package highlight

import (
	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/source"
	"calc/internal/token"
)

// Class is a highlight capture name.
type Class string

const (
	ClassNumber   Class = "number"
	ClassFloat    Class = "float"
	ClassOperator Class = "operator"
	ClassBracket  Class = "punctuation.bracket"
	ClassError    Class = "error"
)

// Region is a classified byte range of the source.
type Region struct {
	Span  source.Span
	Class Class
}

// Classify maps tokens to regions in source order. EOF is dropped.
// A ')' with no opener and a '(' that is never closed are both classified as errors.
func Classify(tokens []token.Token) []Region {
	regions := make([]Region, 0, len(tokens))
	open := make([]int, 0, 8) // индексы незакрытых '(' в regions
	for _, tok := range tokens {
		var class Class
		switch tok.Kind {
		case token.EOF:
			continue
		case token.IntLit:
			class = ClassNumber
		case token.FloatLit:
			class = ClassFloat
		case token.Plus, token.Minus, token.Star, token.Slash:
			class = ClassOperator
		case token.LParen:
			open = append(open, len(regions))
			class = ClassBracket
		case token.RParen:
			if len(open) == 0 {
				class = ClassError
				break
			}
			open = open[:len(open)-1]
			class = ClassBracket
		default:
			class = ClassError
		}
		regions = append(regions, Region{Span: tok.Span, Class: class})
	}
	for _, idx := range open {
		regions[idx].Class = ClassError
	}
	return regions
}

// ClassifyText lexes text on its own and classifies the result.
func ClassifyText(text string) []Region {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<highlight>", []byte(text))
	return Classify(lexer.New(fs.Get(id), lexer.Options{}).All())
}

// MarkErrors reclassifies every region overlapped by the primary span of an
// error diagnostic. Zero-width spans mark the region that starts there.
func MarkErrors(regions []Region, diags []diag.Diagnostic) {
	for i := range diags {
		d := &diags[i]
		if !d.IsError() {
			continue
		}
		for j := range regions {
			r := &regions[j]
			if r.Span.File != d.Primary.File {
				continue
			}
			if overlaps(r.Span, d.Primary) {
				r.Class = ClassError
			}
		}
	}
}

func overlaps(region, mark source.Span) bool {
	if mark.Empty() {
		return region.Start == mark.Start
	}
	return region.Start < mark.End && mark.Start < region.End
}
