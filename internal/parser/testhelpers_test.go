package parser_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/parser"
	"calc/internal/source"
)

type parsed struct {
	res     parser.Result
	builder *ast.Builder
	bag     *diag.Bag
}

func parseInput(t *testing.T, input string, opts parser.Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte(input))
	bag := diag.NewBag(256)
	rep := diag.BagReporter{Bag: bag}
	opts.Reporter = rep

	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: rep})
	res, err := parser.ParseExpr(context.Background(), lx, builder, opts)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", input, err)
	}
	bag.Normalize()
	return parsed{res: res, builder: builder, bag: bag}
}

func strict(t *testing.T, input string) parsed {
	t.Helper()
	return parseInput(t, input, parser.Options{})
}

func bestEffort(t *testing.T, input string) parsed {
	t.Helper()
	return parseInput(t, input, parser.Options{Recovery: parser.RecoveryBestEffort})
}

// sexpr renders a tree compactly: (+ 1 2), (paren x), (neg x), <err>.
func sexpr(e *ast.Exprs, id ast.ExprID) string {
	expr := e.Get(id)
	if expr == nil {
		return "<nil>"
	}
	switch expr.Kind {
	case ast.ExprNumber, ast.ExprFloat:
		lit, _ := e.Literal(id)
		return lit.Value
	case ast.ExprParen:
		p, _ := e.Paren(id)
		return "(paren " + sexpr(e, p.Inner) + ")"
	case ast.ExprNeg:
		n, _ := e.Neg(id)
		return "(neg " + sexpr(e, n.Operand) + ")"
	case ast.ExprBinary:
		b, _ := e.Binary(id)
		return fmt.Sprintf("(%s %s %s)", b.Op, sexpr(e, b.Left), sexpr(e, b.Right))
	case ast.ExprError:
		return "<err>"
	}
	return "?"
}

func (p parsed) tree() string {
	return sexpr(p.builder.Exprs, p.res.Root)
}

// diags renders the normalized bag as CODE@start-end.
func (p parsed) diags() string {
	parts := make([]string, 0, p.bag.Len())
	for _, d := range p.bag.Items() {
		parts = append(parts, fmt.Sprintf("%s@%d-%d", d.Code.ID(), d.Primary.Start, d.Primary.End))
	}
	return strings.Join(parts, " ")
}
