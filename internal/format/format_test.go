package format_test

import (
	"context"
	"errors"
	"testing"

	"calc/internal/ast"
	"calc/internal/format"
	"calc/internal/source"
)

func file(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("fmt.calc", []byte(content)))
}

func TestSourceCanonicalSpacing(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1+2", "1 + 2"},
		{"  ( 2+3 )*4  ", "(2 + 3) * 4"},
		{"- - 5", "--5"},
		{"5--5", "5 - -5"},
		{"-(1)/2.50", "-(1) / 2.50"},
		{"1 +\n 2\n", "1 + 2\n"},
	}
	for _, tt := range tests {
		out, _, err := format.Source(context.Background(), file(tt.in), format.Options{}, 16)
		if err != nil {
			t.Fatalf("Source(%q): %v", tt.in, err)
		}
		if string(out) != tt.want {
			t.Errorf("Source(%q) = %q, want %q", tt.in, out, tt.want)
		}
	}
}

func TestSourceRejectsBrokenInput(t *testing.T) {
	_, bag, err := format.Source(context.Background(), file("(1 +"), format.Options{}, 16)
	if !errors.Is(err, format.ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
	if bag == nil || !bag.HasErrors() {
		t.Fatal("expected diagnostics explaining the failure")
	}
}

func TestExprCompactAndPlaceholders(t *testing.T) {
	e := ast.NewExprs(0)
	sp := source.Span{}
	root := e.NewBinary(ast.ExprBinaryMul, sp, e.NewNumber(sp, "2"), e.NewError(sp))
	if got := format.Expr(e, root, format.Options{Compact: true}); got != "2*<error>" {
		t.Errorf("compact = %q", got)
	}
	if got := format.Expr(e, root, format.Options{ErrorText: "?"}); got != "2 * ?" {
		t.Errorf("custom placeholder = %q", got)
	}
	if got := format.Expr(e, ast.NoExprID, format.Options{}); got != "" {
		t.Errorf("invalid root printed %q", got)
	}
}

func TestExprAddsMissingParens(t *testing.T) {
	e := ast.NewExprs(0)
	sp := source.Span{}
	num := func(v string) ast.ExprID { return e.NewNumber(sp, v) }
	bin := func(op ast.ExprBinaryOp, l, r ast.ExprID) ast.ExprID { return e.NewBinary(op, sp, l, r) }

	tests := []struct {
		name string
		root ast.ExprID
		want string
	}{
		{"sum under product", bin(ast.ExprBinaryMul, bin(ast.ExprBinaryAdd, num("1"), num("2")), num("3")), "(1 + 2) * 3"},
		{"product under sum", bin(ast.ExprBinaryAdd, num("1"), bin(ast.ExprBinaryMul, num("2"), num("3"))), "1 + 2 * 3"},
		{"left chain", bin(ast.ExprBinarySub, bin(ast.ExprBinarySub, num("8"), num("3")), num("2")), "8 - 3 - 2"},
		{"right nested", bin(ast.ExprBinarySub, num("8"), bin(ast.ExprBinarySub, num("3"), num("2"))), "8 - (3 - 2)"},
		{"division on the right", bin(ast.ExprBinaryDiv, num("8"), bin(ast.ExprBinaryMul, num("2"), num("2"))), "8 / (2 * 2)"},
		{"negated sum", e.NewNeg(sp, bin(ast.ExprBinaryAdd, num("1"), num("2"))), "-(1 + 2)"},
		{"double negation", e.NewNeg(sp, e.NewNeg(sp, num("5"))), "--5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format.Expr(e, tt.root, format.Options{}); got != tt.want {
				t.Errorf("Expr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckRoundTrip(t *testing.T) {
	for _, in := range []string{"42", "2 + 3 * 4", "8 - (3 - 2)", "--5", "5 - -5", "((1.5))/-(2*3)"} {
		if ok, report := format.CheckRoundTrip(context.Background(), file(in), 16); !ok {
			t.Errorf("round trip %q: %s", in, report)
		}
	}
	if ok, _ := format.CheckRoundTrip(context.Background(), file("1 +"), 16); ok {
		t.Error("broken input must not pass the round trip check")
	}
}
