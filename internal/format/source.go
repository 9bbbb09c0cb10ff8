package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/parser"
	"calc/internal/source"
)

// ErrSyntax is returned when the input does not parse cleanly; formatting a
// partial tree would silently drop input.
var ErrSyntax = errors.New("format: source has syntax errors")

// Source parses sf strictly and returns its canonical text. A trailing
// newline in the input is kept. On ErrSyntax the bag explains why.
func Source(ctx context.Context, sf *source.File, opt Options, maxDiagnostics int) ([]byte, *diag.Bag, error) {
	if sf == nil {
		return nil, nil, errors.New("format: nil source file")
	}
	builder, root, bag, err := parseOnce(ctx, sf, maxDiagnostics)
	if err != nil {
		return nil, bag, err
	}
	if !root.IsValid() || bag.HasErrors() {
		return nil, bag, ErrSyntax
	}
	out := []byte(Expr(builder.Exprs, root, opt))
	if bytes.HasSuffix(sf.Content, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, bag, nil
}

// CheckRoundTrip parses sf, prints it, re-parses the printed text and compares
// both trees structurally. It returns (ok, report).
func CheckRoundTrip(ctx context.Context, sf *source.File, maxDiagnostics int) (bool, string) {
	firstBuilder, firstRoot, firstBag, err := parseOnce(ctx, sf, maxDiagnostics)
	if err != nil {
		return false, "fmt-check: " + err.Error()
	}
	if !firstRoot.IsValid() || firstBag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}

	out := Expr(firstBuilder.Exprs, firstRoot, Options{})

	fs2 := source.NewFileSet()
	f2 := fs2.AddVirtual(sf.Path, []byte(out))
	secondBuilder, secondRoot, secondBag, err := parseOnce(ctx, fs2.Get(f2), maxDiagnostics)
	if err != nil {
		return false, "fmt-check: " + err.Error()
	}
	if !secondRoot.IsValid() || secondBag.HasErrors() {
		return false, fmt.Sprintf("fmt-check: reparse of %q failed", out)
	}
	if !ast.Equal(firstBuilder.Exprs, firstRoot, secondBuilder.Exprs, secondRoot) {
		return false, fmt.Sprintf("fmt-check: tree changed after printing %q", out)
	}
	return true, "fmt-check: OK"
}

func parseOnce(ctx context.Context, sf *source.File, maxDiagnostics int) (*ast.Builder, ast.ExprID, *diag.Bag, error) {
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: rep})
	builder := ast.NewBuilder(ast.Hints{})
	res, err := parser.ParseExpr(ctx, lx, builder, parser.Options{Reporter: rep})
	if err != nil {
		return nil, ast.NoExprID, bag, err
	}
	bag.Normalize()
	return builder, res.Root, bag, nil
}
