package parser_test

import (
	"context"
	"strings"
	"testing"

	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/parser"
	"calc/internal/source"
)

func benchParse(b *testing.B, expr string, opts parser.Options) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.calc", []byte(expr))
	file := fs.Get(fileID)

	b.ReportAllocs()
	b.SetBytes(int64(len(expr)))
	b.ResetTimer()

	for b.Loop() {
		builder := ast.NewBuilder(ast.Hints{})
		bag := diag.NewBag(64)
		opts.Reporter = diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
		if _, err := parser.ParseExpr(context.Background(), lx, builder, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseShort(b *testing.B) {
	benchParse(b, "(2 + 3) * -4.5 / 7", parser.Options{})
}

func BenchmarkParseLong(b *testing.B) {
	var sb strings.Builder
	for i := range 2000 {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString("(12 * 3.5 - -7) / 2")
	}
	benchParse(b, sb.String(), parser.Options{})
}

func BenchmarkParseDeep(b *testing.B) {
	benchParse(b, nested(parser.DefaultMaxDepth), parser.Options{})
}

func BenchmarkParseBestEffortGarbage(b *testing.B) {
	benchParse(b, strings.Repeat("1 + ) $ (2 ", 500), parser.Options{Recovery: parser.RecoveryBestEffort})
}
