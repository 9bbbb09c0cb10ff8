package diag

import (
	"testing"

	"calc/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("testdata/sample.calc", []byte("1 +\n(2"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnclosedParen,
			Message:  "expected ')'\nfound end of input",
			Primary:  source.Span{File: file, Start: 6, End: 6},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 4, End: 5}, Msg: "opened here"},
			},
		},
		{
			Severity: SevError,
			Code:     LexUnknownChar,
			Message:  "invalid character '$'",
			Primary:  source.Span{File: file, Start: 0, End: 1},
		},
	}

	want := "error LEX1001 testdata/sample.calc:1:1 invalid character '$'\n" +
		"note SYN2003 testdata/sample.calc:2:1 opened here\n" +
		"error SYN2003 testdata/sample.calc:2:3 expected ')' found end of input"
	if got := FormatGoldenDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	short := FormatShortDiagnostics(diags, fs)
	if short != "error LEX1001 testdata/sample.calc:1:1 invalid character '$'\n"+
		"error SYN2003 testdata/sample.calc:2:3 expected ')' found end of input" {
		t.Fatalf("unexpected short output:\n%s", short)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	if got := FormatGoldenDiagnostics(nil, source.NewFileSet(), true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
