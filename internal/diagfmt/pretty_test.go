package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"calc/internal/diag"
	"calc/internal/source"
)

func prettyString(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	t.Helper()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("1 + $\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 5}, "invalid character '$'"))

	got := prettyString(t, bag, fs, PrettyOpts{})
	want := strings.Join([]string{
		"test.calc:1:5: ERROR LEX1001: invalid character '$'",
		"1 | 1 + $",
		"  |     ^",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("Pretty output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyUnderlinesWholeSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("12345 6"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedTrailingInput, source.Span{File: fileID, Start: 6, End: 7}, "unexpected number after complete expression"))
	bag.Add(diag.NewError(diag.LexTokenTooLong, source.Span{File: fileID, Start: 0, End: 5}, "literal too long"))
	bag.Sort()

	got := prettyString(t, bag, fs, PrettyOpts{})
	if !strings.Contains(got, "  | ^~~~~\n") {
		t.Errorf("expected 5-wide underline, got:\n%s", got)
	}
	if !strings.Contains(got, "  |       ^\n") {
		t.Errorf("expected caret under column 7, got:\n%s", got)
	}
	if strings.Index(got, "LEX1003") > strings.Index(got, "SYN2002") {
		t.Errorf("diagnostics not printed in bag order:\n%s", got)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// '１' is three bytes and two cells wide.
	fileID := fs.AddVirtual("wide.calc", []byte("１ + 2"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 3}, "invalid character '１'"))
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: 4, End: 5}, "expected expression"))

	got := prettyString(t, bag, fs, PrettyOpts{})
	if !strings.Contains(got, "  | ^~\n") {
		t.Errorf("wide rune should get a two-cell underline:\n%s", got)
	}
	if !strings.Contains(got, "  |    ^\n") {
		t.Errorf("caret after wide rune misaligned:\n%s", got)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("multi.calc", []byte("1 +\n2 $\n3\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 6, End: 7}, "invalid character '$'"))

	got := prettyString(t, bag, fs, PrettyOpts{Context: 1})
	want := strings.Join([]string{
		"multi.calc:2:3: ERROR LEX1001: invalid character '$'",
		"1 | 1 +",
		"2 | 2 $",
		"  |   ^",
		"3 | 3",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("context mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("(2 + 3"))
	open := source.Span{File: fileID, Start: 0, End: 1}
	eof := source.Span{File: fileID, Start: 6, End: 6}

	d := diag.NewError(diag.SynUnclosedParen, eof, "expected ')', found end of input").
		WithNote(open, "'(' opened here").
		WithFix("insert ')'", diag.TextEdit{Span: eof, NewText: ")"})
	bag := diag.NewBag(10)
	bag.Add(d)

	got := prettyString(t, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true, ShowPreview: true})
	for _, want := range []string{
		"test.calc:1:7: ERROR SYN2003",
		"note: 1:1: '(' opened here",
		"fix: insert ')' [SYN2003-6-6]",
		"- (2 + 3",
		"+ (2 + 3)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	plain := prettyString(t, bag, fs, PrettyOpts{})
	if strings.Contains(plain, "note:") || strings.Contains(plain, "fix:") {
		t.Errorf("notes and fixes must be opt-in:\n%s", plain)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("$"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "invalid character '$'"))

	if got := prettyString(t, bag, fs, PrettyOpts{Color: true}); !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes with Color=true:\n%q", got)
	}
	if got := prettyString(t, bag, fs, PrettyOpts{}); strings.Contains(got, "\x1b[") {
		t.Errorf("unexpected ANSI escapes with Color=false:\n%q", got)
	}
}

func TestPrettyDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte("$ $"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "invalid character '$'"))
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 2, End: 3}, "invalid character '$'"))

	got := prettyString(t, bag, fs, PrettyOpts{})
	if !strings.Contains(got, "1 more diagnostics not shown (limit 1)") {
		t.Errorf("missing truncation footer:\n%s", got)
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.Add("/home/user/project/exprs/sum.calc", []byte("1 + $"), 0)
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 5}, "invalid character '$'"))

	tests := []struct {
		name string
		opts PrettyOpts
		want string
	}{
		{"absolute", PrettyOpts{PathMode: PathModeAbsolute}, "/home/user/project/exprs/sum.calc:1:5"},
		{"relative", PrettyOpts{PathMode: PathModeRelative, BaseDir: "/home/user/project"}, "exprs/sum.calc:1:5"},
		{"basename", PrettyOpts{PathMode: PathModeBasename}, "sum.calc:1:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prettyString(t, bag, fs, tt.opts)
			if !strings.HasPrefix(got, tt.want+":") {
				t.Errorf("want prefix %q, got:\n%s", tt.want, got)
			}
		})
	}
}

func TestParsePathMode(t *testing.T) {
	for _, mode := range []PathMode{PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename} {
		got, err := ParsePathMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParsePathMode(%q) = %v, %v", mode.String(), got, err)
		}
	}
	if _, err := ParsePathMode("sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
