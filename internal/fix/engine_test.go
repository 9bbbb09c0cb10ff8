package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"calc/internal/diag"
	"calc/internal/source"
)

func unclosedAt(file source.FileID, off uint32) diag.Diagnostic {
	at := source.Span{File: file, Start: off, End: off}
	return diag.NewError(diag.SynUnclosedParen, at, "expected ')' before end of input").
		WithFix("insert ')'", Insert(at, ")"))
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	span := source.Span{File: 0, Start: 0, End: 0}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.SynUnclosedParen,
		Primary: span,
		Fixes: []diag.Fix{
			{ID: "fix-duplicate", Title: "insert ')'", Edits: []diag.TextEdit{Insert(span, ")")}},
			{ID: "fix-duplicate", Title: "insert ')' again", Edits: []diag.TextEdit{Insert(span, ")")}},
			{Title: "empty"},
		},
	}}

	candidates, skips := gatherCandidates(diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 2 {
		t.Fatalf("expected 2 skipped fixes, got %+v", skips)
	}
	if skips[0].Reason != "duplicate fix id" {
		t.Errorf("reason = %q", skips[0].Reason)
	}
	if skips[1].ID != "SYN2003-0-0.2" || skips[1].Reason != "fix has no edits" {
		t.Errorf("empty fix skip = %+v", skips[1])
	}
}

func TestApplyToContentModes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("<repl>", []byte("((2 + 3"))
	diagnostics := []diag.Diagnostic{unclosedAt(file, 7), unclosedAt(file, 7)}
	// вторая диагностика с тем же ID отбрасывается, поэтому даём ей свой
	diagnostics[1].Fixes[0].ID = "second"

	tests := []struct {
		name    string
		opts    ApplyOptions
		want    string
		applied int
	}{
		{"once", ApplyOptions{Mode: ApplyModeOnce}, "((2 + 3)", 1},
		{"all", ApplyOptions{Mode: ApplyModeAll}, "((2 + 3))", 2},
		{"id", ApplyOptions{Mode: ApplyModeID, TargetID: "second"}, "((2 + 3)", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res, err := ApplyToContent(fs, file, diagnostics, tt.opts)
			if err != nil {
				t.Fatalf("ApplyToContent: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if len(res.Applied) != tt.applied {
				t.Errorf("applied = %d, want %d", len(res.Applied), tt.applied)
			}
		})
	}

	if string(fs.Get(file).Content) != "((2 + 3" {
		t.Errorf("ApplyToContent must not mutate the FileSet")
	}
}

func TestApplyToContentUnknownID(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("<repl>", []byte("(1"))
	got, res, err := ApplyToContent(fs, file, []diag.Diagnostic{unclosedAt(file, 2)}, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if string(got) != "(1" {
		t.Errorf("content = %q", got)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "fix id not found" {
		t.Errorf("skipped = %+v", res.Skipped)
	}
}

func TestApplyGuardsAndConflicts(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("<repl>", []byte("1 ＋ 2))"))
	plus := source.Span{File: file, Start: 2, End: 5}
	extra := source.Span{File: file, Start: 8, End: 9}
	one := source.Span{File: file, Start: 0, End: 1}

	diagnostics := []diag.Diagnostic{
		diag.NewError(diag.LexUnknownChar, plus, "invalid character '＋'").
			WithFix("replace with '+'", Replace(plus, "+", "＋")),
		diag.NewError(diag.LexUnknownChar, plus, "same span, stale guard").
			WithFix("replace with '-'", Replace(plus, "-", "+")),
		diag.NewError(diag.SynUnexpectedTrailingInput, extra, "unmatched ')'").
			WithFix("remove unmatched ')'", Delete(extra, ")")),
		diag.NewError(diag.LexUnknownChar, one, "stale guard").
			WithFix("remove stale", Delete(one, "9")),
	}

	got, res, err := ApplyToContent(fs, file, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1 + 2)" {
		t.Errorf("content = %q", got)
	}
	if len(res.Applied) != 2 || len(res.Skipped) != 2 {
		t.Fatalf("applied=%+v skipped=%+v", res.Applied, res.Skipped)
	}
	for _, s := range res.Skipped {
		if s.Reason == "" {
			t.Errorf("skip without reason: %+v", s)
		}
	}
}

func TestApplyWritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.calc")
	if err := os.WriteFile(path, []byte("(1 + 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	file, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Apply(fs, []diag.Diagnostic{unclosedAt(file, 6)}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 1 {
		t.Errorf("file changes = %+v", res.FileChanges)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "(1 + 2)\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestApplySkipsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("<stdin>", []byte("(1"))
	res, err := Apply(fs, []diag.Diagnostic{unclosedAt(file, 2)}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Errorf("skipped = %+v", res.Skipped)
	}
}

func TestSpansConflict(t *testing.T) {
	edit := func(s, e uint32) diag.TextEdit { return diag.TextEdit{Span: source.Span{Start: s, End: e}} }
	tests := []struct {
		name string
		a, b diag.TextEdit
		want bool
	}{
		{"two inserts", edit(3, 3), edit(3, 3), false},
		{"insert inside", edit(4, 4), edit(3, 6), true},
		{"insert at start", edit(3, 3), edit(3, 6), false},
		{"insert at end", edit(6, 6), edit(3, 6), false},
		{"overlap", edit(1, 4), edit(3, 6), true},
		{"adjacent", edit(1, 3), edit(3, 6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spansConflict(tt.a, tt.b); got != tt.want {
				t.Errorf("spansConflict = %v, want %v", got, tt.want)
			}
			if got := spansConflict(tt.b, tt.a); got != tt.want {
				t.Errorf("spansConflict (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}
