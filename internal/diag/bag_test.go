package diag

import (
	"testing"

	"calc/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestBagSortByPosition(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SynUnclosedParen, sp(7, 7), "c"))
	b.Add(NewError(LexUnknownChar, sp(2, 3), "a"))
	b.Add(New(SevWarning, SynInfo, sp(2, 3), "w"))
	b.Add(NewError(SynExpectExpression, sp(4, 5), "b"))
	b.Sort()

	want := []Code{LexUnknownChar, SynInfo, SynExpectExpression, SynUnclosedParen}
	for i, d := range b.Items() {
		if d.Code != want[i] {
			t.Fatalf("item %d: got %s, want %s", i, d.Code.ID(), want[i].ID())
		}
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SynExpectExpression, sp(4, 4), "first"))
	b.Add(NewError(SynExpectExpression, sp(4, 4), "second"))
	b.Add(NewError(SynUnclosedParen, sp(4, 4), "other kind"))
	b.Add(NewError(SynExpectExpression, sp(4, 5), "other span"))
	b.Normalize()

	if b.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after dedup, got %d", b.Len())
	}
	if b.Items()[0].Message != "first" {
		t.Fatalf("dedup must keep the first occurrence, got %q", b.Items()[0].Message)
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(NewError(SynExpectExpression, sp(0, 0), "x")) {
		t.Fatal("first add rejected")
	}
	if b.Add(NewError(SynExpectExpression, sp(1, 1), "y")) {
		t.Fatal("add over limit accepted")
	}
	if b.Dropped() != 1 || !b.HasErrors() {
		t.Fatalf("dropped=%d hasErrors=%v", b.Dropped(), b.HasErrors())
	}

	other := NewBag(4)
	other.Add(NewError(LexUnknownChar, sp(2, 3), "z"))
	b.Merge(other)
	if b.Len() != 2 {
		t.Fatalf("merge: len=%d", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	r.Report(NewError(SynUnexpectedTrailingInput, sp(3, 4), "one"))
	r.Report(NewError(SynUnexpectedTrailingInput, sp(3, 4), "two"))
	r.Report(NewError(SynExpectExpression, sp(3, 4), "three"))
	if bag.Len() != 2 || r.Seen() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d (seen %d)", bag.Len(), r.Seen())
	}
	if bag.Items()[0].Message != "one" {
		t.Fatalf("first report must win, got %q", bag.Items()[0].Message)
	}
}

func TestReportBuilderFix(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SynUnclosedParen, sp(5, 5), "expected ')'").
		WithNote(sp(0, 1), "opened here").
		WithFix("insert ')'", TextEdit{Span: sp(5, 5), NewText: ")"})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, got %d diagnostics", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Fatalf("notes=%d fixes=%d", len(d.Notes), len(d.Fixes))
	}
	if d.Fixes[0].ID != "SYN2003-5-5" {
		t.Fatalf("fix id = %q", d.Fixes[0].ID)
	}
	if SynUnclosedParen.Kind() != "UnclosedParen" || LexUnknownChar.Kind() != "InvalidCharacter" {
		t.Fatal("unexpected kind names")
	}
}

func TestSeverityNames(t *testing.T) {
	cases := []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "Severity(9)", "unknown"},
	}
	for _, tc := range cases {
		if tc.sev.String() != tc.upper || tc.sev.Label() != tc.lower {
			t.Errorf("%d: got %s/%s", tc.sev, tc.sev.String(), tc.sev.Label())
		}
	}
}

func TestReporterFunc(t *testing.T) {
	var got []Code
	rep := ReporterFunc(func(d Diagnostic) { got = append(got, d.Code) })
	ReportError(rep, SynUnclosedParen, sp(1, 1), "expected ')'").Emit()
	NopReporter{}.Report(NewError(SynUnclosedParen, sp(1, 1), "dropped"))
	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(sp(0, 1), "x").Emit()
	if len(got) != 1 || got[0] != SynUnclosedParen {
		t.Fatalf("got %v", got)
	}
}
