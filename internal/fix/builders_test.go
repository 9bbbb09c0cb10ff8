package fix

import (
	"testing"

	"calc/internal/diag"
	"calc/internal/source"
)

func TestEditBuilders(t *testing.T) {
	span := source.Span{File: 3, Start: 4, End: 7}
	tests := []struct {
		name string
		got  diag.TextEdit
		want diag.TextEdit
	}{
		{"insert", Insert(source.Span{File: 3, Start: 2, End: 2}, ")"), diag.TextEdit{Span: source.Span{File: 3, Start: 2, End: 2}, NewText: ")"}},
		{"before", InsertBefore(span, "0"), diag.TextEdit{Span: source.Span{File: 3, Start: 4, End: 4}, NewText: "0"}},
		{"after", InsertAfter(span, "0"), diag.TextEdit{Span: source.Span{File: 3, Start: 7, End: 7}, NewText: "0"}},
		{"delete", Delete(span, "abc"), diag.TextEdit{Span: span, OldText: "abc"}},
		{"replace", Replace(span, "+", "＋"), diag.TextEdit{Span: span, NewText: "+", OldText: "＋"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}
