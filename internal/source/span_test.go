package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{Start: 0, End: 1}, Span{Start: 4, End: 5}, Span{Start: 0, End: 5}},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 2, End: 3}, Span{Start: 0, End: 10}},
		{"reversed", Span{Start: 4, End: 5}, Span{Start: 0, End: 1}, Span{Start: 0, End: 5}},
		{"other file", Span{File: 1, Start: 4, End: 5}, Span{File: 2, Start: 0, End: 1}, Span{File: 1, Start: 4, End: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanZero(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if z := s.ZeroAt(); !z.Empty() || z.Start != 4 || z.File != 3 {
		t.Errorf("ZeroAt() = %v", z)
	}
	if z := s.ZeroEnd(); !z.Empty() || z.Start != 9 {
		t.Errorf("ZeroEnd() = %v", z)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestSpanLessAndContains(t *testing.T) {
	a := Span{Start: 1, End: 2}
	b := Span{Start: 1, End: 3}
	c := Span{Start: 2, End: 2}
	if !a.Less(b) || !b.Less(c) || c.Less(a) {
		t.Errorf("unexpected ordering: %v %v %v", a, b, c)
	}
	if !b.Contains(a) || a.Contains(b) {
		t.Errorf("unexpected containment")
	}
}
