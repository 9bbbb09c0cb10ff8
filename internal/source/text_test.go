package source

import (
	"slices"
	"testing"
)

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		bom  bool
		crlf bool
	}{
		{"plain", "1 + 2", "1 + 2", false, false},
		{"crlf", "1 +\r\n2\r3", "1 +\n2\r3", false, true},
		{"bom", "\xEF\xBB\xBF42", "42", true, false},
		{"both", "\xEF\xBB\xBF1\r\n", "1\n", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, hadBOM := removeBOM([]byte(tt.in))
			out, hadCRLF := normalizeCRLF(out)
			if string(out) != tt.want || hadBOM != tt.bom || hadCRLF != tt.crlf {
				t.Errorf("got %q bom=%v crlf=%v", out, hadBOM, hadCRLF)
			}
		})
	}
}

func TestLineIndex(t *testing.T) {
	idx := buildLineIndex([]byte("1 +\n2\n\n3"))
	if !slices.Equal(idx, []uint32{3, 5, 6}) {
		t.Fatalf("index = %v", idx)
	}
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{3, LineCol{1, 4}}, // '\n' belongs to line 1
		{4, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if got := buildLineIndex(nil); len(got) != 0 {
		t.Errorf("empty input index = %v", got)
	}
}
