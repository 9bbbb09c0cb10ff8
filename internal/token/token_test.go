package token_test

import (
	"testing"

	"calc/internal/source"
	"calc/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		kind                           token.Kind
		literal, binary, start, follow bool
	}{
		{token.IntLit, true, false, true, false},
		{token.FloatLit, true, false, true, false},
		{token.Plus, false, true, false, true},
		{token.Minus, false, true, true, true},
		{token.Star, false, true, false, true},
		{token.Slash, false, true, false, true},
		{token.LParen, false, false, true, false},
		{token.RParen, false, false, false, true},
		{token.EOF, false, false, false, true},
		{token.Invalid, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			tk := tok(tt.kind)
			if got := tk.IsLiteral(); got != tt.literal {
				t.Errorf("IsLiteral = %v", got)
			}
			if got := tk.IsBinaryOp(); got != tt.binary {
				t.Errorf("IsBinaryOp = %v", got)
			}
			if got := tk.CanStartExpr(); got != tt.start {
				t.Errorf("CanStartExpr = %v", got)
			}
			if got := tk.CanContinueExpr(); got != tt.follow {
				t.Errorf("CanContinueExpr = %v", got)
			}
		})
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for k := token.Invalid; k <= token.RParen; k++ {
		got, ok := token.ParseKind(k.String())
		if !ok || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := token.ParseKind("Percent"); ok {
		t.Fatal("unknown kind accepted")
	}
}
