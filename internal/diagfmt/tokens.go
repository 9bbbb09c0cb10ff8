package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"calc/internal/source"
	"calc/internal/token"
)

// TokenOutput is one token of `tokenize --format json`.
type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// untilEOF cuts tokens right after the first EOF.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

// FormatTokensPretty prints an aligned table: index, kind, text, position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, tok := range untilEOF(tokens) {
		text := ""
		if tok.Text != "" {
			text = strconv.Quote(tok.Text)
		}
		fmt.Fprintf(tw, "%3d:\t%s\t%s\t%s\n", i+1, tok.Kind, text, formatSpan(tok.Span, fs))
	}
	return tw.Flush()
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	toks := untilEOF(tokens)
	out := make([]TokenOutput, len(toks))
	for i, tok := range toks {
		out[i] = TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Start: tok.Span.Start, End: tok.Span.End}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
