package driver

import (
	"context"
	"strconv"

	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/source"
	"calc/internal/token"
	"calc/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // EOF included
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it to EOF.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, fileID, maxDiagnostics), nil
}

// TokenizeText lexes in-memory text registered under name.
func TokenizeText(ctx context.Context, name, text string, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(ctx, fs, fs.AddVirtual(name, []byte(text)), maxDiagnostics)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(fileID)
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)

	span, _ := trace.StartSpan(ctx, trace.ScopePass, "lex")
	lx := lexer.New(file, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag})})
	tokens := lx.All()
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")

	bag.Normalize()
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
