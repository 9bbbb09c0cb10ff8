package driver

import (
	"context"
	"fmt"
	"strconv"

	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/parser"
	"calc/internal/source"
	"calc/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Root    ast.ExprID // NoExprID when strict mode aborted
	Bag     *diag.Bag
	OK      bool // complete tree, no diagnostics
	Cached  bool // restored from the disk cache
}

// Failed reports whether the parse produced no tree.
func (r *ParseResult) Failed() bool {
	return r == nil || !r.Root.IsValid()
}

// Err is nil when a tree exists; otherwise it wraps ErrStrictFailure.
func (r *ParseResult) Err() error {
	if !r.Failed() {
		return nil
	}
	path := "<nil>"
	if r != nil && r.File != nil {
		path = r.File.Path
	}
	return fmt.Errorf("%s: %w", path, ErrStrictFailure)
}

func (r *ParseResult) Exprs() *ast.Exprs {
	if r == nil || r.Builder == nil {
		return nil
	}
	return r.Builder.Exprs
}

// Parse loads path and parses its whole content as one expression.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, fileID, opts)
}

// ParseText parses in-memory text registered under name. Virtual files
// never touch the cache.
func ParseText(ctx context.Context, name, text string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	opts.Cache = nil
	return parseFile(ctx, fs, fs.AddVirtual(name, []byte(text)), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	fileSpan, ctx := trace.StartSpan(ctx, trace.ScopeFile, "file:"+file.Path)
	defer fileSpan.End("")

	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: ast.NewBuilder(ast.Hints{Exprs: hintExprs(len(file.Content))}),
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}

	var cacheWarning *diag.Diagnostic
	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file, opts)
		done := opts.Timer.Track("cache")
		var payload CachedParse
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit {
			err = payload.restore(res)
			if err == nil {
				done("hit")
				fileSpan.WithExtra("cache", "hit")
				return res, nil
			}
			// частично восстановленное состояние выбрасываем
			res.Builder = ast.NewBuilder(ast.Hints{Exprs: hintExprs(len(file.Content))})
			res.Bag = diag.NewBag(opts.maxDiagnostics())
			res.Cached = false
		}
		done("miss")
		if err != nil {
			d := diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "ignoring unreadable cache entry: "+err.Error())
			cacheWarning = &d
		}
	}

	if err := runParser(ctx, res, opts); err != nil {
		return nil, err
	}

	// кэшируем только полный набор диагностик
	if opts.Cache != nil && res.Bag.Dropped() == 0 {
		if err := opts.Cache.Put(key, toCached(res)); err != nil {
			d := diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "cache write failed: "+err.Error())
			cacheWarning = &d
		}
	}
	if cacheWarning != nil {
		res.Bag.Add(*cacheWarning)
		res.Bag.Normalize()
	}
	return res, nil
}

func runParser(ctx context.Context, res *ParseResult, opts Options) error {
	done := opts.Timer.Track("parse")
	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "parse")

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	lx := lexer.New(res.File, lexer.Options{Reporter: reporter})
	result, err := parser.ParseExpr(ctx, lx, res.Builder, parser.Options{
		Recovery:  opts.Recovery,
		MaxDepth:  opts.MaxDepth,
		MaxErrors: opts.maxErrors(),
		Reporter:  reporter,
	})
	if err != nil {
		span.End(err.Error())
		done("cancelled")
		return err
	}
	res.Root = result.Root
	res.OK = result.OK
	res.Bag.Normalize()

	span.WithExtra("exprs", strconv.FormatUint(uint64(res.Builder.Exprs.Len()), 10)).
		WithExtra("errors", strconv.FormatUint(uint64(result.Errors), 10)).
		End(opts.Recovery.String())
	done(fmt.Sprintf("%d diagnostics", res.Bag.Len()))
	return nil
}

// hintExprs guesses the node count: roughly one node per two bytes of input.
func hintExprs(size int) uint {
	if size <= 0 {
		return 0
	}
	return uint(size/2 + 1)
}
