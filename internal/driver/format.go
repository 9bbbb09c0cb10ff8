package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"calc/internal/diag"
	"calc/internal/format"
	"calc/internal/source"
	"calc/internal/trace"
)

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Check          bool // report only, never write
	Stdout         bool // return formatted bytes instead of writing
	MaxDiagnostics int
	Jobs           int // 0 - GOMAXPROCS
	Options        format.Options
}

// FormatResult is the outcome for one file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte // only with FormatOptions.Stdout
	// Bag holds the diagnostics when Err is format.ErrSyntax; FileSet resolves their spans.
	Bag     *diag.Bag
	FileSet *source.FileSet
}

// FormatPaths formats files and directories (directories contribute their
// *.calc files) concurrently and returns results in sorted path order.
// Files with syntax errors are never rewritten. Per-file failures land in
// FormatResult.Err; only cancellation fails the whole call.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := collectPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "format")
	defer span.End("")

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	// сравниваем с байтами на диске, до нормализации BOM/CRLF
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		res.Err = err
		return res
	}
	res.FileSet = source.NewFileSet()
	id, err := res.FileSet.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	out, bag, err := format.Source(ctx, res.FileSet.Get(id), opts.Options, opts.MaxDiagnostics)
	res.Bag = bag
	if err != nil {
		res.Err = err
		return res
	}
	res.Changed = !bytes.Equal(out, raw)

	switch {
	case opts.Stdout:
		res.Formatted = out
	case opts.Check || !res.Changed:
	default:
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(path, out, mode); err != nil {
			res.Err, res.Changed = err, false
		}
	}
	return res
}

// collectPaths expands directories, dedups and sorts.
func collectPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}
		found, err := collectSourceFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
