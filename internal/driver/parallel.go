package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"calc/internal/trace"
)

// SourceExt is the extension ParseDir picks up.
const SourceExt = ".calc"

// FileResult is the outcome for one path of a batch. Err is set when the
// file could not be read; Result is nil then.
type FileResult struct {
	Path   string
	Result *ParseResult
	Err    error
}

// FileStatus is the progress state of one file in a batch.
type FileStatus uint8

const (
	FileQueued FileStatus = iota
	FileParsing
	FileDone   // parsed, no errors
	FileFailed // error diagnostics or unreadable
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileParsing:
		return "parsing"
	case FileDone:
		return "done"
	case FileFailed:
		return "error"
	}
	return "unknown"
}

// FileEvent reports a status change of one file of a batch.
type FileEvent struct {
	Path   string
	Status FileStatus
}

// collectSourceFiles возвращает отсортированный список *.calc файлов в директории
func collectSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseFiles parses every path concurrently with at most jobs workers
// (0 - GOMAXPROCS). Results come back in input order. Only cancellation
// aborts the batch; per-file read errors are kept in FileResult.Err.
// When progress is non-nil every file reports FileParsing and then
// FileDone or FileFailed on it; the channel is not closed.
func ParseFiles(ctx context.Context, paths []string, opts Options, jobs int, progress chan<- FileEvent) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "parse-batch")
	defer span.End("")

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := notify(gctx, progress, path, FileParsing); err != nil {
				return err
			}
			res, err := Parse(gctx, path, opts)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = FileResult{Path: path, Result: res, Err: err}
			status := FileDone
			if err != nil || res.Bag.HasErrors() || res.Failed() {
				status = FileFailed
			}
			return notify(gctx, progress, path, status)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func notify(ctx context.Context, progress chan<- FileEvent, path string, status FileStatus) error {
	if progress == nil {
		return nil
	}
	select {
	case progress <- FileEvent{Path: path, Status: status}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ParseDir parses every *.calc file under dir in sorted path order.
func ParseDir(ctx context.Context, dir string, opts Options, jobs int) ([]FileResult, error) {
	files, err := collectSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return ParseFiles(ctx, files, opts, jobs, nil)
}

// ExpandPaths turns a mix of files and directories into the sorted list of
// files a batch would parse.
func ExpandPaths(paths []string) ([]string, error) {
	return collectPaths(paths)
}
