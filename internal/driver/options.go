package driver

import (
	"errors"

	"fortio.org/safecast"

	"calc/internal/observ"
	"calc/internal/parser"
)

// ErrStrictFailure is returned by ParseResult.Err when the parse produced no tree.
var ErrStrictFailure = errors.New("expression does not parse")

const defaultMaxDiagnostics = 256

// Options configures the lex/parse pipeline shared by every entry point.
type Options struct {
	Recovery       parser.Recovery
	MaxDepth       uint // 0 - parser.DefaultMaxDepth
	MaxDiagnostics int  // bag capacity; 0 - 256
	// MaxErrors stops the parser after that many errors; 0 - same as MaxDiagnostics.
	MaxErrors uint

	Cache *DiskCache    // nil disables the parse cache
	Timer *observ.Timer // nil disables timings
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) maxErrors() uint {
	if o.MaxErrors > 0 {
		return o.MaxErrors
	}
	n, err := safecast.Conv[uint](o.maxDiagnostics())
	if err != nil {
		return 0
	}
	return n
}
