package parser

import (
	"context"
	"fmt"
	"strings"

	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/lexer"
	"calc/internal/source"
	"calc/internal/token"
)

// Recovery selects what happens after the first syntax error.
type Recovery uint8

const (
	// RecoveryStrict aborts on the first error and yields no tree.
	RecoveryStrict Recovery = iota
	// RecoveryBestEffort keeps going, substituting ExprError placeholders.
	RecoveryBestEffort
)

func (r Recovery) String() string {
	switch r {
	case RecoveryStrict:
		return "strict"
	case RecoveryBestEffort:
		return "best-effort"
	}
	return "unknown"
}

// ParseRecovery accepts "strict", "best-effort" and "best_effort".
func ParseRecovery(s string) (Recovery, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return RecoveryStrict, nil
	case "best-effort", "best_effort", "besteffort":
		return RecoveryBestEffort, nil
	}
	return RecoveryStrict, fmt.Errorf("invalid recovery mode: %q (expected: strict|best-effort)", s)
}

// DefaultMaxDepth bounds nesting of '(' and unary '-'.
const DefaultMaxDepth = 256

// Options controls one ParseExpr call.
type Options struct {
	Recovery  Recovery
	MaxDepth  uint // 0 means DefaultMaxDepth
	MaxErrors uint // 0 means no limit
	Reporter  diag.Reporter

	CurrentErrors uint
}

// Enough reports whether the error budget is used up.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

func (o *Options) maxDepth() uint {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Result describes the outcome of ParseExpr.
type Result struct {
	// Root is NoExprID when strict mode aborted.
	Root ast.ExprID
	// OK is true only for a complete tree with no diagnostics.
	OK bool
	// Errors counts parser reports plus invalid tokens seen.
	Errors uint
}

// Parser holds the state of one expression parse. It is created by
// ParseExpr and never reused.
type Parser struct {
	lx       *lexer.Lexer
	exprs    *ast.Exprs
	opts     Options
	lastSpan source.Span // span of the last consumed token

	depth   uint
	fatal   bool // nesting limit or error budget exhausted; nothing more is reported
	lastErr uint32
	hasErr  bool
}

// ParseExpr parses one complete expression followed by end of input.
// The lexer must be fresh. ctx is only consulted before parsing starts.
func ParseExpr(
	ctx context.Context,
	lx *lexer.Lexer,
	builder *ast.Builder,
	opts Options,
) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	p := Parser{
		lx:    lx,
		exprs: builder.Exprs,
		opts:  opts,
	}
	p.lastSpan = source.Span{File: lx.File().ID}

	root, ok := p.parseSource()
	if !ok {
		root = ast.NoExprID
	}
	return Result{
		Root:   root,
		OK:     ok && p.opts.CurrentErrors == 0,
		Errors: p.opts.CurrentErrors,
	}, nil
}

func (p *Parser) strict() bool {
	return p.opts.Recovery == RecoveryStrict
}

// parseSource := expression EOF
func (p *Parser) parseSource() (ast.ExprID, bool) {
	root, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.EOF) {
		return root, true
	}
	if p.strict() {
		p.rejectTrailing()
		return ast.NoExprID, false
	}
	return p.recoverTrailing(root), true
}
