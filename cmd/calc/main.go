package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"calc/internal/version"
)

// errDiagnostics signals that diagnostics were already printed and the
// process should exit with status 1 without another message.
var errDiagnostics = errors.New("diagnostics reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "calc",
		Short:         "Arithmetic expression lexer, parser and toolchain",
		Long:          `calc tokenizes and parses arithmetic expressions (+ - * / and parentheses), reports diagnostics with fixes, formats and highlights them.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per input")
	pf.String("recovery", "strict", "error recovery mode (strict|best-effort)")
	pf.Uint("max-depth", 0, "maximum nesting of '(' and unary '-' (0 = 256)")
	pf.Uint("max-errors", 0, "stop parsing after this many errors (0 = max-diagnostics)")
	pf.String("config", "", "path to calc.toml (default: search upward from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "", "trace format (text|ndjson; default from file extension)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for trace-mode ring|both")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
	pf.Bool("cache", false, "cache parse results on disk")
	pf.String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/calc)")

	root.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newCheckCmd(),
		newFmtCmd(),
		newFixCmd(),
		newHighlightCmd(),
		newReplCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "calc: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
