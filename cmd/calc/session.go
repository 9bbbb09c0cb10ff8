package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calc/internal/diag"
	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/observ"
	"calc/internal/parser"
	"calc/internal/prof"
	"calc/internal/source"
	"calc/internal/trace"
)

// settings are the effective options: defaults, then calc.toml, then flags.
type settings struct {
	Recovery       parser.Recovery
	MaxDepth       uint
	MaxErrors      uint
	MaxDiagnostics int
	ColorOut       bool // stdout
	ColorErr       bool // stderr
	Format         string
	Quiet          bool
	Timings        bool
	CacheEnabled   bool
	CacheDir       string
	ConfigPath     string
}

// session holds per-command state: resolved settings, the tracing context,
// the phase timer and the parse cache.
type session struct {
	cmd      *cobra.Command
	ctx      context.Context
	settings settings
	timer    *observ.Timer
	cache    *driver.DiskCache
	profiler *prof.Profiler
	cleanup  func()
}

func startSession(cmd *cobra.Command) (*session, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	profiler, err := prof.Start(readProfileConfig(cmd))
	if err != nil {
		return nil, err
	}
	ctx, traceCleanup, err := setupTracing(ctx, cmd)
	if err != nil {
		_ = profiler.Stop()
		return nil, err
	}
	cleanup := func() {
		traceCleanup()
		if err := profiler.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}
	sess := &session{cmd: cmd, ctx: ctx, settings: s, profiler: profiler, cleanup: cleanup}
	if s.Timings {
		sess.timer = observ.NewTimer()
	}
	if s.CacheEnabled {
		if s.CacheDir != "" {
			sess.cache, err = driver.NewDiskCache(s.CacheDir)
		} else {
			sess.cache, err = driver.OpenDiskCache("calc")
		}
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("cache: %w", err)
		}
	}
	return sess, nil
}

// close prints timings (if requested) and shuts tracing down.
func (s *session) close() {
	if s.timer != nil {
		fmt.Fprint(s.cmd.ErrOrStderr(), s.timer.Summary())
	}
	s.cleanup()
}

func (s *session) driverOptions() driver.Options {
	return driver.Options{
		Recovery:       s.settings.Recovery,
		MaxDepth:       s.settings.MaxDepth,
		MaxDiagnostics: s.settings.MaxDiagnostics,
		MaxErrors:      s.settings.MaxErrors,
		Cache:          s.cache,
		Timer:          s.timer,
	}
}

func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:       s.settings.ColorErr,
		Context:     1,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: !s.settings.Quiet,
	}
}

// printDiagnostics prints a non-empty bag to stderr in the pretty form.
func (s *session) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(s.cmd.ErrOrStderr(), bag, fs, s.prettyOpts())
}

// format resolves the command's --format flag against the config default.
func (s *session) format(allowed ...string) (string, error) {
	f, _ := s.cmd.Flags().GetString("format")
	if !s.cmd.Flags().Changed("format") && s.settings.Format != "" {
		f = s.settings.Format
	}
	if f == "" {
		f = allowed[0]
	}
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected %s)", f, strings.Join(allowed, "|"))
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, _ := flags.GetString("config")
	cfg, foundPath, err := resolveConfig(configPath, ".")
	if err != nil {
		return settings{}, err
	}

	s := settings{
		Recovery:       parser.RecoveryStrict,
		MaxDepth:       cfg.Parse.MaxDepth,
		MaxErrors:      cfg.Parse.MaxErrors,
		MaxDiagnostics: 100,
		Format:         cfg.Output.Format,
		CacheEnabled:   cfg.Cache.Enabled,
		CacheDir:       cfg.Cache.Dir,
		ConfigPath:     foundPath,
	}
	if cfg.Parse.MaxDiagnostics > 0 {
		s.MaxDiagnostics = cfg.Parse.MaxDiagnostics
	}
	recovery := cfg.Parse.Recovery
	colorMode := cfg.Output.Color

	if flags.Changed("recovery") || recovery == "" {
		recovery, _ = flags.GetString("recovery")
	}
	if s.Recovery, err = parser.ParseRecovery(recovery); err != nil {
		return settings{}, err
	}
	if flags.Changed("max-depth") {
		s.MaxDepth, _ = flags.GetUint("max-depth")
	}
	if flags.Changed("max-errors") {
		s.MaxErrors, _ = flags.GetUint("max-errors")
	}
	if flags.Changed("max-diagnostics") {
		s.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
		if s.MaxDiagnostics <= 0 {
			return settings{}, fmt.Errorf("--max-diagnostics must be positive")
		}
	}
	if flags.Changed("color") || colorMode == "" {
		colorMode, _ = flags.GetString("color")
	}
	mode, err := readColorMode(colorMode)
	if err != nil {
		return settings{}, err
	}
	s.ColorOut = mode.enabled(os.Stdout)
	s.ColorErr = mode.enabled(os.Stderr)
	// fatih/color читает глобальный флаг; приводим его к выбранному режиму
	color.NoColor = !s.ColorOut

	s.Quiet, _ = flags.GetBool("quiet")
	s.Timings, _ = flags.GetBool("timings")
	if flags.Changed("cache") {
		s.CacheEnabled, _ = flags.GetBool("cache")
	}
	if flags.Changed("cache-dir") {
		s.CacheDir, _ = flags.GetString("cache-dir")
	}
	return s, nil
}

func readProfileConfig(cmd *cobra.Command) prof.Config {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	cfg.CPUPath, _ = flags.GetString("cpu-profile")
	cfg.MemPath, _ = flags.GetString("mem-profile")
	cfg.TracePath, _ = flags.GetString("runtime-trace")
	return cfg
}

func setupTracing(ctx context.Context, cmd *cobra.Command) (context.Context, func(), error) {
	flags := cmd.Root().PersistentFlags()
	output, _ := flags.GetString("trace")
	levelStr, _ := flags.GetString("trace-level")
	modeStr, _ := flags.GetString("trace-mode")
	formatStr, _ := flags.GetString("trace-format")
	ringSize, _ := flags.GetInt("trace-ring-size")

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if output != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), func() {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format := trace.FormatForPath(output)
	if formatStr != "" {
		if format, err = trace.ParseFormat(formatStr); err != nil {
			return nil, nil, err
		}
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx = trace.WithTracer(ctx, tracer)
	root, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "calc "+cmd.Name())

	cleanup := func() {
		root.End("")
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.Dump(cmd.ErrOrStderr(), format); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return ctx, cleanup, nil
}
