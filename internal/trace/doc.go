// Package trace records what the calc pipeline is doing: driver commands,
// lex/parse passes and per-file work.
//
// Enable tracing from the command line:
//
//	calc check --trace=- --trace-level=phase exprs/
//
// Implementations:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - Tee: fans out to several tracers (--trace-mode both)
//
// Levels map onto scopes: phase shows driver and pass spans, detail adds
// per-file spans, debug adds node-level events.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
