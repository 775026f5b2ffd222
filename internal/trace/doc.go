// Package trace records what the hkanno tools are doing: which command ran,
// which documents were parsed and checked, and which language-server requests
// were served.
//
// # Usage
//
//	hkanno check --trace=- --trace-level=detail anim.txt
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (stderr or a file)
//   - RingTracer: keeps the last N events in memory for dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits command spans, LevelDetail adds per-document spans and
// LevelDebug adds per-request and per-line events.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDocument, "check", 0)
//	defer span.End("")
package trace
