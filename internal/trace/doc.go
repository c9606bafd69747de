// Package trace is the structured event sink of stylekit.
//
// Events describe pipeline progress: the driver run, per-file passes
// (parse, refine, rework, validate, write) and, at debug level, individual
// node broadcasts. Tracing never changes what the pipeline does.
//
// # Usage
//
//	stylekit process --trace=- --trace-level=phase site.css
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only ring dumps after a failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including nodes
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
