// Package trace records what the lowering pipeline is doing.
//
// Events are grouped into spans (a unit being lowered, a pass running over it)
// and instant points (a runtime signature being synthesized). Verbosity is
// chosen by Level; each event carries a Scope and is dropped unless the level
// admits it:
//
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-unit events
//   - LevelDebug: node-level events such as signature creation
//
// Tracers travel through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "arrays", 0)
//	defer span.End("")
package trace
