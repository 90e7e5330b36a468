// Package trace records what the source-map layer observes while a compiler runs.
//
// Tracing is the project's only logging channel: components emit structured
// events to a Tracer carried in a context.Context or passed explicitly.
//
// # Usage
//
//	weslmap record --trace=- --trace-level=detail package::main
//
// # Implementations
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory, for tests and crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A Level admits events up to a Scope:
//
//   - LevelPhase: ScopeDriver and ScopePass (commands, recording, finish)
//   - LevelDetail: adds ScopeModule (every recorded module source)
//   - LevelDebug: adds ScopeNode (every recorded declaration)
package trace
