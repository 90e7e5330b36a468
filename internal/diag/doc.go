// Package diag defines the diagnostic record produced while compiling linked
// WESL output and the small utilities used to collect it.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Message: human oriented text. It may mention mangled identifiers; the
//     renderer in internal/diagfmt rewrites them back to declaration names.
//   - Decl: optional mangled name the diagnostic is about.
//   - Module: optional module the span refers to.
//   - Span: optional byte range inside that module's source.
//
// The package does not perform formatting or IO. Rendering lives in
// internal/diagfmt, source lookup lives in internal/sourcemap.
//
// # Collecting
//
// Producers report through a Reporter. BagReporter stores diagnostics in a
// Bag, DedupReporter drops exact repeats before forwarding.
package diag
