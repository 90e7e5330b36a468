// Package sourcemap translates names in compiled output back to the modules
// and declarations the user wrote.
//
// # Purpose
//
// Linking merges every module into one output and renames declarations so they
// do not collide. Diagnostics produced against that output mention mangled
// names. A SourceMap answers, for such a name, which module and declaration it
// came from, and keeps the module sources so a formatter can show snippets.
//
// # Recording
//
// A Mapper sits between the compiler and its real resolve.Resolver and
// mangle.Mangler. Every successful resolution and every mangled name passes
// through it unchanged and is written to a BasicSourceMap as a side effect:
//
//	mapper := sourcemap.NewMapper(root, resolver, mangler)
//	out, err := compile(root, mapper, mapper) // mapper is both resolver and mangler
//	sm := mapper.Finish()
//
// Finish happens once; afterwards the map is read-only by convention and may be
// shared freely. Failed resolutions are not recorded.
//
// # Lookup variants
//
//   - *BasicSourceMap: the recorded table.
//   - Optional: wraps a possibly nil map; nil answers "absent" everywhere.
//   - NoSourceMap / Nop: always absent, for callers that opt out.
//
// # Collisions
//
// The tables are keyed by mangled name and module path. A second write to the
// same key replaces the first without notice; detecting collisions belongs to
// the mangler and resolver.
package sourcemap
