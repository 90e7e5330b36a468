package sourcemap

import (
	"strconv"
	"sync"

	"wesl/internal/mangle"
	"wesl/internal/resolve"
	"wesl/internal/source"
	"wesl/internal/trace"
)

// Mapper records a BasicSourceMap while forwarding every call to the real
// resolver and mangler. Pass it to the compiler as both.
//
// Each recording call holds the lock for exactly one insert, so a Mapper may
// be shared by concurrent compiler passes. Writes to the same key are ordered
// by completion and the last one wins.
type Mapper struct {
	root     source.ModulePath
	resolver resolve.Resolver
	mangler  mangle.Mangler
	tracer   trace.Tracer

	mu       sync.Mutex
	sm       *BasicSourceMap // nil после Finish
	finished *BasicSourceMap
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithTracer reports every recorded entry to t.
func WithTracer(t trace.Tracer) Option {
	return func(m *Mapper) {
		if t != nil {
			m.tracer = t
		}
	}
}

// NewMapper wraps resolver and mangler. root identifies the entry module whose
// source becomes the default source on Finish.
func NewMapper(root source.ModulePath, resolver resolve.Resolver, mangler mangle.Mangler, opts ...Option) *Mapper {
	m := &Mapper{
		root:     root,
		resolver: resolver,
		mangler:  mangler,
		tracer:   trace.Nop,
		sm:       NewBasicSourceMap(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the entry module.
func (m *Mapper) Root() source.ModulePath {
	return m.root
}

// Recording reports whether Finish has not been called yet.
func (m *Mapper) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sm != nil
}

// record runs fn on the store under the lock; it is a no-op once finished.
func (m *Mapper) record(fn func(sm *BasicSourceMap)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sm == nil {
		return false
	}
	fn(m.sm)
	return true
}

// ResolveSource resolves through the real resolver and records the result.
// Errors are returned unchanged and nothing is recorded for them.
func (m *Mapper) ResolveSource(path source.ModulePath) (string, error) {
	text, err := m.resolver.ResolveSource(path)
	if err != nil {
		trace.Error(m.tracer, trace.ScopeModule, "sourcemap.resolve", err, trace.F("module", path.String()))
		return "", err
	}
	name, _ := m.resolver.DisplayName(path)
	if m.record(func(sm *BasicSourceMap) { sm.AddSource(path, name, text) }) {
		trace.Point(m.tracer, trace.ScopeModule, "sourcemap.source", path.String(),
			trace.F("name", name), trace.F("bytes", strconv.Itoa(len(text))))
	}
	return text, nil
}

// DisplayName is forwarded without recording.
func (m *Mapper) DisplayName(path source.ModulePath) (string, bool) {
	return m.resolver.DisplayName(path)
}

// FSPath is forwarded without recording.
func (m *Mapper) FSPath(path source.ModulePath) (string, bool) {
	return m.resolver.FSPath(path)
}

// Mangle mangles through the real mangler and records the mapping.
func (m *Mapper) Mangle(path source.ModulePath, decl string) string {
	mangled := m.mangler.Mangle(path, decl)
	if m.record(func(sm *BasicSourceMap) { sm.AddDecl(mangled, path, decl) }) {
		trace.Point(m.tracer, trace.ScopeNode, "sourcemap.decl", mangled,
			trace.F("module", path.String()), trace.F("decl", decl))
	}
	return mangled
}

// Unmangle is forwarded to the real mangler; the recorded table is not consulted.
func (m *Mapper) Unmangle(mangled string) (source.ModulePath, string, bool) {
	return m.mangler.Unmangle(mangled)
}

// MangleTypes is forwarded without recording.
func (m *Mapper) MangleTypes(decl string, variant uint32, types []mangle.TypeExpr) string {
	return m.mangler.MangleTypes(decl, variant, types)
}

// Finish ends recording and returns the map. If the root module was resolved,
// its text becomes the default source. Later calls return the same map and
// later delegation calls are forwarded but not recorded.
func (m *Mapper) Finish() *BasicSourceMap {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sm == nil {
		return m.finished
	}

	span := trace.Begin(m.tracer, trace.ScopePass, "sourcemap.finish", 0)
	sm := m.sm
	text, ok := sm.Source(m.root)
	if ok {
		sm.SetDefaultSource(text)
	}
	m.sm, m.finished = nil, sm
	span.With(
		trace.F("root", m.root.String()),
		trace.F("decls", strconv.Itoa(sm.Len())),
		trace.F("modules", strconv.Itoa(len(sm.sources))),
		trace.F("default", strconv.FormatBool(ok)),
	).End("")
	return sm
}

var (
	_ resolve.Resolver = (*Mapper)(nil)
	_ mangle.Mangler   = (*Mapper)(nil)
)
