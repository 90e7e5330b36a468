package sourcemap

import (
	"sort"

	"wesl/internal/source"
)

// SourceMap is the read-only lookup from compiled output to sources.
// Every method is total: absence is reported through the bool.
type SourceMap interface {
	// Decl returns the module and declaration name a mangled name came from.
	Decl(mangled string) (source.ModulePath, string, bool)
	// Source returns the full text of a module.
	Source(path source.ModulePath) (string, bool)
	// DisplayName returns a presentable module name, e.g. a file name.
	DisplayName(path source.ModulePath) (string, bool)
	// DefaultSource returns the root module text, used when a diagnostic
	// cannot be attributed to a module.
	DefaultSource() (string, bool)
}

type declEntry struct {
	path source.ModulePath
	decl string
}

type sourceEntry struct {
	name string // пустая строка - имени нет
	text string
}

// BasicSourceMap is the in-memory SourceMap.
// It is not synchronised; Mapper guards it while recording.
type BasicSourceMap struct {
	decls      map[string]declEntry
	sources    map[source.ModulePath]sourceEntry
	defaultSrc string
	hasDefault bool
}

// NewBasicSourceMap returns an empty map.
func NewBasicSourceMap() *BasicSourceMap {
	return &BasicSourceMap{
		decls:   make(map[string]declEntry),
		sources: make(map[source.ModulePath]sourceEntry),
	}
}

// AddDecl records that mangled names decl in path. Last write wins.
func (m *BasicSourceMap) AddDecl(mangled string, path source.ModulePath, decl string) {
	if m.decls == nil {
		m.decls = make(map[string]declEntry)
	}
	m.decls[mangled] = declEntry{path: path, decl: decl}
}

// AddSource records a module's text and display name. Last write wins.
//
// The store does not keep an explicitly empty display name apart from a
// missing one: displayName == "" is recorded as "no name", and DisplayName
// reports it as absent.
func (m *BasicSourceMap) AddSource(path source.ModulePath, displayName, text string) {
	if m.sources == nil {
		m.sources = make(map[source.ModulePath]sourceEntry)
	}
	m.sources[path] = sourceEntry{name: displayName, text: text}
}

// SetDefaultSource sets the text returned by DefaultSource.
func (m *BasicSourceMap) SetDefaultSource(text string) {
	m.defaultSrc = text
	m.hasDefault = true
}

func (m *BasicSourceMap) Decl(mangled string) (source.ModulePath, string, bool) {
	if m == nil {
		return source.ModulePath{}, "", false
	}
	e, ok := m.decls[mangled]
	if !ok {
		return source.ModulePath{}, "", false
	}
	return e.path, e.decl, true
}

func (m *BasicSourceMap) Source(path source.ModulePath) (string, bool) {
	if m == nil {
		return "", false
	}
	e, ok := m.sources[path]
	if !ok {
		return "", false
	}
	return e.text, true
}

func (m *BasicSourceMap) DisplayName(path source.ModulePath) (string, bool) {
	if m == nil {
		return "", false
	}
	e, ok := m.sources[path]
	if !ok || e.name == "" {
		return "", false
	}
	return e.name, true
}

func (m *BasicSourceMap) DefaultSource() (string, bool) {
	if m == nil || !m.hasDefault {
		return "", false
	}
	return m.defaultSrc, true
}

// Len returns the number of recorded declarations.
func (m *BasicSourceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.decls)
}

// Decls returns the recorded mangled names, sorted.
func (m *BasicSourceMap) Decls() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.decls))
	for k := range m.decls {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Modules returns the modules with recorded sources, sorted by their string form.
func (m *BasicSourceMap) Modules() []source.ModulePath {
	if m == nil {
		return nil
	}
	out := make([]source.ModulePath, 0, len(m.sources))
	for k := range m.sources {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Optional wraps a SourceMap that may be missing. With a nil Map every
// lookup reports absent, exactly like NoSourceMap.
type Optional struct {
	Map SourceMap
}

// Maybe wraps m. A nil m, or a typed nil *BasicSourceMap, yields an empty Optional.
func Maybe(m SourceMap) Optional {
	if b, ok := m.(*BasicSourceMap); ok && b == nil {
		return Optional{}
	}
	return Optional{Map: m}
}

// IsSet reports whether a map is present.
func (o Optional) IsSet() bool {
	return o.Map != nil
}

func (o Optional) Decl(mangled string) (source.ModulePath, string, bool) {
	if o.Map == nil {
		return source.ModulePath{}, "", false
	}
	return o.Map.Decl(mangled)
}

func (o Optional) Source(path source.ModulePath) (string, bool) {
	if o.Map == nil {
		return "", false
	}
	return o.Map.Source(path)
}

func (o Optional) DisplayName(path source.ModulePath) (string, bool) {
	if o.Map == nil {
		return "", false
	}
	return o.Map.DisplayName(path)
}

func (o Optional) DefaultSource() (string, bool) {
	if o.Map == nil {
		return "", false
	}
	return o.Map.DefaultSource()
}

// NoSourceMap answers absent to everything.
type NoSourceMap struct{}

func (NoSourceMap) Decl(string) (source.ModulePath, string, bool) {
	return source.ModulePath{}, "", false
}

func (NoSourceMap) Source(source.ModulePath) (string, bool) { return "", false }

func (NoSourceMap) DisplayName(source.ModulePath) (string, bool) { return "", false }

func (NoSourceMap) DefaultSource() (string, bool) { return "", false }

// Nop is a ready-made NoSourceMap.
var Nop SourceMap = NoSourceMap{}

var (
	_ SourceMap = (*BasicSourceMap)(nil)
	_ SourceMap = Optional{}
	_ SourceMap = NoSourceMap{}
)
