package sourcemap

import (
	"fmt"

	"wesl/internal/source"
)

// SnapshotVersion is bumped whenever the Snapshot layout changes.
const SnapshotVersion uint16 = 1

// ModuleRef is the serialisable form of source.ModulePath.
type ModuleRef struct {
	Origin  source.Origin `json:"origin" msgpack:"origin"`
	Package string        `json:"package,omitempty" msgpack:"package,omitempty"`
	Path    string        `json:"path" msgpack:"path"`
}

// RefOf converts a module path.
func RefOf(p source.ModulePath) ModuleRef {
	return ModuleRef{Origin: p.Origin, Package: p.Package, Path: p.Path}
}

// ModulePath converts back.
func (r ModuleRef) ModulePath() source.ModulePath {
	return source.ModulePath{Origin: r.Origin, Package: r.Package, Path: r.Path}
}

// SourceEntry is one recorded module.
type SourceEntry struct {
	Module  ModuleRef `json:"module" msgpack:"module"`
	Display string    `json:"display,omitempty" msgpack:"display,omitempty"`
	Text    string    `json:"text" msgpack:"text"`
}

// DeclEntry is one recorded mangled name.
type DeclEntry struct {
	Mangled string    `json:"mangled" msgpack:"mangled"`
	Module  ModuleRef `json:"module" msgpack:"module"`
	Decl    string    `json:"decl" msgpack:"decl"`
}

// Snapshot is a deterministic, serialisable copy of a BasicSourceMap.
type Snapshot struct {
	Version uint16        `json:"version" msgpack:"version"`
	Default *string       `json:"default,omitempty" msgpack:"default,omitempty"`
	Sources []SourceEntry `json:"sources" msgpack:"sources"`
	Decls   []DeclEntry   `json:"decls" msgpack:"decls"`
}

// Snapshot copies the map; entries are sorted by module and mangled name.
func (m *BasicSourceMap) Snapshot() Snapshot {
	snap := Snapshot{
		Version: SnapshotVersion,
		Sources: []SourceEntry{},
		Decls:   []DeclEntry{},
	}
	if m == nil {
		return snap
	}
	if text, ok := m.DefaultSource(); ok {
		snap.Default = &text
	}
	for _, p := range m.Modules() {
		e := m.sources[p]
		snap.Sources = append(snap.Sources, SourceEntry{Module: RefOf(p), Display: e.name, Text: e.text})
	}
	for _, name := range m.Decls() {
		e := m.decls[name]
		snap.Decls = append(snap.Decls, DeclEntry{Mangled: name, Module: RefOf(e.path), Decl: e.decl})
	}
	return snap
}

// Restore rebuilds a BasicSourceMap from a snapshot.
func (s Snapshot) Restore() (*BasicSourceMap, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", s.Version, SnapshotVersion)
	}
	m := NewBasicSourceMap()
	for _, e := range s.Sources {
		m.AddSource(e.Module.ModulePath(), e.Display, e.Text)
	}
	for _, e := range s.Decls {
		m.AddDecl(e.Mangled, e.Module.ModulePath(), e.Decl)
	}
	if s.Default != nil {
		m.SetDefaultSource(*s.Default)
	}
	return m, nil
}
