package resolve

import (
	"wesl/internal/source"
)

type virtualModule struct {
	name string
	text string
}

// VirtualResolver serves modules added from memory (tests, stdin, generated code).
// It is not safe for concurrent Add; resolution is read-only.
type VirtualResolver struct {
	modules map[source.ModulePath]virtualModule
}

// NewVirtualResolver creates an empty VirtualResolver.
func NewVirtualResolver() *VirtualResolver {
	return &VirtualResolver{modules: make(map[source.ModulePath]virtualModule)}
}

// Add registers or replaces a module. An empty displayName means none.
func (r *VirtualResolver) Add(path source.ModulePath, displayName, text string) *VirtualResolver {
	r.modules[path] = virtualModule{name: displayName, text: text}
	return r
}

// Remove forgets a module so that later resolutions fail.
func (r *VirtualResolver) Remove(path source.ModulePath) {
	delete(r.modules, path)
}

func (r *VirtualResolver) ResolveSource(path source.ModulePath) (string, error) {
	m, ok := r.modules[path]
	if !ok {
		return "", notFound(path)
	}
	return m.text, nil
}

func (r *VirtualResolver) DisplayName(path source.ModulePath) (string, bool) {
	m, ok := r.modules[path]
	if !ok || m.name == "" {
		return "", false
	}
	return m.name, true
}

// FSPath always reports absent: virtual modules have no backing file.
func (r *VirtualResolver) FSPath(source.ModulePath) (string, bool) {
	return "", false
}
