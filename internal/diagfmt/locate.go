package diagfmt

import (
	"wesl/internal/diag"
	"wesl/internal/source"
	"wesl/internal/sourcemap"
)

// DefaultName labels diagnostics that fell back to the default source.
const DefaultName = "<source>"

// location is the module text a diagnostic is rendered against.
type location struct {
	name   string
	text   string
	module source.ModulePath
	hasMod bool
}

// locate picks the source for d: the explicit module, then the module that
// declared d.Decl, then the default source. A diagnostic that names a module
// is never rendered against the default source.
func locate(d diag.Diagnostic, sm sourcemap.SourceMap) (location, bool) {
	if sm == nil {
		return location{}, false
	}
	if d.Module != nil {
		if loc, ok := moduleLocation(*d.Module, sm); ok {
			return loc, true
		}
	}
	if d.Decl != "" {
		if path, _, ok := sm.Decl(d.Decl); ok {
			if loc, ok := moduleLocation(path, sm); ok {
				return loc, true
			}
		}
	}
	if d.Module != nil {
		return location{}, false
	}
	if text, ok := sm.DefaultSource(); ok {
		return location{name: DefaultName, text: text}, true
	}
	return location{}, false
}

func moduleLocation(path source.ModulePath, sm sourcemap.SourceMap) (location, bool) {
	text, ok := sm.Source(path)
	if !ok {
		return location{}, false
	}
	name, ok := sm.DisplayName(path)
	if !ok {
		name = path.String()
	}
	return location{name: name, text: text, module: path, hasMod: true}, true
}
