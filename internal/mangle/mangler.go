// Package mangle turns (module, declaration) pairs into identifiers that are
// unique in the merged output.
package mangle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"wesl/internal/source"
)

// TypeExpr is a type as written in a generic instantiation, e.g. vec3<f32>.
type TypeExpr struct {
	Name string
	Args []TypeExpr
}

func (t TypeExpr) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// Mangler is the compiler's naming delegation point.
type Mangler interface {
	// Mangle returns the output identifier for decl declared in path.
	Mangle(path source.ModulePath, decl string) string
	// Unmangle reverses Mangle using the mangler's own scheme, if it can.
	Unmangle(mangled string) (source.ModulePath, string, bool)
	// MangleTypes names the variant-th instantiation of decl with the given type arguments.
	MangleTypes(decl string, variant uint32, types []TypeExpr) string
}

// mangleTypes is shared by all manglers in this package:
// <decl>_V<variant>_<type>... where each type is length-prefixed and
// generic arguments are wrapped in I...E.
func mangleTypes(decl string, variant uint32, types []TypeExpr) string {
	var sb strings.Builder
	sb.WriteString(decl)
	sb.WriteString("_V")
	sb.WriteString(strconv.FormatUint(uint64(variant), 10))
	for _, t := range types {
		sb.WriteByte('_')
		writeType(&sb, t)
	}
	return sb.String()
}

func writeType(sb *strings.Builder, t TypeExpr) {
	writeSeg(sb, t.Name)
	if len(t.Args) == 0 {
		return
	}
	sb.WriteByte('I')
	for _, a := range t.Args {
		writeType(sb, a)
	}
	sb.WriteByte('E')
}

func writeSeg(sb *strings.Builder, s string) {
	sb.WriteString(strconv.Itoa(len(s)))
	sb.WriteString(s)
}

var registry = map[string]func() Mangler{
	"escape": func() Mangler { return EscapeMangler{} },
	"hash":   func() Mangler { return HashMangler{} },
	"none":   func() Mangler { return NoMangler{} },
}

// Names lists the manglers known to ByName.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ByName returns the mangler registered under name (escape|hash|none).
func ByName(name string) (Mangler, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown mangler %q (expected: %s)", name, strings.Join(Names(), "|"))
	}
	return ctor(), nil
}
