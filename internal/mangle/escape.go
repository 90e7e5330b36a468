package mangle

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"wesl/internal/source"
)

// Prefixes of the escape scheme.
const (
	packagePrefix  = 'P' // package::...
	externalPrefix = 'X' // alias::...
)

// EscapeMangler is a reversible scheme: every segment is length-prefixed so
// identifiers may contain '_' freely.
//
//	package::util::math + foo  ->  P_4util_4math_3foo
//	noise::perlin + fbm         ->  X5noise_6perlin_3fbm
type EscapeMangler struct{}

func (EscapeMangler) Mangle(path source.ModulePath, decl string) string {
	var sb strings.Builder
	if path.Origin == source.OriginExternal {
		sb.WriteByte(externalPrefix)
		writeSeg(&sb, path.Package)
	} else {
		sb.WriteByte(packagePrefix)
	}
	for _, c := range path.Components() {
		sb.WriteByte('_')
		writeSeg(&sb, c)
	}
	sb.WriteByte('_')
	writeSeg(&sb, decl)
	return sb.String()
}

func (EscapeMangler) Unmangle(mangled string) (source.ModulePath, string, bool) {
	if mangled == "" {
		return source.ModulePath{}, "", false
	}
	var path source.ModulePath
	rest := mangled[1:]
	switch mangled[0] {
	case packagePrefix:
		path.Origin = source.OriginPackage
	case externalPrefix:
		alias, tail, ok := readSeg(rest)
		if !ok {
			return source.ModulePath{}, "", false
		}
		path.Origin = source.OriginExternal
		path.Package = alias
		rest = tail
	default:
		return source.ModulePath{}, "", false
	}

	var segs []string
	for rest != "" {
		if rest[0] != '_' {
			return source.ModulePath{}, "", false
		}
		seg, tail, ok := readSeg(rest[1:])
		if !ok {
			return source.ModulePath{}, "", false
		}
		segs = append(segs, seg)
		rest = tail
	}
	if len(segs) == 0 {
		return source.ModulePath{}, "", false
	}
	path.Path = strings.Join(segs[:len(segs)-1], "/")
	if path.Origin == source.OriginPackage && path.Path == "" {
		return source.ModulePath{}, "", false
	}
	return path, segs[len(segs)-1], true
}

func (EscapeMangler) MangleTypes(decl string, variant uint32, types []TypeExpr) string {
	return mangleTypes(decl, variant, types)
}

// readSeg читает "<len><ident>" и возвращает идентификатор и остаток.
func readSeg(s string) (seg, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || (i > 1 && s[0] == '0') {
		return "", "", false
	}
	n64, err := strconv.ParseUint(s[:i], 10, 32)
	if err != nil {
		return "", "", false
	}
	n, err := safecast.Conv[int](n64)
	if err != nil || n == 0 || len(s)-i < n {
		return "", "", false
	}
	seg = s[i : i+n]
	if !source.IsIdent(seg) {
		return "", "", false
	}
	return seg, s[i+n:], true
}
