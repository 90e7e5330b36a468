package source

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Origin tells where a module path is anchored.
type Origin uint8

const (
	// OriginPackage anchors the path at the root package being compiled (package::a::b).
	OriginPackage Origin = iota
	// OriginExternal anchors the path at a dependency declared in the manifest (alias::a::b).
	OriginExternal
)

// PackageKeyword is the first segment of paths anchored at the root package.
const PackageKeyword = "package"

var (
	// ErrEmptyModulePath is returned when a path has no components.
	ErrEmptyModulePath = errors.New("empty module path")
	// ErrInvalidSegment is returned for empty, dot or non-identifier segments.
	ErrInvalidSegment = errors.New("invalid module path segment")
)

// ModulePath identifies one module of the module graph.
// It is comparable and is used directly as a map key.
type ModulePath struct {
	Origin  Origin
	Package string // dependency alias, empty for OriginPackage
	Path    string // нормализованные компоненты через '/': "util/math"
}

// Root returns package::<name>, the usual identity of the entry module.
// Like ParseModulePath it stores name in NFC.
func Root(name string) ModulePath {
	return ModulePath{Origin: OriginPackage, Path: norm.NFC.String(name)}
}

// External returns alias::<components...>, normalised to NFC.
func External(alias string, components ...string) ModulePath {
	return ModulePath{
		Origin:  OriginExternal,
		Package: norm.NFC.String(alias),
		Path:    norm.NFC.String(strings.Join(components, "/")),
	}
}

// IsZero reports whether p is the zero ModulePath.
func (p ModulePath) IsZero() bool {
	return p == ModulePath{}
}

// Components returns the path components below the origin.
func (p ModulePath) Components() []string {
	if p.Path == "" {
		return nil
	}
	return strings.Split(p.Path, "/")
}

// Join returns a child path with segment appended.
func (p ModulePath) Join(segment string) ModulePath {
	segment = norm.NFC.String(segment)
	if p.Path == "" {
		p.Path = segment
		return p
	}
	p.Path += "/" + segment
	return p
}

// Head returns the first segment as written in source: "package" or the alias.
func (p ModulePath) Head() string {
	if p.Origin == OriginExternal {
		return p.Package
	}
	return PackageKeyword
}

func (p ModulePath) String() string {
	var sb strings.Builder
	sb.WriteString(p.Head())
	for _, c := range p.Components() {
		sb.WriteString("::")
		sb.WriteString(c)
	}
	return sb.String()
}

// ParseModulePath parses "package::a::b", "alias::a" or a file-ish "a/b.wesl".
// A path without "::" is anchored at the root package.
func ParseModulePath(s string) (ModulePath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModulePath{}, ErrEmptyModulePath
	}
	if !strings.Contains(s, "::") {
		comps, err := splitFilePath(s)
		if err != nil {
			return ModulePath{}, err
		}
		return ModulePath{Origin: OriginPackage, Path: strings.Join(comps, "/")}, nil
	}

	parts := strings.Split(s, "::")
	head := norm.NFC.String(parts[0])
	comps := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		seg, err := checkSegment(part)
		if err != nil {
			return ModulePath{}, fmt.Errorf("%q: %w", s, err)
		}
		comps = append(comps, seg)
	}

	if head == PackageKeyword {
		if len(comps) == 0 {
			return ModulePath{}, fmt.Errorf("%q: %w", s, ErrEmptyModulePath)
		}
		return ModulePath{Origin: OriginPackage, Path: strings.Join(comps, "/")}, nil
	}
	if !IsIdent(head) {
		return ModulePath{}, fmt.Errorf("%q: package %q: %w", s, head, ErrInvalidSegment)
	}
	return ModulePath{Origin: OriginExternal, Package: head, Path: strings.Join(comps, "/")}, nil
}

// MustParseModulePath is ParseModulePath for literals known to be valid.
func MustParseModulePath(s string) ModulePath {
	p, err := ParseModulePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// splitFilePath режет "a/b.wesl" или "a\b.wgsl" на компоненты без расширения.
func splitFilePath(s string) ([]string, error) {
	for _, ext := range []string{".wesl", ".wgsl"} {
		if strings.HasSuffix(s, ext) {
			s = s[:len(s)-len(ext)]
			break
		}
	}
	s = strings.Trim(strings.ReplaceAll(s, "\\", "/"), "/")
	if s == "" {
		return nil, ErrEmptyModulePath
	}
	raw := strings.Split(s, "/")
	out := make([]string, 0, len(raw))
	for _, part := range raw {
		seg, err := checkSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, seg)
	}
	return out, nil
}

func checkSegment(seg string) (string, error) {
	seg = norm.NFC.String(strings.TrimSpace(seg))
	switch seg {
	case "":
		return "", fmt.Errorf("%w: empty", ErrInvalidSegment)
	case ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidSegment, seg)
	}
	if !IsIdent(seg) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSegment, seg)
	}
	return seg, nil
}

// IsIdent reports whether s is a valid identifier: a letter or '_' followed by
// letters, digits or '_'. A lone "_" is not an identifier.
func IsIdent(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	for i, r := range s {
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
