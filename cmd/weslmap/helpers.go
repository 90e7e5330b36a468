package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wesl/internal/mangle"
	"wesl/internal/project"
	"wesl/internal/resolve"
	"wesl/internal/smdump"
	"wesl/internal/source"
	"wesl/internal/sourcemap"
)

// loadResolver builds a FileResolver from the wesl.toml above dir. Without a
// manifest, dir itself serves the package:: modules.
func loadResolver(dir string) (*resolve.FileResolver, error) {
	layout, ok, err := project.LoadLayout(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return resolve.NewDirResolver(dir)
	}
	return resolve.NewFileResolver(layout, resolve.PathModeRelative), nil
}

func resolverFromFlags(cmd *cobra.Command) (*resolve.FileResolver, error) {
	dir, err := cmd.Root().PersistentFlags().GetString("manifest-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest-dir flag: %w", err)
	}
	return loadResolver(dir)
}

func manglerFromFlags(cmd *cobra.Command) (mangle.Mangler, error) {
	name, err := cmd.Root().PersistentFlags().GetString("mangler")
	if err != nil {
		return nil, fmt.Errorf("failed to get mangler flag: %w", err)
	}
	return mangle.ByName(name)
}

// parseDeclRef splits "package::util::fbm" into its module and declaration.
func parseDeclRef(s string) (source.ModulePath, string, error) {
	idx := strings.LastIndex(s, "::")
	if idx < 0 {
		return source.ModulePath{}, "", fmt.Errorf("declaration %q: expected <module>::<decl>", s)
	}
	decl := s[idx+2:]
	if !source.IsIdent(decl) {
		return source.ModulePath{}, "", fmt.Errorf("declaration %q: bad name %q", s, decl)
	}
	path, err := source.ParseModulePath(s[:idx])
	if err != nil {
		return source.ModulePath{}, "", err
	}
	return path, decl, nil
}

// parseTypeExpr parses "f32", "vec3<f32>" or "array<vec2<f32>, 4>".
func parseTypeExpr(s string) (mangle.TypeExpr, error) {
	p := typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return mangle.TypeExpr{}, fmt.Errorf("type %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return mangle.TypeExpr{}, fmt.Errorf("type %q: unexpected %q", s, p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) parse() (mangle.TypeExpr, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '<' || c == '>' || c == ',' || c == ' ' {
			break
		}
		p.pos++
	}
	if start == p.pos {
		return mangle.TypeExpr{}, fmt.Errorf("expected type name at %d", start)
	}
	t := mangle.TypeExpr{Name: p.src[start:p.pos]}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '<' {
		return t, nil
	}
	p.pos++
	for {
		arg, err := p.parse()
		if err != nil {
			return mangle.TypeExpr{}, err
		}
		t.Args = append(t.Args, arg)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return mangle.TypeExpr{}, fmt.Errorf("unclosed '<' in %q", t.Name)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return t, nil
		default:
			return mangle.TypeExpr{}, fmt.Errorf("unexpected %q at %d", p.src[p.pos], p.pos)
		}
	}
}

// readDump loads a snapshot written by "weslmap record". The format comes
// from the extension; text dumps cannot be read back.
func readDump(path string) (*sourcemap.BasicSourceMap, error) {
	format := smdump.FormatForPath(path)
	if format == smdump.FormatText {
		return nil, fmt.Errorf("%s: cannot read text dump, record with --format json|msgpack", path)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sm, err := smdump.ReadMap(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sm, nil
}
