package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"wesl/internal/source"
)

// Dependency describes an entry in [dependencies].
type Dependency struct {
	Path string `toml:"path"`
}

// Manifest is the parsed wesl.toml of a project or dependency.
type Manifest struct {
	Name         string
	Root         string
	Dependencies map[string]Dependency
}

// Layout holds the absolute directories a resolver needs.
type Layout struct {
	ProjectDir string            // каталог с wesl.toml
	RootDir    string            // каталог с модулями package::
	Deps       map[string]string // alias -> каталог с модулями зависимости
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageRootMissing indicates that [package].root is missing in a manifest.
	ErrPackageRootMissing = errors.New("missing [package].root")
)

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
		Root string `toml:"root"`
	} `toml:"package"`
	Dependencies map[string]Dependency `toml:"dependencies"`
}

// LoadManifest parses a wesl.toml.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	root := strings.TrimSpace(cfg.Package.Root)
	if !meta.IsDefined("package", "root") || root == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageRootMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Manifest{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	deps := cfg.Dependencies
	if deps == nil {
		deps = map[string]Dependency{}
	}
	return Manifest{
		Name:         strings.TrimSpace(cfg.Package.Name),
		Root:         root,
		Dependencies: deps,
	}, nil
}

// ResolveRoot resolves and validates a module root relative to baseDir.
func ResolveRoot(baseDir, root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", ErrPackageRootMissing
	}
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("invalid root %q: must be relative", root)
	}
	clean := filepath.Clean(filepath.FromSlash(root))
	if clean == "." {
		clean = ""
	}
	rootPath := filepath.Join(baseDir, clean)
	if !pathWithin(baseDir, rootPath) {
		return "", fmt.Errorf("invalid root %q: escapes %s", root, baseDir)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("invalid root %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid root %q: not a directory", root)
	}
	return rootPath, nil
}

// LoadLayout finds the manifest above startDir and resolves all module roots.
// ok is false when no wesl.toml exists.
func LoadLayout(startDir string) (*Layout, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	layout, err := LayoutFromManifest(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return layout, true, nil
}

// LayoutFromManifest resolves the roots declared by the manifest at manifestPath.
// A dependency directory may carry its own wesl.toml whose [package].root is
// honoured; otherwise the directory itself is the dependency root.
func LayoutFromManifest(manifestPath string) (*Layout, error) {
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	projectDir := filepath.Dir(manifestPath)
	rootDir, err := ResolveRoot(projectDir, manifest.Root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}
	layout := &Layout{
		ProjectDir: projectDir,
		RootDir:    rootDir,
		Deps:       make(map[string]string, len(manifest.Dependencies)),
	}
	for alias, dep := range manifest.Dependencies {
		if !source.IsIdent(alias) || alias == source.PackageKeyword {
			return nil, fmt.Errorf("%s: invalid dependency name %q", manifestPath, alias)
		}
		if strings.TrimSpace(dep.Path) == "" {
			return nil, fmt.Errorf("%s: dependency %q missing path", manifestPath, alias)
		}
		depDir, err := ResolveRoot(projectDir, dep.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: dependency %q: %w", manifestPath, alias, err)
		}
		depManifest := filepath.Join(depDir, ManifestName)
		if _, statErr := os.Stat(depManifest); statErr == nil {
			inner, err := LoadManifest(depManifest)
			if err != nil {
				return nil, fmt.Errorf("dependency %q: %w", alias, err)
			}
			if depDir, err = ResolveRoot(depDir, inner.Root); err != nil {
				return nil, fmt.Errorf("dependency %q: %w", alias, err)
			}
		}
		layout.Deps[alias] = depDir
	}
	return layout, nil
}

// Aliases returns dependency aliases in sorted order.
func (l *Layout) Aliases() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.Deps))
	for alias := range l.Deps {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
