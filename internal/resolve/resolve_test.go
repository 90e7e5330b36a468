package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wesl/internal/project"
	"wesl/internal/source"
)

func TestVirtualResolver(t *testing.T) {
	main := source.Root("main")
	util := source.MustParseModulePath("package::util")
	r := NewVirtualResolver().
		Add(main, "main.wesl", "fn main() {}").
		Add(util, "", "fn helper() {}")

	text, err := r.ResolveSource(main)
	if err != nil || text != "fn main() {}" {
		t.Fatalf("ResolveSource(main) = %q, %v", text, err)
	}
	if name, ok := r.DisplayName(main); !ok || name != "main.wesl" {
		t.Fatalf("DisplayName(main) = %q, %v", name, ok)
	}
	if _, ok := r.DisplayName(util); ok {
		t.Fatal("expected no display name for util")
	}
	if _, ok := r.FSPath(main); ok {
		t.Fatal("virtual modules have no filesystem path")
	}

	r.Remove(util)
	_, err = r.ResolveSource(util)
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Path != util || rerr.Reason != ReasonNotFound {
		t.Fatalf("unexpected error value %#v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	p := source.Root("main")
	e := &Error{Path: p, Reason: ReasonIO, Err: os.ErrPermission}
	if !strings.Contains(e.Error(), "resolve package::main: io error") {
		t.Fatalf("unexpected message %q", e.Error())
	}
	if !errors.Is(e, os.ErrPermission) {
		t.Fatal("expected Unwrap to expose the cause")
	}
	if errors.Is(e, ErrModuleNotFound) {
		t.Fatal("io errors are not ErrModuleNotFound")
	}
	if got := (&Error{Path: p, Reason: ReasonUnknownPackage}).Error(); got != "resolve package::main: unknown package" {
		t.Fatalf("unexpected message %q", got)
	}
}

func newLayout(t *testing.T) *project.Layout {
	t.Helper()
	proj := t.TempDir()
	files := map[string]string{
		"src/main.wesl":          "\uFEFFimport package::util;\r\nfn main() {}\r\n",
		"src/util.wgsl":          "fn helper() {}",
		"src/util/math.wesl":     "fn sq(x: f32) -> f32 { return x * x; }",
		"deps/noise/perlin.wesl": "fn fbm() {}",
		"deps/noise/lib.wesl":    "// noise root",
	}
	for rel, content := range files {
		full := filepath.Join(proj, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return &project.Layout{
		ProjectDir: proj,
		RootDir:    filepath.Join(proj, "src"),
		Deps:       map[string]string{"noise": filepath.Join(proj, "deps", "noise")},
	}
}

func TestFileResolverResolvesAndNormalizes(t *testing.T) {
	layout := newLayout(t)
	r := NewFileResolver(layout, PathModeRelative)

	text, err := r.ResolveSource(source.Root("main"))
	if err != nil {
		t.Fatalf("ResolveSource(main): %v", err)
	}
	if text != "import package::util;\nfn main() {}\n" {
		t.Fatalf("expected BOM and CRLF to be normalised, got %q", text)
	}

	tests := []struct {
		path string
		name string
		file string
	}{
		{"package::main", "src/main.wesl", "src/main.wesl"},
		{"package::util", "src/util.wgsl", "src/util.wgsl"},
		{"package::util::math", "src/util/math.wesl", "src/util/math.wesl"},
		{"noise::perlin", "deps/noise/perlin.wesl", "deps/noise/perlin.wesl"},
	}
	for _, tt := range tests {
		p := source.MustParseModulePath(tt.path)
		name, ok := r.DisplayName(p)
		if !ok || name != tt.name {
			t.Errorf("DisplayName(%s) = %q, %v; want %q", tt.path, name, ok, tt.name)
		}
		fsPath, ok := r.FSPath(p)
		if !ok || fsPath != filepath.Join(layout.ProjectDir, filepath.FromSlash(tt.file)) {
			t.Errorf("FSPath(%s) = %q, %v", tt.path, fsPath, ok)
		}
	}

	rootText, err := r.ResolveSource(source.External("noise"))
	if err != nil || rootText != "// noise root" {
		t.Fatalf("dependency root: %q, %v", rootText, err)
	}
}

func TestFileResolverPathModes(t *testing.T) {
	layout := newLayout(t)
	main := source.Root("main")

	name, ok := NewFileResolver(layout, PathModeBasename).DisplayName(main)
	if !ok || name != "main.wesl" {
		t.Fatalf("basename mode: %q", name)
	}
	name, ok = NewFileResolver(layout, PathModeAbsolute).DisplayName(main)
	if !ok || name != filepath.ToSlash(filepath.Join(layout.RootDir, "main.wesl")) {
		t.Fatalf("absolute mode: %q", name)
	}
}

func TestFileResolverFailures(t *testing.T) {
	r := NewFileResolver(newLayout(t), PathModeRelative)

	_, err := r.ResolveSource(source.Root("missing"))
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
	_, err = r.ResolveSource(source.External("unknown", "x"))
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Reason != ReasonUnknownPackage {
		t.Fatalf("expected unknown package, got %v", err)
	}
	if _, ok := r.DisplayName(source.Root("missing")); ok {
		t.Fatal("missing module must have no display name")
	}
	if _, ok := r.FSPath(source.Root("missing")); ok {
		t.Fatal("missing module must have no filesystem path")
	}
}

func TestNewDirResolver(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.wgsl"), []byte("fn main() {}"), 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := NewDirResolver(dir)
	if err != nil {
		t.Fatalf("NewDirResolver: %v", err)
	}
	name, ok := r.DisplayName(source.Root("main"))
	if !ok || name != "main.wgsl" {
		t.Fatalf("DisplayName = %q, %v", name, ok)
	}
}
