package sourcemap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wesl/internal/source"
)

func sampleMap() *BasicSourceMap {
	sm := NewBasicSourceMap()
	main := source.Root("main")
	noise := source.External("noise")
	sm.AddSource(noise, "", "fn seed() {}")
	sm.AddSource(main, "main.wesl", "fn f(){}")
	sm.AddDecl("f_2", main, "f")
	sm.AddDecl("X5noise_4seed", noise, "seed")
	sm.SetDefaultSource("fn f(){}")
	return sm
}

func TestSnapshotIsSorted(t *testing.T) {
	def := "fn f(){}"
	want := Snapshot{
		Version: SnapshotVersion,
		Default: &def,
		Sources: []SourceEntry{
			{Module: ModuleRef{Origin: source.OriginExternal, Package: "noise"}, Text: "fn seed() {}"},
			{Module: ModuleRef{Origin: source.OriginPackage, Path: "main"}, Display: "main.wesl", Text: "fn f(){}"},
		},
		Decls: []DeclEntry{
			{Mangled: "X5noise_4seed", Module: ModuleRef{Origin: source.OriginExternal, Package: "noise"}, Decl: "seed"},
			{Mangled: "f_2", Module: ModuleRef{Origin: source.OriginPackage, Path: "main"}, Decl: "f"},
		},
	}
	if diff := cmp.Diff(want, sampleMap().Snapshot()); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotRestore(t *testing.T) {
	orig := sampleMap()
	restored, err := orig.Snapshot().Restore()
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if diff := cmp.Diff(orig.Snapshot(), restored.Snapshot()); diff != "" {
		t.Fatalf("restored map differs (-orig +restored):\n%s", diff)
	}
	p, decl, ok := restored.Decl("X5noise_4seed")
	if !ok || p != source.External("noise") || decl != "seed" {
		t.Fatalf("Decl after restore = (%v, %q, %v)", p, decl, ok)
	}
}

func TestSnapshotEmptyAndNil(t *testing.T) {
	var nilMap *BasicSourceMap
	snap := nilMap.Snapshot()
	if snap.Default != nil || len(snap.Sources) != 0 || len(snap.Decls) != 0 {
		t.Fatalf("nil map snapshot must be empty: %+v", snap)
	}
	restored, err := snap.Restore()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := restored.DefaultSource(); ok {
		t.Fatal("no default expected")
	}
}

func TestSnapshotRejectsUnknownVersion(t *testing.T) {
	_, err := Snapshot{Version: 99}.Restore()
	if err == nil || !strings.Contains(err.Error(), "unsupported snapshot version 99") {
		t.Fatalf("expected version error, got %v", err)
	}
}
