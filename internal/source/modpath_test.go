package source

import (
	"errors"
	"testing"
)

func TestParseModulePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ModulePath
	}{
		{name: "package anchored", in: "package::util::math", want: ModulePath{Origin: OriginPackage, Path: "util/math"}},
		{name: "bare name is root package", in: "main", want: Root("main")},
		{name: "file path with extension", in: "util/math.wesl", want: ModulePath{Origin: OriginPackage, Path: "util/math"}},
		{name: "windows separators", in: `util\noise.wgsl`, want: ModulePath{Origin: OriginPackage, Path: "util/noise"}},
		{name: "external alias", in: "noise::perlin", want: External("noise", "perlin")},
		{name: "external alias root", in: "noise::", want: ModulePath{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModulePath(tt.in)
			if tt.want.IsZero() {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModulePath(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseModulePath(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseModulePathRejectsBadSegments(t *testing.T) {
	for _, in := range []string{"package::..", "package::a::", "a/../b", "package::1abc", "bad-alias::x", "_::x"} {
		_, err := ParseModulePath(in)
		if !errors.Is(err, ErrInvalidSegment) {
			t.Errorf("ParseModulePath(%q): expected ErrInvalidSegment, got %v", in, err)
		}
	}
	for _, in := range []string{"", "   ", "package::"} {
		_, err := ParseModulePath(in)
		if err == nil {
			t.Errorf("ParseModulePath(%q): expected error", in)
		}
	}
}

func TestModulePathStringRoundTrip(t *testing.T) {
	for _, in := range []string{"package::main", "package::util::math", "noise::perlin::fbm"} {
		p := MustParseModulePath(in)
		if got := p.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
		again := MustParseModulePath(p.String())
		if again != p {
			t.Errorf("round trip changed %+v into %+v", p, again)
		}
	}
	if got := External("noise").String(); got != "noise" {
		t.Errorf("alias root String() = %q", got)
	}
}

// Составные и предсоставленные формы одной буквы должны давать один ключ.
func TestModulePathNFCEquality(t *testing.T) {
	composed := MustParseModulePath("package::caf\u00e9")
	decomposed := MustParseModulePath("package::cafe\u0301")
	if composed != decomposed {
		t.Fatalf("expected NFC-equal paths to be equal keys: %+v vs %+v", composed, decomposed)
	}
	m := map[ModulePath]int{composed: 1}
	if m[decomposed] != 1 {
		t.Fatal("expected decomposed path to hit the same map entry")
	}
}

func TestModulePathConstructorsNormalize(t *testing.T) {
	parsed := MustParseModulePath("package::caf\u00e9")
	if got := Root("cafe\u0301"); got != parsed {
		t.Fatalf("Root = %+v, want %+v", got, parsed)
	}
	if got := Root("x").Join("cafe\u0301"); got != MustParseModulePath("package::x::caf\u00e9") {
		t.Fatalf("Join = %+v", got)
	}
	ext := MustParseModulePath("nai\u0308ve::caf\u00e9")
	if got := External("na\u00efve", "cafe\u0301"); got != ext {
		t.Fatalf("External = %+v, want %+v", got, ext)
	}
}

func TestModulePathJoinAndComponents(t *testing.T) {
	p := Root("util").Join("math")
	if p.Path != "util/math" {
		t.Fatalf("Join: got %q", p.Path)
	}
	comps := p.Components()
	if len(comps) != 2 || comps[0] != "util" || comps[1] != "math" {
		t.Fatalf("Components: got %v", comps)
	}
	if External("noise").Components() != nil {
		t.Fatal("expected no components for alias root")
	}
	if got := External("noise").Join("perlin"); got != External("noise", "perlin") {
		t.Fatalf("Join on alias root: got %+v", got)
	}
	if got := p.Head(); got != PackageKeyword {
		t.Fatalf("Head: got %q", got)
	}
}

func TestIsIdent(t *testing.T) {
	cases := map[string]bool{
		"foo":   true,
		"_foo":  true,
		"f00":   true,
		"héllo": true,
		"_":     false,
		"":      false,
		"9lives": false,
		"a-b":   false,
	}
	for in, want := range cases {
		if got := IsIdent(in); got != want {
			t.Errorf("IsIdent(%q) = %v, want %v", in, got, want)
		}
	}
}
