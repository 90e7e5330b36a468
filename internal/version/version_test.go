package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion := Version
	origGitCommit := GitCommit
	t.Cleanup(func() {
		Version = origVersion
		GitCommit = origGitCommit
	})

	// как -ldflags "-X wesl/internal/version.Version=1.2.3"
	Version = "1.2.3"
	GitCommit = "abc123def456"
	if got := Colored(Version, false); got != "1.2.3" {
		t.Errorf("Colored(%q) = %q", Version, got)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in      string
		enabled bool
		want    string
	}{
		{"0.1.0-dev", false, "0.1.0-dev"},
		{"dev", true, "dev"},
		{"1.2", true, "1.2"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in, tt.enabled); got != tt.want {
			t.Errorf("Colored(%q, %v) = %q, want %q", tt.in, tt.enabled, got, tt.want)
		}
	}

	got := Colored("0.1.0-dev", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Errorf("expected coloured version, got %q", got)
	}
}
