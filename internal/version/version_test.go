package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	tests := []struct {
		in, want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3+build.7", "1.2.3+build.7"},
		{"nightly", "nightly"},
		{"1.2", "1.2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Colored(tt.in); got != tt.want {
				t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColoredEnabled(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = saved })

	got := Colored("1.2.3-rc1")
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", got)
	}
	if !strings.HasSuffix(got, "-rc1") {
		t.Errorf("suffix lost: %q", got)
	}
}

func TestInfoString(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	s := info.String()
	for _, part := range []string{"calc 1.2.3", "(abc123)", "built 2024-01-15T10:30:00Z", info.GoVersion} {
		if !strings.Contains(s, part) {
			t.Errorf("%q missing %q", s, part)
		}
	}

	GitCommit, BuildDate = "", ""
	if s := Current().String(); strings.Contains(s, "()") || strings.Contains(s, "built") {
		t.Errorf("empty optional fields rendered: %q", s)
	}
}
