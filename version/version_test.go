package version

import (
	"runtime"
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	return func() {
		Version = origVersion
		Commit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	Commit = ""
	BuildTime = ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease() {
		t.Error("dev should not be a release")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected go version %q, got %q", runtime.Version(), info.GoVersion)
	}
}

func TestGetFromLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	Commit = "abc1234def5678"
	BuildTime = "2026-01-15T10:30:00Z"

	info := Get()
	if info.Commit != "abc1234" {
		t.Errorf("expected commit truncated to 'abc1234', got %q", info.Commit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("expected build time from ldflags, got %q", info.BuildTime)
	}
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{"tagged", Info{Version: "1.0.0"}, true},
		{"dev", Info{Version: "dev"}, false},
		{"dirty tree", Info{Version: "1.0.0", Dirty: true}, false},
		{"dirty version", Info{Version: "1.0.0-dirty"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.IsRelease(); got != tc.want {
				t.Errorf("IsRelease() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"no commit", Info{Version: "dev"}, "dev"},
		{"commit", Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.Short(); got != tc.want {
				t.Errorf("Short() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	s := Info{Version: "1.0.0", Commit: "abc1234", BuildTime: "2026-01-15T10:30:00Z", GoVersion: "go1.26.0"}.String()
	for _, want := range []string{"1.0.0-abc1234", "built 2026-01-15T10:30:00Z", "go1.26.0"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}
