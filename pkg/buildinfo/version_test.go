package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

// setVars sets the package variables for one test and restores them after.
func setVars(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFill(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/matzehuels/reqconv", Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	t.Run("unset values", func(t *testing.T) {
		setVars(t, "dev", "none", "unknown")
		fill(info)
		if Version != "v1.2.0" || Commit != "abc123" || Date != "2026-01-02T03:04:05Z" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("ldflags win", func(t *testing.T) {
		setVars(t, "v9.0.0", "fff", "today")
		fill(info)
		if Version != "v9.0.0" || Commit != "fff" || Date != "today" {
			t.Errorf("ldflags values overwritten: %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("devel build", func(t *testing.T) {
		setVars(t, "dev", "none", "unknown")
		fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		if Version != "dev" {
			t.Errorf("Version = %q, want dev", Version)
		}
	})
}

func TestString(t *testing.T) {
	setVars(t, "v1.0.0", "abc", "2026-01-01")
	want := "version: v1.0.0\ncommit: abc\nbuilt: 2026-01-01"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	setVars(t, "v1.0.0", "abc", "2026-01-01")
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v1.0.0\n") {
		t.Errorf("Template() = %q", got)
	}
}
