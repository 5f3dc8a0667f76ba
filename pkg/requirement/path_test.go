package requirement

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsInstallable(t *testing.T) {
	dir := t.TempDir()

	setupPy := filepath.Join(dir, "legacy")
	mustMkdir(t, setupPy)
	mustWrite(t, filepath.Join(setupPy, "setup.py"), "from setuptools import setup\nsetup()\n")

	pyproject := filepath.Join(dir, "modern")
	mustMkdir(t, pyproject)
	mustWrite(t, filepath.Join(pyproject, "pyproject.toml"), "[build-system]\n")

	setupCfg := filepath.Join(dir, "declarative")
	mustMkdir(t, setupCfg)
	mustWrite(t, filepath.Join(setupCfg, "setup.cfg"), "[metadata]\nname = declarative\n")

	descriptorDir := filepath.Join(dir, "odd")
	mustMkdir(t, filepath.Join(descriptorDir, "setup.py"))

	wheel := filepath.Join(dir, "demo-1.0-py3-none-any.whl")
	mustWrite(t, wheel, "")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"setup.py project", setupPy, true},
		{"pyproject project", pyproject, true},
		{"setup.cfg project", setupCfg, true},
		{"descriptor is a directory", descriptorDir, false},
		{"wheel", wheel, true},
		{"missing", filepath.Join(dir, "missing"), false},
		{"star", "*", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInstallable(tt.path); got != tt.want {
				t.Errorf("IsInstallable(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsInstallableRelative(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	mustMkdir(t, filepath.Join("libs", "core"))
	mustWrite(t, filepath.Join("libs", "core", "setup.py"), "")

	if !IsInstallable("./libs/core") {
		t.Error("IsInstallable(./libs/core) = false, want true")
	}
}

func TestIsInstallableUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	mustMkdir(t, filepath.Join(locked, "project"))
	mustWrite(t, filepath.Join(locked, "project", "setup.py"), "")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	if IsInstallable(filepath.Join(locked, "project")) {
		t.Error("IsInstallable on unreadable directory = true, want false")
	}
}

func TestIsArchiveFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"pkg-1.0.tar.gz", true},
		{"pkg-1.0.TGZ", true},
		{"pkg-1.0.zip", true},
		{"pkg-1.0-py3-none-any.whl", true},
		{"pkg-1.0.tar.bz2", true},
		{"pkg-1.0.tar.xz", true},
		{"pkg-1.0.tar", true},
		{"pkg-1.0.gz", false},
		{"setup.py", false},
		{"README", false},
	}

	for _, tt := range tests {
		if got := IsArchiveFile(tt.name); got != tt.want {
			t.Errorf("IsArchiveFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://pypi.org/simple", true},
		{"http://localhost:8080/simple", true},
		{"ftp://mirror.example.org/pub", true},
		{"file:///srv/wheels", false},
		{"pypi.org/simple", false},
		{"requests", false},
		{">=1.0", false},
	}

	for _, tt := range tests {
		if got := IsValidURL(tt.input); got != tt.want {
			t.Errorf("IsValidURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
