package requirement

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// projectDescriptors mark a directory as an installable Python project.
var projectDescriptors = []string{"setup.py", "setup.cfg", "pyproject.toml"}

// archiveExtensions are the distribution formats pip can install from a file.
var archiveExtensions = []string{
	".zip", ".whl",
	".tar.bz2", ".tbz",
	".tar.xz", ".txz", ".tlz", ".tar.lz", ".tar.lzma",
	".tar.gz", ".tgz", ".tar",
}

// schemePrefixes are the URL schemes that mark a string as a URL rather than
// a package name.
var schemePrefixes = []string{"http://", "https://", "ftp://", "ftps://", "file://"}

// IsInstallable reports whether path names an existing project directory or
// archive file. A string starting with a specifier operator that parses as a
// specifier set is never a path, even if such a file exists. Anything that
// cannot be stat'ed is not installable.
func IsInstallable(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" || path == "*" {
		return false
	}
	if hasSpecifierOperator(path) && isSpecifierSet(path) {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return IsInstallableDir(abs)
	}
	return info.Mode().IsRegular() && IsArchiveFile(abs)
}

// IsInstallableDir reports whether dir contains a setup.py, setup.cfg or
// pyproject.toml.
func IsInstallableDir(dir string) bool {
	for _, name := range projectDescriptors {
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// IsArchiveFile reports whether name has a distribution archive extension.
func IsArchiveFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsValidURL reports whether s parses as a URL with both a scheme and a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// isRemote reports whether s should be kept as a URL. file: URLs have no host
// but still name a location pip downloads from.
func isRemote(s string) bool {
	return IsValidURL(s) || strings.HasPrefix(strings.ToLower(s), "file:")
}

// hasPathSyntax reports whether s is written like a filesystem path rather
// than a package name.
func hasPathSyntax(s string) bool {
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "~") || filepath.IsAbs(s) {
		return true
	}
	return strings.ContainsAny(s, `/\`)
}
