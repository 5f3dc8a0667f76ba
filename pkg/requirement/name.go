package requirement

import (
	"regexp"
	"strings"
)

// NormalizeName lower-cases name and replaces underscores with hyphens, the
// form pip and PyPI use for project names. Names containing a VCS token or a
// URL scheme are returned unchanged so URLs embedded in them survive intact.
//
// The token check is a plain substring match, so real package names such as
// "hg_utils" or "GitPython" are also left alone.
func NormalizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if hasURLToken(lower) {
		return strings.TrimSpace(name)
	}
	return strings.ReplaceAll(lower, "_", "-")
}

func hasURLToken(lower string) bool {
	for _, kind := range VCSKinds {
		if strings.Contains(lower, string(kind)) {
			return true
		}
	}
	for _, scheme := range schemePrefixes {
		if strings.Contains(lower, scheme) {
			return true
		}
	}
	return false
}

var separatorRunRE = regexp.MustCompile(`[-_.]+`)

// CanonicalName returns the PEP 503 form of name, used to compare names
// regardless of case and separator style.
func CanonicalName(name string) string {
	return strings.ToLower(separatorRunRE.ReplaceAllString(strings.TrimSpace(name), "-"))
}

// SameName reports whether a and b refer to the same project.
func SameName(a, b string) bool {
	return CanonicalName(a) == CanonicalName(b)
}
