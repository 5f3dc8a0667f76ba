package requirement

import "strings"

// Kind is the source kind of a dependency entry.
type Kind int

const (
	Star         Kind = iota // any version from the package index
	PlainVersion             // a version specifier such as ">=1.0,<2"
	Vcs                      // a version control checkout
	LocalPath                // a local project directory or archive file
	URL                      // a remote archive
)

var kindNames = [...]string{
	Star:         "star",
	PlainVersion: "version",
	Vcs:          "vcs",
	LocalPath:    "path",
	URL:          "url",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Classify decides the kind of a raw Pipfile value. Tables are classified by
// their keys: any VCS key wins, then path, then file; a table with none of
// these is classified by its version value. Strings go through ClassifyString.
func Classify(raw any) Kind {
	switch v := raw.(type) {
	case string:
		return ClassifyString(v)
	case map[string]any:
		if _, ok := vcsKey(v); ok {
			return Vcs
		}
		if _, ok := v["path"]; ok {
			return LocalPath
		}
		if f, ok := v["file"].(string); ok {
			if isRemote(f) {
				return URL
			}
			return LocalPath
		}
		version, _ := v["version"].(string)
		if version == "" {
			return Star
		}
		return ClassifyString(version)
	default:
		return Star
	}
}

// ClassifyString decides the kind of a bare string value. It never fails:
// strings that match no other rule are treated as version specifiers and
// left for the installer to validate.
func ClassifyString(s string) Kind {
	s = strings.TrimSpace(s)
	switch {
	case s == "*" || s == "":
		return Star
	case IsVCS(s):
		return Vcs
	case hasSpecifierOperator(s) && isSpecifierSet(s):
		return PlainVersion
	case IsInstallable(s):
		return LocalPath
	case IsValidURL(s):
		return URL
	default:
		return PlainVersion
	}
}

func isSpecifierSet(s string) bool {
	_, ok := TrySpecifierSet(s)
	return ok
}
