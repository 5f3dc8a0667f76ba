package requirement

import (
	"slices"
	"strings"

	"github.com/matzehuels/reqconv/pkg/errors"
)

// VCSKind identifies a version control system.
type VCSKind string

const (
	Git       VCSKind = "git"
	SVN       VCSKind = "svn"
	Mercurial VCSKind = "hg"
	Bazaar    VCSKind = "bzr"
)

// VCSKinds lists the supported version control systems in lookup order.
// When a manifest entry names more than one, the first in this list wins.
var VCSKinds = []VCSKind{Git, SVN, Mercurial, Bazaar}

// VCS describes a dependency checked out from version control.
type VCS struct {
	Kind         VCSKind // git, svn, hg or bzr
	URL          string  // Repository URL without the "kind+" prefix
	Ref          string  // Branch, tag or revision (empty for default branch)
	Subdirectory string  // Project root inside the repository (optional)
}

// Entry is the structured form of a dependency as written in a Pipfile.
//
// Exactly one of Version, VCS, Path and File is the primary source of the
// dependency. Extras, Editable and Markers modify it.
type Entry struct {
	Version  string   // Specifier set (">1.10") or "*"; empty means "*"
	Extras   []string // Optional features, in declaration order
	Editable bool     // Install in development mode (VCS and path sources only)
	VCS      *VCS     // Version control source
	Path     string   // Local directory or archive file
	File     string   // Remote archive URL
	Markers  string   // PEP 508 environment markers, carried verbatim
}

// Requirement pairs a package name with its entry.
type Requirement struct {
	Name  string
	Entry Entry
}

// String returns the pip requirement line for r.
func (r Requirement) String() string {
	return Encode(r.Name, r.Entry)
}

// Kind reports which source kind e describes.
func (e Entry) Kind() Kind {
	switch {
	case e.VCS != nil:
		return Vcs
	case e.Path != "":
		return LocalPath
	case e.File != "":
		return URL
	case e.IsStar():
		return Star
	default:
		return PlainVersion
	}
}

// IsStar reports whether e accepts any version of a registry package.
func (e Entry) IsStar() bool {
	return e.Version == "" || e.Version == "*"
}

// Equal reports whether e and o describe the same dependency. An empty
// version equals "*", extras are compared after deduplication and VCS URLs
// are compared without their "kind+" prefix.
func (e Entry) Equal(o Entry) bool {
	if e.Kind() != o.Kind() {
		return false
	}
	if e.Editable != o.Editable || e.Markers != o.Markers {
		return false
	}
	if !slices.Equal(dedupe(e.Extras), dedupe(o.Extras)) {
		return false
	}
	switch e.Kind() {
	case Vcs:
		a, b := *e.VCS, *o.VCS
		return a.Kind == b.Kind &&
			StripVCSPrefix(a.URL) == StripVCSPrefix(b.URL) &&
			a.Ref == b.Ref &&
			a.Subdirectory == b.Subdirectory
	case LocalPath:
		return e.Path == o.Path
	case URL:
		return e.File == o.File
	case PlainVersion:
		return strings.TrimSpace(e.Version) == strings.TrimSpace(o.Version)
	}
	return true
}

// FromValue builds an Entry from a decoded Pipfile value: either a string
// or a table with the keys version, extras, editable, git/svn/hg/bzr, ref,
// subdirectory, path, file and markers. Unknown keys are ignored.
func FromValue(v any) (Entry, error) {
	switch val := v.(type) {
	case string:
		return fromString(val)
	case map[string]any:
		return fromTable(val)
	case nil:
		return Entry{Version: "*"}, nil
	default:
		return Entry{}, errors.New(errors.ErrCodeInvalidEntry, "unsupported entry type %T", v)
	}
}

func fromString(s string) (Entry, error) {
	s = strings.TrimSpace(s)
	switch ClassifyString(s) {
	case Vcs:
		p, err := FromCanonicalURI(s)
		if err != nil {
			return Entry{}, err
		}
		v := p.VCS
		return Entry{VCS: &v, Extras: p.Extras}, nil
	case LocalPath:
		return Entry{Path: s}, nil
	case URL:
		return Entry{File: s}, nil
	default:
		return Entry{Version: s}, nil
	}
}

func fromTable(t map[string]any) (Entry, error) {
	var e Entry
	var err error

	if e.Version, err = stringKey(t, "version"); err != nil {
		return Entry{}, err
	}
	if e.Markers, err = stringKey(t, "markers"); err != nil {
		return Entry{}, err
	}
	if e.Extras, err = extrasKey(t); err != nil {
		return Entry{}, err
	}
	if raw, ok := t["editable"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return Entry{}, errors.New(errors.ErrCodeInvalidEntry, "editable must be a boolean, got %T", raw)
		}
		e.Editable = b
	}

	if kind, ok := vcsKey(t); ok {
		url, err := stringKey(t, string(kind))
		if err != nil {
			return Entry{}, err
		}
		ref, err := stringKey(t, "ref")
		if err != nil {
			return Entry{}, err
		}
		sub, err := stringKey(t, "subdirectory")
		if err != nil {
			return Entry{}, err
		}
		e.VCS = &VCS{Kind: kind, URL: StripVCSPrefix(url), Ref: ref, Subdirectory: sub}
		return e, nil
	}

	path, err := stringKey(t, "path")
	if err != nil {
		return Entry{}, err
	}
	file, err := stringKey(t, "file")
	if err != nil {
		return Entry{}, err
	}
	switch {
	case path != "":
		e.Path = path
	case file != "" && isRemote(file):
		e.File = file
	case file != "":
		e.Path = file
	}
	return e, nil
}

// Value returns e in the shape it takes inside a Pipfile: a bare string for
// plain version entries and a table for everything else.
func (e Entry) Value() any {
	kind := e.Kind()
	if (kind == Star || kind == PlainVersion) && len(e.Extras) == 0 && e.Markers == "" {
		if e.IsStar() {
			return "*"
		}
		return e.Version
	}

	t := make(map[string]any)
	switch kind {
	case Vcs:
		t[string(e.VCS.Kind)] = StripVCSPrefix(e.VCS.URL)
		if e.VCS.Ref != "" {
			t["ref"] = e.VCS.Ref
		}
		if e.VCS.Subdirectory != "" {
			t["subdirectory"] = e.VCS.Subdirectory
		}
	case LocalPath:
		t["path"] = e.Path
	case URL:
		t["file"] = e.File
	case PlainVersion:
		t["version"] = e.Version
	}
	if extras := dedupe(e.Extras); len(extras) > 0 {
		t["extras"] = extras
	}
	if e.Editable {
		t["editable"] = true
	}
	if e.Markers != "" {
		t["markers"] = e.Markers
	}
	return t
}

func vcsKey(t map[string]any) (VCSKind, bool) {
	for _, kind := range VCSKinds {
		if _, ok := t[string(kind)]; ok {
			return kind, true
		}
	}
	return "", false
}

func stringKey(t map[string]any, key string) (string, error) {
	raw, ok := t[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidEntry, "%s must be a string, got %T", key, raw)
	}
	return strings.TrimSpace(s), nil
}

func extrasKey(t map[string]any) ([]string, error) {
	raw, ok := t["extras"]
	if !ok {
		return nil, nil
	}
	switch list := raw.(type) {
	case []string:
		return dedupe(list), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidEntry, "extras must be strings, got %T", item)
			}
			out = append(out, s)
		}
		return dedupe(out), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidEntry, "extras must be a list, got %T", raw)
	}
}

// dedupe trims extras and drops empties and repeats, keeping first occurrence order.
func dedupe(extras []string) []string {
	if len(extras) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(extras))
	out := make([]string, 0, len(extras))
	for _, x := range extras {
		x = strings.TrimSpace(x)
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
