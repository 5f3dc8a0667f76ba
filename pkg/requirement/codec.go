package requirement

import (
	"regexp"
	"strings"

	"github.com/matzehuels/reqconv/pkg/errors"
)

var (
	namedRE     = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(.*)$`)
	directRefRE = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*@\s*(\S+://\S*|file:\S+)$`)
)

// Encode renders e as a pip requirement line for the package name:
//
//	requests                      Star
//	requests[socks]>=2.0          PlainVersion
//	-e git+https://host/repo.git@v1#egg=name&subdirectory=dir
//	-e ./path/to/project          LocalPath
//	name @ https://host/name.zip  URL
//
// Markers follow a semicolon. The name passes through NormalizeName.
func Encode(name string, e Entry) string {
	name = NormalizeName(name)
	extras := formatExtras(e.Extras)

	var b strings.Builder
	sep := "; "
	switch e.Kind() {
	case Vcs:
		writeEditable(&b, e.Editable)
		b.WriteString(ToCanonicalURI(*e.VCS, name+extras))
		sep = " ; "
	case LocalPath:
		writeEditable(&b, e.Editable)
		b.WriteString(e.Path)
		b.WriteString(extras)
		sep = " ; "
	case URL:
		b.WriteString(name)
		b.WriteString(extras)
		b.WriteString(" @ ")
		b.WriteString(e.File)
		sep = " ; "
	case PlainVersion:
		b.WriteString(name)
		b.WriteString(extras)
		b.WriteString(strings.TrimSpace(e.Version))
	default:
		b.WriteString(name)
		b.WriteString(extras)
	}
	if e.Markers != "" {
		b.WriteString(sep)
		b.WriteString(e.Markers)
	}
	return b.String()
}

// EncodeAll renders reqs in order.
func EncodeAll(reqs []Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = Encode(r.Name, r.Entry)
	}
	return out
}

func writeEditable(b *strings.Builder, editable bool) {
	if editable {
		b.WriteString("-e ")
	}
}

func formatExtras(extras []string) string {
	d := dedupe(extras)
	if len(d) == 0 {
		return ""
	}
	return "[" + strings.Join(d, ",") + "]"
}

// Decode parses a pip requirement line. The package name comes from the line
// itself: the leading name, a PEP 508 "name @ url" reference or an #egg=
// fragment. A VCS URL, path or URL without any of these fails with
// ErrCodeUnknownName; use DecodeAs to supply the name.
func Decode(line string) (Requirement, error) {
	return decode(line, "")
}

// DecodeAs is like Decode but uses name when the line does not carry one.
func DecodeAs(line, name string) (Requirement, error) {
	return decode(line, strings.TrimSpace(name))
}

func decode(line, fallback string) (Requirement, error) {
	s := strings.TrimSpace(line)
	s, editable := cutEditable(s)
	if s == "" {
		return Requirement{}, errors.New(errors.ErrCodeInvalidRequirement, "empty requirement: %q", line)
	}
	body, markers := splitMarkers(s)

	var r Requirement
	var err error
	switch {
	case IsVCS(body):
		r, err = decodeVCS(body)
	case directRefRE.MatchString(body):
		r, err = decodeDirectReference(body)
	case isRemote(body):
		r = decodeURL(body)
	case hasPathSyntax(body) || IsArchiveFile(trimFragment(body)) || IsInstallable(trimFragment(body)):
		r = decodePath(body)
	default:
		r, err = decodeNamed(body)
	}
	if err != nil {
		return Requirement{}, err
	}

	if editable {
		if k := r.Entry.Kind(); k != Vcs && k != LocalPath {
			return Requirement{}, errors.New(errors.ErrCodeInvalidRequirement,
				"editable requirement must be a VCS URL or local path: %q", line)
		}
		r.Entry.Editable = true
	}
	r.Entry.Markers = markers

	if r.Name == "" {
		if fallback == "" {
			return Requirement{}, errors.New(errors.ErrCodeUnknownName,
				"cannot determine package name from %q (add #egg=<name>)", line)
		}
		r.Name = fallback
	}
	return r, nil
}

func decodeVCS(body string) (Requirement, error) {
	p, err := FromCanonicalURI(body)
	if err != nil {
		return Requirement{}, err
	}
	v := p.VCS
	return Requirement{Name: p.Egg, Entry: Entry{VCS: &v, Extras: p.Extras}}, nil
}

func decodeDirectReference(body string) (Requirement, error) {
	m := directRefRE.FindStringSubmatch(body)
	name, extras, target := m[1], parseExtras(m[2]), m[3]
	if IsVCS(target) {
		p, err := FromCanonicalURI(target)
		if err != nil {
			return Requirement{}, err
		}
		v := p.VCS
		return Requirement{Name: name, Entry: Entry{VCS: &v, Extras: extras}}, nil
	}
	return Requirement{Name: name, Entry: Entry{File: target, Extras: extras}}, nil
}

func decodeURL(body string) Requirement {
	url, egg := cutEgg(body)
	name, extras := splitExtras(egg)
	return Requirement{Name: name, Entry: Entry{File: url, Extras: extras}}
}

func decodePath(body string) Requirement {
	path, egg := cutEgg(body)
	path, extras := splitExtras(path)
	name, eggExtras := splitExtras(egg)
	if len(extras) == 0 {
		extras = eggExtras
	}
	return Requirement{Name: name, Entry: Entry{Path: path, Extras: extras}}
}

func decodeNamed(body string) (Requirement, error) {
	m := namedRE.FindStringSubmatch(body)
	if m == nil {
		return Requirement{}, errors.New(errors.ErrCodeInvalidRequirement, "invalid requirement: %q", body)
	}
	version := strings.TrimSpace(m[3])
	if strings.HasPrefix(version, "(") && strings.HasSuffix(version, ")") {
		version = strings.TrimSpace(version[1 : len(version)-1])
	}
	if version == "" {
		version = "*"
	}
	return Requirement{Name: m[1], Entry: Entry{Version: version, Extras: parseExtras(m[2])}}, nil
}

// cutEditable strips a leading -e / --editable flag.
func cutEditable(s string) (string, bool) {
	for _, flag := range []string{"--editable", "-e"} {
		rest, ok := strings.CutPrefix(s, flag)
		if !ok || rest == "" {
			continue
		}
		switch rest[0] {
		case '=', ' ', '\t':
			return strings.TrimSpace(rest[1:]), true
		}
	}
	return s, false
}

func splitMarkers(s string) (string, string) {
	body, markers, _ := strings.Cut(s, ";")
	return strings.TrimSpace(body), strings.TrimSpace(markers)
}

// cutEgg removes the egg= parameter from a URL fragment and returns it.
// Other fragment parameters stay on the URL.
func cutEgg(s string) (string, string) {
	base, frag, ok := strings.Cut(s, "#")
	if !ok {
		return s, ""
	}
	var egg string
	var keep []string
	for _, part := range strings.Split(frag, "&") {
		if v, ok := strings.CutPrefix(part, "egg="); ok {
			egg = v
		} else if part != "" {
			keep = append(keep, part)
		}
	}
	if len(keep) > 0 {
		base += "#" + strings.Join(keep, "&")
	}
	return base, egg
}

func trimFragment(s string) string {
	s, _, _ = strings.Cut(s, "#")
	s, _ = splitExtras(s)
	return s
}

// splitExtras splits "name[a,b]" into "name" and its extras.
func splitExtras(s string) (string, []string) {
	if !strings.HasSuffix(s, "]") {
		return s, nil
	}
	i := strings.LastIndex(s, "[")
	if i < 0 {
		return s, nil
	}
	return s[:i], parseExtras(s[i+1 : len(s)-1])
}

func parseExtras(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	return dedupe(strings.Split(list, ","))
}
