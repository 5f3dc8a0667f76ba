package requirement

import (
	"regexp"
	"strings"

	"github.com/matzehuels/reqconv/pkg/errors"
)

// vcsSchemes are the URL schemes pip accepts for version control requirements.
var vcsSchemes = []string{
	"git", "git+https", "git+ssh", "git+git", "git+http", "git+file",
	"hg+http", "hg+https", "hg+static-http", "hg+ssh", "hg+file",
	"svn", "svn+svn", "svn+http", "svn+https", "svn+ssh", "svn+file",
	"bzr+http", "bzr+https", "bzr+ssh", "bzr+sftp", "bzr+ftp", "bzr+lp", "bzr+file",
}

var vcsRE = regexp.MustCompile(`^(?P<scheme>` + quoteAll(vcsSchemes) + `)://` +
	`(?:(?P<login>[^/@]+)@)?` +
	`(?P<path>[^#@]+)` +
	`(?:@(?P<revision>[^#]+))?` +
	`(?:#(?P<fragment>\S+))?$`)

// launchpadRE matches Bazaar's Launchpad shorthand (bzr+lp:project), which
// pip accepts without a "://" separator.
var launchpadRE = regexp.MustCompile(`^bzr\+lp:[^\s/@#:][^\s@#]*(?:@[^\s#]+)?(?:#\S+)?$`)

func quoteAll(alts []string) string {
	quoted := make([]string, len(alts))
	for i, a := range alts {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return strings.Join(quoted, "|")
}

// ParsedVCS is a VCS requirement split into its parts.
type ParsedVCS struct {
	VCS
	Egg    string   // Package name from the #egg= fragment, if any
	Extras []string // Extras appended to the egg name (name[a,b])
}

// IsVCS reports whether s is a VCS requirement URL.
func IsVCS(s string) bool {
	s = CleanVCSURI(strings.TrimSpace(s))
	return vcsRE.MatchString(s) || launchpadRE.MatchString(s)
}

// CleanVCSURI rewrites scp-style git URLs (git+git@github.com:owner/repo.git)
// into the ssh form pip understands (git+ssh://git@github.com/owner/repo.git).
// Other strings are returned unchanged.
func CleanVCSURI(uri string) string {
	if !strings.HasPrefix(uri, "git+") || strings.Contains(uri, "://") {
		return uri
	}
	rest := strings.TrimPrefix(uri, "git+")
	if at := strings.Index(rest, "@"); at >= 0 {
		if c := strings.Index(rest[at:], ":"); c >= 0 {
			rest = rest[:at+c] + "/" + rest[at+c+1:]
		}
	}
	return "git+ssh://" + rest
}

// StripVCSPrefix removes a leading "git+", "svn+", "hg+" or "bzr+" from url.
func StripVCSPrefix(url string) string {
	for _, kind := range VCSKinds {
		if rest, ok := strings.CutPrefix(url, string(kind)+"+"); ok {
			return rest
		}
	}
	return url
}

// splitVCSPrefix finds the VCS kind of s and returns the URL without the
// "kind+" prefix. A URL whose own scheme is the VCS name (git://, svn://)
// is returned whole.
func splitVCSPrefix(s string) (VCSKind, string, bool) {
	for _, kind := range VCSKinds {
		if rest, ok := strings.CutPrefix(s, string(kind)+"+"); ok {
			return kind, rest, true
		}
		if strings.HasPrefix(s, string(kind)+"://") {
			return kind, s, true
		}
	}
	return "", "", false
}

// ToCanonicalURI renders v as a pip VCS URL:
//
//	kind+url[@ref]#egg=name[&subdirectory=dir]
//
// egg may carry extras ("name[a,b]"). An existing "kind+" prefix on v.URL
// is not repeated.
func ToCanonicalURI(v VCS, egg string) string {
	var b strings.Builder
	b.WriteString(string(v.Kind))
	b.WriteByte('+')
	b.WriteString(StripVCSPrefix(v.URL))
	if v.Ref != "" {
		b.WriteByte('@')
		b.WriteString(v.Ref)
	}

	var frag []string
	if egg != "" {
		frag = append(frag, "egg="+egg)
	}
	if v.Subdirectory != "" {
		frag = append(frag, "subdirectory="+v.Subdirectory)
	}
	if len(frag) > 0 {
		b.WriteByte('#')
		b.WriteString(strings.Join(frag, "&"))
	}
	return b.String()
}

// FromCanonicalURI splits a pip VCS URL into kind, repository URL, ref,
// subdirectory and egg name. The ref is whatever follows the last "@" after
// any user info and before the fragment.
func FromCanonicalURI(raw string) (ParsedVCS, error) {
	s := strings.TrimSpace(raw)
	if !IsVCS(s) {
		return ParsedVCS{}, errors.New(errors.ErrCodeMalformedVCS, "not a VCS URL: %q", raw)
	}
	kind, rest, ok := splitVCSPrefix(s)
	if !ok {
		return ParsedVCS{}, errors.New(errors.ErrCodeMalformedVCS, "unknown VCS scheme in %q", raw)
	}

	body, fragment, _ := strings.Cut(rest, "#")
	url, ref := splitRef(body)
	if url == "" {
		return ParsedVCS{}, errors.New(errors.ErrCodeMalformedVCS, "missing repository URL in %q", raw)
	}

	p := ParsedVCS{VCS: VCS{Kind: kind, URL: url, Ref: ref}}
	for _, part := range strings.Split(fragment, "&") {
		key, value, _ := strings.Cut(part, "=")
		switch key {
		case "egg":
			p.Egg, p.Extras = splitExtras(value)
		case "subdirectory":
			p.Subdirectory = value
		}
	}
	return p, nil
}

// splitRef separates a trailing @ref from a repository URL, skipping the
// user info of URLs such as ssh://git@host/repo or git@host:repo. An "@"
// followed by neither a path nor a port separator starts the ref, as in
// lp:project@42.
func splitRef(u string) (string, string) {
	offset := 0
	if i := strings.Index(u, "://"); i >= 0 {
		offset = i + len("://")
	}
	tail := u[offset:]
	if at := strings.Index(tail, "@"); at >= 0 {
		slash := strings.Index(tail, "/")
		if (slash < 0 || at < slash) && strings.ContainsAny(tail[at+1:], "/:") {
			offset += at + 1
		}
	}
	tail = u[offset:]
	if at := strings.LastIndex(tail, "@"); at >= 0 {
		return u[:offset+at], tail[at+1:]
	}
	return u, ""
}
