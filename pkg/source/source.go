// Package source translates Pipfile package indexes into pip command-line
// arguments and back.
//
// The first index becomes pip's primary index (-i), every further index an
// --extra-index-url. Indexes that disable SSL verification also get a
// --trusted-host argument for their host:
//
//	source.BuildArgs([]source.Index{
//	    {URL: "https://pypi.org/simple"},
//	    {URL: "http://mirror.local:8080/simple", VerifySSL: source.Bool(false)},
//	})
//	// [-i https://pypi.org/simple
//	//  --extra-index-url http://mirror.local:8080/simple --trusted-host mirror.local]
package source

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/reqconv/pkg/errors"
)

// Index is a package index declared in a Pipfile [[source]] table.
type Index struct {
	Name      string `toml:"name"`
	URL       string `toml:"url"`
	VerifySSL *bool  `toml:"verify_ssl"` // nil means verified
}

// Verify reports whether pip should verify the index's TLS certificate.
func (i Index) Verify() bool {
	return i.VerifySSL == nil || *i.VerifySSL
}

// Bool returns a pointer to b, for building Index literals.
func Bool(b bool) *bool {
	return &b
}

// BuildArgs returns the pip arguments selecting indexes, in order. An empty
// list yields no arguments. Unverified indexes without a host, such as
// file:// URLs, get no --trusted-host.
func BuildArgs(indexes []Index) []string {
	var args []string
	for i, idx := range indexes {
		flag := "--extra-index-url"
		if i == 0 {
			flag = "-i"
		}
		args = append(args, flag, idx.URL)
		if h := Host(idx.URL); h != "" && !idx.Verify() {
			args = append(args, "--trusted-host", h)
		}
	}
	return args
}

// Host returns the host of rawURL without port or credentials. URLs that do
// not parse fall back to the text between "://" and the next "/" or ":".
func Host(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	s := rawURL
	if _, rest, ok := strings.Cut(s, "://"); ok {
		s = rest
	}
	if i := strings.IndexAny(s, "/:"); i >= 0 {
		s = s[:i]
	}
	return s
}

// Validate checks that every index has a usable URL.
func Validate(indexes []Index) error {
	for i, idx := range indexes {
		if err := errors.ValidateIndexURL(idx.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSource, err, "source %d (%s)", i+1, idx.Name)
		}
	}
	return nil
}

// FromArgs collects indexes from pip index options, as found at the top of a
// requirements file: -i/--index-url, --extra-index-url and --trusted-host,
// written either as "--flag value" or "--flag=value". Other arguments are
// ignored. A trusted host turns off verification for every index on it.
func FromArgs(args []string) ([]Index, error) {
	var primary *Index
	var extra []Index
	trusted := make(map[string]bool)

	for i := 0; i < len(args); i++ {
		flag, value, hasValue := strings.Cut(args[i], "=")
		switch flag {
		case "-i", "--index-url", "--extra-index-url", "--trusted-host":
		default:
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, errors.New(errors.ErrCodeInvalidSource, "%s requires a value", flag)
			}
			i++
			value = args[i]
		}
		value = strings.TrimSpace(value)

		switch flag {
		case "-i", "--index-url":
			primary = &Index{URL: value}
		case "--extra-index-url":
			extra = append(extra, Index{URL: value})
		case "--trusted-host":
			trusted[Host("//"+value)] = true
		}
	}

	var indexes []Index
	if primary != nil {
		indexes = append(indexes, *primary)
	}
	indexes = append(indexes, extra...)

	seen := make(map[string]int)
	for i := range indexes {
		host := Host(indexes[i].URL)
		if trusted[host] {
			indexes[i].VerifySSL = Bool(false)
		} else {
			indexes[i].VerifySSL = Bool(true)
		}
		indexes[i].Name = sourceName(host, seen)
	}
	return indexes, Validate(indexes)
}

// sourceName derives a Pipfile source name from host, numbering repeats.
func sourceName(host string, seen map[string]int) string {
	name := host
	if host == "pypi.org" || host == "pypi.python.org" {
		name = "pypi"
	}
	seen[name]++
	if n := seen[name]; n > 1 {
		return fmt.Sprintf("%s-%d", name, n)
	}
	return name
}
