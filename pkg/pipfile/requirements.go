package pipfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/reqconv/pkg/errors"
	"github.com/matzehuels/reqconv/pkg/requirement"
	"github.com/matzehuels/reqconv/pkg/source"
)

// SupportsRequirements reports whether name looks like a pip requirements
// file (requirements.txt, requirements-dev.txt, ...).
func SupportsRequirements(name string) bool {
	return name == "requirements.txt" ||
		(strings.HasPrefix(name, "requirements") && strings.HasSuffix(name, ".txt"))
}

// LoadRequirements reads a pip requirements file into a Pipfile. Its
// requirements become Packages and its index options become Sources.
func LoadRequirements(path string) (*Pipfile, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "requirements file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "open %s", path)
	}
	defer f.Close()

	p, err := ReadRequirements(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return p, nil
}

// ReadRequirements parses requirements file content. Comments, blank lines
// and backslash continuations follow pip's rules. Option lines other than
// index options and -e are skipped. Requirements that do not carry a name get
// one guessed from their path or repository URL.
func ReadRequirements(r io.Reader) (*Pipfile, error) {
	var (
		p       Pipfile
		options []string
		pending string
		lineNo  int
	)

	add := func(line string) error {
		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			return nil
		}
		if line[0] == '-' && !isEditable(line) {
			options = append(options, strings.Fields(line)...)
			return nil
		}

		// Per-requirement options such as --hash are not part of the entry.
		if i := strings.Index(line, " --"); i > 0 {
			line = strings.TrimSpace(line[:i])
		}

		req, err := requirement.Decode(line)
		if errors.Is(err, errors.ErrCodeUnknownName) {
			req, err = requirement.DecodeAs(line, GuessName(line))
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequirement, err, "line %d", lineNo)
		}
		p.Packages = append(p.Packages, req)
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if cont, ok := strings.CutSuffix(line, `\`); ok {
			pending += cont
			continue
		}
		line, pending = pending+line, ""
		if err := add(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// A continuation on the last line has nothing to join.
	if err := add(pending); err != nil {
		return nil, err
	}

	sources, err := source.FromArgs(options)
	if err != nil {
		return nil, err
	}
	p.Sources = sources
	return &p, nil
}

// stripComment drops a "#" comment that starts the line or follows
// whitespace. A "#" inside a URL fragment (#egg=) is kept.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

func isEditable(line string) bool {
	for _, flag := range []string{"-e", "--editable"} {
		rest, ok := strings.CutPrefix(line, flag)
		if ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '=') {
			return true
		}
	}
	return false
}

// GuessName derives a package name from a requirement line that lacks one:
// the last path element of a directory or repository, or the distribution
// name at the front of an archive filename.
func GuessName(line string) string {
	s := strings.TrimSpace(line)
	for _, flag := range []string{"--editable", "-e"} {
		if rest, ok := strings.CutPrefix(s, flag); ok {
			s = strings.TrimLeft(rest, " \t=")
			break
		}
	}
	s, _, _ = strings.Cut(s, ";")
	s, _, _ = strings.Cut(s, "#")
	s = strings.TrimSpace(s)
	if requirement.IsVCS(s) {
		if p, err := requirement.FromCanonicalURI(s); err == nil {
			s = p.URL
		}
	}
	s = strings.TrimRight(s, `/\`)
	if i := strings.IndexAny(s, "["); i >= 0 {
		s = s[:i]
	}

	base := filepath.Base(filepath.FromSlash(s))
	if i := strings.LastIndexAny(base, `/\:`); i >= 0 {
		base = base[i+1:]
	}
	if requirement.IsArchiveFile(base) {
		if name, _, ok := strings.Cut(base, "-"); ok {
			return name
		}
		for _, ext := range []string{".tar.gz", ".tar.bz2", ".tar.xz", ".tgz", ".zip", ".whl", ".tar"} {
			if trimmed, ok := strings.CutSuffix(strings.ToLower(base), ext); ok {
				return base[:len(trimmed)]
			}
		}
	}
	return strings.TrimSuffix(base, ".git")
}
