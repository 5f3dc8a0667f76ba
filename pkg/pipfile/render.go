package pipfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/reqconv/pkg/errors"
	"github.com/matzehuels/reqconv/pkg/requirement"
	"github.com/matzehuels/reqconv/pkg/source"
)

// tableKeys fixes the order of keys inside a rendered inline table.
var tableKeys = []string{
	"git", "svn", "hg", "bzr", "ref", "subdirectory",
	"path", "file", "version", "extras", "editable", "markers",
}

// Render writes reqs as a TOML section named section, one line per
// requirement in the given order. Plain version entries are written as
// strings, everything else as an inline table.
func Render(w io.Writer, section string, reqs []requirement.Requirement) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", section)
	for _, r := range reqs {
		line, err := renderEntry(r.Name, r.Entry.Value())
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render %s", r.Name)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Write renders the whole manifest: sources first, then packages,
// dev-packages and requires. Empty sections are left out.
func Write(w io.Writer, p *Pipfile) error {
	var parts []string

	if len(p.Sources) > 0 {
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.Indent = ""
		if err := enc.Encode(struct {
			Source []source.Index `toml:"source"`
		}{p.Sources}); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render sources")
		}
		parts = append(parts, strings.TrimSpace(buf.String()))
	}

	for _, s := range []struct {
		name string
		reqs []requirement.Requirement
	}{
		{SectionPackages, p.Packages},
		{SectionDevPackages, p.DevPackages},
	} {
		if len(s.reqs) == 0 {
			continue
		}
		var sb strings.Builder
		if err := Render(&sb, s.name, s.reqs); err != nil {
			return err
		}
		parts = append(parts, strings.TrimSpace(sb.String()))
	}

	if len(p.Requires) > 0 {
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.Indent = ""
		if err := enc.Encode(map[string]any{"requires": p.Requires}); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render requires")
		}
		parts = append(parts, strings.TrimSpace(buf.String()))
	}

	_, err := io.WriteString(w, strings.Join(parts, "\n\n")+"\n")
	return err
}

// renderEntry formats one "name = value" line. Strings and scalars are
// quoted by the TOML encoder; tables are assembled inline in tableKeys order.
func renderEntry(name string, value any) (string, error) {
	key, err := renderKey(name)
	if err != nil {
		return "", err
	}
	t, ok := value.(map[string]any)
	if !ok {
		v, err := renderValue(value)
		if err != nil {
			return "", err
		}
		return key + " = " + v, nil
	}

	var fields []string
	for _, k := range tableKeys {
		v, ok := t[k]
		if !ok {
			continue
		}
		s, err := renderValue(v)
		if err != nil {
			return "", err
		}
		fields = append(fields, k+" = "+s)
	}
	if len(fields) == 0 {
		return key + " = {}", nil
	}
	return key + " = { " + strings.Join(fields, ", ") + " }", nil
}

// renderValue encodes v as a TOML value by marshaling a one-key document and
// keeping the right-hand side.
func renderValue(v any) (string, error) {
	out, err := toml.Marshal(map[string]any{"v": v})
	if err != nil {
		return "", err
	}
	_, rhs, ok := strings.Cut(strings.TrimSpace(string(out)), " = ")
	if !ok {
		return "", fmt.Errorf("unexpected encoding %q", out)
	}
	return rhs, nil
}

// renderKey quotes name when it is not a bare TOML key.
func renderKey(name string) (string, error) {
	out, err := toml.Marshal(map[string]string{name: ""})
	if err != nil {
		return "", err
	}
	key, _, ok := strings.Cut(strings.TrimSpace(string(out)), " = ")
	if !ok {
		return "", fmt.Errorf("unexpected encoding %q", out)
	}
	return key, nil
}
