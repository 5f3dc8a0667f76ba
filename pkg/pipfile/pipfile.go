// Package pipfile reads and writes Pipfile manifests.
//
// A Pipfile is TOML with four sections of interest:
//
//	[[source]]
//	name = "pypi"
//	url = "https://pypi.org/simple"
//	verify_ssl = true
//
//	[packages]
//	requests = "*"
//	pinax = { git = "git://github.com/pinax/pinax.git", ref = "1.4", editable = true }
//
//	[dev-packages]
//	pytest = ">=7"
//
//	[requires]
//	python_version = "3.11"
//
// Packages keep the order in which they are declared, so converting a
// Pipfile to requirement lines is deterministic.
package pipfile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/reqconv/pkg/errors"
	"github.com/matzehuels/reqconv/pkg/requirement"
	"github.com/matzehuels/reqconv/pkg/source"
)

// Section names as they appear in a Pipfile.
const (
	SectionPackages    = "packages"
	SectionDevPackages = "dev-packages"
)

// Filename is the conventional name of the manifest.
const Filename = "Pipfile"

// Pipfile is a decoded manifest.
type Pipfile struct {
	Sources     []source.Index
	Packages    []requirement.Requirement
	DevPackages []requirement.Requirement
	Requires    map[string]string
}

type rawPipfile struct {
	Source      []source.Index    `toml:"source"`
	Packages    map[string]any    `toml:"packages"`
	DevPackages map[string]any    `toml:"dev-packages"`
	Requires    map[string]string `toml:"requires"`
}

// Load reads and parses the Pipfile at path.
func Load(path string) (*Pipfile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return p, nil
}

// Parse decodes Pipfile content.
func Parse(data []byte) (*Pipfile, error) {
	var raw rawPipfile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid TOML")
	}

	p := &Pipfile{Sources: raw.Source, Requires: raw.Requires}
	if err := source.Validate(p.Sources); err != nil {
		return nil, err
	}
	if p.Packages, err = collect(md, SectionPackages, raw.Packages); err != nil {
		return nil, err
	}
	if p.DevPackages, err = collect(md, SectionDevPackages, raw.DevPackages); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseEntries decodes a TOML fragment of "name = value" lines, as found
// inside a packages section, into requirements in declaration order.
func ParseEntries(fragment string) ([]requirement.Requirement, error) {
	var raw map[string]any
	md, err := toml.Decode(fragment, &raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEntry, err, "invalid TOML")
	}
	var reqs []requirement.Requirement
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		r, err := newRequirement(key[0], raw[key[0]])
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

// collect returns the entries of section in the order md saw their keys.
func collect(md toml.MetaData, section string, values map[string]any) ([]requirement.Requirement, error) {
	var reqs []requirement.Requirement
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != section {
			continue
		}
		r, err := newRequirement(key[1], values[key[1]])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "[%s] %s", section, key[1])
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

func newRequirement(name string, value any) (requirement.Requirement, error) {
	if err := errors.ValidatePackageName(name); err != nil {
		return requirement.Requirement{}, err
	}
	e, err := requirement.FromValue(value)
	if err != nil {
		return requirement.Requirement{}, err
	}
	return requirement.Requirement{Name: name, Entry: e}, nil
}

// Section returns the requirements of the named section.
func (p *Pipfile) Section(name string) ([]requirement.Requirement, error) {
	switch name {
	case SectionPackages:
		return p.Packages, nil
	case SectionDevPackages:
		return p.DevPackages, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown section %q (want %s or %s)",
			name, SectionPackages, SectionDevPackages)
	}
}

// Selected returns the default packages, followed by the development
// packages when dev is set.
func (p *Pipfile) Selected(dev bool) []requirement.Requirement {
	reqs := append([]requirement.Requirement(nil), p.Packages...)
	if dev {
		reqs = append(reqs, p.DevPackages...)
	}
	return reqs
}

// Requirements returns the pip requirement lines for the selected packages.
func (p *Pipfile) Requirements(dev bool) []string {
	return requirement.EncodeAll(p.Selected(dev))
}

// InstallArgs returns the arguments for "pip install": the index options
// followed by one argument per requirement. Editable requirements expand to
// "-e" and the target so each argument can be passed to exec as is.
func (p *Pipfile) InstallArgs(dev bool) []string {
	args := source.BuildArgs(p.Sources)
	for _, r := range p.Selected(dev) {
		if r.Entry.Editable {
			e := r.Entry
			e.Editable = false
			args = append(args, "-e", requirement.Encode(r.Name, e))
			continue
		}
		args = append(args, r.String())
	}
	return args
}
