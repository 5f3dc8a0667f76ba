package requirement

import (
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Specifier is a single version clause such as ">=1.10".
type Specifier struct {
	Operator string
	Version  string
}

func (s Specifier) String() string {
	return s.Operator + s.Version
}

// SpecifierSet is a comma separated list of clauses that must all hold.
type SpecifierSet []Specifier

func (s SpecifierSet) String() string {
	parts := make([]string, len(s))
	for i, spec := range s {
		parts[i] = spec.String()
	}
	return strings.Join(parts, ",")
}

// operators is ordered so that longer operators are tried before their prefixes.
var operators = []string{"===", "~=", "==", "!=", "<=", ">=", "<", ">"}

// hasSpecifierOperator reports whether s starts with a character that can
// begin a specifier.
func hasSpecifierOperator(s string) bool {
	return s != "" && strings.ContainsRune("!=<>~", rune(s[0]))
}

// TrySpecifierSet parses s as a PEP 440 specifier set. Callers use it to test
// whether a string is a specifier at all, so failure is reported as false
// rather than an error. The empty string is a valid, empty set.
//
// Every clause must carry an explicit operator. pip reads a bare "1.0" as a
// package name, and "||" alternatives are not part of PEP 440.
func TrySpecifierSet(s string) (SpecifierSet, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SpecifierSet{}, true
	}
	if strings.Contains(s, "||") {
		return nil, false
	}
	if _, err := pep440.NewSpecifiers(s); err != nil {
		return nil, false
	}

	var set SpecifierSet
	for _, clause := range strings.Split(s, ",") {
		spec, ok := splitOperator(strings.TrimSpace(clause))
		if !ok {
			return nil, false
		}
		set = append(set, spec)
	}
	return set, true
}

// splitOperator cuts the operator off a clause the library already accepted.
func splitOperator(clause string) (Specifier, bool) {
	for _, op := range operators {
		rest, ok := strings.CutPrefix(clause, op)
		if !ok {
			continue
		}
		version := strings.TrimSpace(rest)
		if version == "" {
			return Specifier{}, false
		}
		return Specifier{Operator: op, Version: version}, true
	}
	return Specifier{}, false
}
