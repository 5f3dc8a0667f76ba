// Package pkg provides the libraries behind reqconv, a converter between
// Pipfile dependency entries and pip requirement strings.
//
// # Overview
//
// The pkg directory is organized by the shape of the data being handled:
//
//  1. [requirement] - A single dependency: classifying Pipfile values and
//     encoding or decoding pip requirement lines
//  2. [pipfile] - Whole manifests: reading and writing Pipfiles and reading
//     requirements files
//  3. [source] - Package indexes and the pip options that select them
//  4. [errors] - Coded errors shared by every package
//
// # Data Flow
//
//	Pipfile (TOML)                       requirements.txt
//	      ↓                                      ↓
//	[pipfile.Load]                    [pipfile.LoadRequirements]
//	      ↓                                      ↓
//	      └──────→ []requirement.Requirement ←───┘
//	                         ↓
//	       [requirement.Encode] / [pipfile.Write]
//	                         ↓
//	         pip requirement lines / Pipfile TOML
//
// # Quick Start
//
//	p, err := pipfile.Load("Pipfile")
//	if err != nil {
//	    return err
//	}
//	for _, line := range p.Requirements(true) {
//	    fmt.Println(line)
//	}
//
// The reqconv command in cmd/reqconv wraps these packages.
//
// [requirement]: https://pkg.go.dev/github.com/matzehuels/reqconv/pkg/requirement
// [pipfile]: https://pkg.go.dev/github.com/matzehuels/reqconv/pkg/pipfile
// [source]: https://pkg.go.dev/github.com/matzehuels/reqconv/pkg/source
// [errors]: https://pkg.go.dev/github.com/matzehuels/reqconv/pkg/errors
package pkg
