// Package requirement converts between Pipfile dependency entries and pip
// requirement strings.
//
// # Overview
//
// A Pipfile describes each dependency as either a bare version string or an
// inline table of attributes:
//
//	requests = "*"
//	django = ">1.10"
//	pinax = { git = "git://github.com/pinax/pinax.git", ref = "1.4", editable = true }
//
// pip consumes the same information as one line of text:
//
//	requests
//	django>1.10
//	-e git+git://github.com/pinax/pinax.git@1.4#egg=pinax
//
// [Encode] turns an [Entry] into that line and [Decode] reverses it. The two are
// exact inverses for every entry that carries its own package name.
//
// # Classification
//
// [ClassifyString] and [Classify] decide which [Kind] a raw manifest value is.
// Rules are evaluated top to bottom and the first match wins:
//
//  1. "*" is [Star]
//  2. a VCS URL (git+https://..., svn+ssh://..., git+git@host:repo) is [Vcs]
//  3. a string starting with one of "!=<>~" that parses as a specifier set is
//     [PlainVersion], even if a file with that name exists
//  4. an existing project directory or archive file is [LocalPath]
//  5. a URL with scheme and host is [URL]
//  6. anything else is [PlainVersion]
//
// # Name Normalization
//
// [NormalizeName] lower-cases package names and replaces underscores with
// hyphens. Names that contain a VCS token ("git", "svn", "hg", "bzr") or a URL
// scheme are left untouched so embedded URLs are never rewritten. This means a
// package literally named "hg_utils" keeps its underscore.
//
// # Filesystem Access
//
// Only [IsInstallable] (and therefore classification) touches the filesystem,
// with a single stat call. Any stat failure means "not installable"; nothing in
// this package returns filesystem errors. All functions are safe for
// concurrent use.
package requirement
