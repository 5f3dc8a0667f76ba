package requirement

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/reqconv/pkg/errors"
)

func TestFromValue(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Entry
	}{
		{"star", "*", Entry{Version: "*"}},
		{"nil", nil, Entry{Version: "*"}},
		{"version", ">1.10", Entry{Version: ">1.10"}},
		{"padded version", "  ==2.0  ", Entry{Version: "==2.0"}},
		{
			"vcs string",
			"git+https://github.com/o/r.git@v1#egg=r",
			Entry{VCS: &VCS{Kind: Git, URL: "https://github.com/o/r.git", Ref: "v1"}},
		},
		{"url string", "https://example.com/pkg.zip", Entry{File: "https://example.com/pkg.zip"}},
		{"empty table", map[string]any{}, Entry{}},
		{
			"version with extras",
			map[string]any{"version": ">=2.0", "extras": []any{"socks", "socks", " security "}},
			Entry{Version: ">=2.0", Extras: []string{"socks", "security"}},
		},
		{
			"typed extras",
			map[string]any{"extras": []string{"a"}},
			Entry{Extras: []string{"a"}},
		},
		{
			"git table",
			map[string]any{
				"git":          "git+https://github.com/org/mono.git",
				"ref":          "main",
				"subdirectory": "pkgs/core",
				"editable":     true,
			},
			Entry{
				VCS:      &VCS{Kind: Git, URL: "https://github.com/org/mono.git", Ref: "main", Subdirectory: "pkgs/core"},
				Editable: true,
			},
		},
		{
			"git wins over hg",
			map[string]any{"hg": "https://hg.example.org/r", "git": "https://github.com/o/r.git"},
			Entry{VCS: &VCS{Kind: Git, URL: "https://github.com/o/r.git"}},
		},
		{
			"launchpad table",
			map[string]any{"bzr": "lp:tarmac"},
			Entry{VCS: &VCS{Kind: Bazaar, URL: "lp:tarmac"}},
		},
		{
			"launchpad string",
			"bzr+lp:tarmac@42",
			Entry{VCS: &VCS{Kind: Bazaar, URL: "lp:tarmac", Ref: "42"}},
		},
		{
			"path table",
			map[string]any{"path": "./libs/core", "editable": true},
			Entry{Path: "./libs/core", Editable: true},
		},
		{
			"path beats file",
			map[string]any{"path": "./libs/core", "file": "https://example.com/x.zip"},
			Entry{Path: "./libs/core"},
		},
		{
			"remote file",
			map[string]any{"file": "https://example.com/pkg.zip"},
			Entry{File: "https://example.com/pkg.zip"},
		},
		{
			"file url",
			map[string]any{"file": "file:///srv/pkg.whl"},
			Entry{File: "file:///srv/pkg.whl"},
		},
		{
			"local file",
			map[string]any{"file": "./dist/pkg.zip"},
			Entry{Path: "./dist/pkg.zip"},
		},
		{
			"markers",
			map[string]any{"version": "*", "markers": `os_name == "nt"`},
			Entry{Version: "*", Markers: `os_name == "nt"`},
		},
		{
			"unknown keys ignored",
			map[string]any{"version": "==1.0", "index": "private"},
			Entry{Version: "==1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromValue(tt.raw)
			if err != nil {
				t.Fatalf("FromValue(%v) error: %v", tt.raw, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromValue(%v) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestFromValueErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		code errors.Code
	}{
		{"integer", 42, errors.ErrCodeInvalidEntry},
		{"list", []any{"a"}, errors.ErrCodeInvalidEntry},
		{"editable string", map[string]any{"editable": "yes"}, errors.ErrCodeInvalidEntry},
		{"extras string", map[string]any{"extras": "socks"}, errors.ErrCodeInvalidEntry},
		{"extras number", map[string]any{"extras": []any{1}}, errors.ErrCodeInvalidEntry},
		{"version number", map[string]any{"version": 3}, errors.ErrCodeInvalidEntry},
		{"git number", map[string]any{"git": true}, errors.ErrCodeInvalidEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValue(tt.raw)
			if err == nil {
				t.Fatalf("FromValue(%v) expected error", tt.raw)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("FromValue(%v) code = %v, want %v", tt.raw, errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestEntryValue(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  any
	}{
		{"unset", Entry{}, "*"},
		{"star", Entry{Version: "*"}, "*"},
		{"version", Entry{Version: ">1.10"}, ">1.10"},
		{"extras", Entry{Extras: []string{"socks"}}, map[string]any{"extras": []string{"socks"}}},
		{
			"version and extras",
			Entry{Version: ">=2", Extras: []string{"a", "a"}},
			map[string]any{"version": ">=2", "extras": []string{"a"}},
		},
		{"star with markers", Entry{Version: "*", Markers: "m"}, map[string]any{"markers": "m"}},
		{
			"vcs",
			Entry{VCS: &VCS{Kind: Mercurial, URL: "hg+https://hg.example.org/r", Ref: "tip"}, Editable: true},
			map[string]any{"hg": "https://hg.example.org/r", "ref": "tip", "editable": true},
		},
		{"path", Entry{Path: "./core"}, map[string]any{"path": "./core"}},
		{"file", Entry{File: "https://example.com/a.zip"}, map[string]any{"file": "https://example.com/a.zip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.entry.Value()); diff != "" {
				t.Errorf("Value() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEntryValueRoundTrip(t *testing.T) {
	for _, e := range []Entry{
		{Version: ">1.10"},
		{Extras: []string{"socks"}},
		{Version: "~=2.0", Markers: `python_version >= "3.9"`},
		{VCS: &VCS{Kind: Git, URL: "https://github.com/o/r.git", Ref: "v1", Subdirectory: "py"}, Editable: true},
		{Path: "./libs/core", Editable: true},
		{File: "https://example.com/pkg.zip"},
	} {
		got, err := FromValue(e.Value())
		if err != nil {
			t.Errorf("FromValue(%v) error: %v", e.Value(), err)
			continue
		}
		if !got.Equal(e) {
			t.Errorf("FromValue(Value()) = %+v, want %+v", got, e)
		}
	}
}

func TestEntryKind(t *testing.T) {
	tests := []struct {
		entry Entry
		want  Kind
	}{
		{Entry{}, Star},
		{Entry{Version: "*", Extras: []string{"x"}}, Star},
		{Entry{Version: ">1"}, PlainVersion},
		{Entry{VCS: &VCS{Kind: Git}, Path: "./x"}, Vcs},
		{Entry{Path: "./x", File: "https://e.com/x.zip"}, LocalPath},
		{Entry{File: "https://e.com/x.zip", Version: ">1"}, URL},
	}

	for _, tt := range tests {
		if got := tt.entry.Kind(); got != tt.want {
			t.Errorf("%+v.Kind() = %v, want %v", tt.entry, got, tt.want)
		}
	}
}

func TestEntryEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Entry
		want bool
	}{
		{"empty and star", Entry{}, Entry{Version: "*"}, true},
		{"extras repeated", Entry{Extras: []string{"a", "a"}}, Entry{Extras: []string{"a"}}, true},
		{"extras order", Entry{Extras: []string{"a", "b"}}, Entry{Extras: []string{"b", "a"}}, false},
		{
			"vcs prefix",
			Entry{VCS: &VCS{Kind: Git, URL: "git+https://github.com/o/r.git"}},
			Entry{VCS: &VCS{Kind: Git, URL: "https://github.com/o/r.git"}},
			true,
		},
		{
			"vcs ref",
			Entry{VCS: &VCS{Kind: Git, URL: "https://github.com/o/r.git", Ref: "a"}},
			Entry{VCS: &VCS{Kind: Git, URL: "https://github.com/o/r.git", Ref: "b"}},
			false,
		},
		{"editable", Entry{Path: "./x", Editable: true}, Entry{Path: "./x"}, false},
		{"markers", Entry{Version: ">1", Markers: "m"}, Entry{Version: ">1"}, false},
		{"kind", Entry{Path: "./x"}, Entry{File: "./x"}, false},
		{"version", Entry{Version: ">1"}, Entry{Version: ">2"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
