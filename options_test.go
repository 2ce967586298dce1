package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeAccess(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		private bool
		want    AccessSet
	}{
		{name: "unset", want: nil},
		{name: "private with nothing requested", private: true, want: AccessSet{AccessPublic, AccessUndefined, AccessProtected, AccessPrivate}},
		{name: "private unions explicit set", values: []string{"public"}, private: true, want: AccessSet{AccessPublic, AccessPrivate}},
		{name: "single value", values: []string{"protected"}, want: AccessSet{AccessProtected}},
		{name: "single value then private", values: []string{"protected"}, private: true, want: AccessSet{AccessProtected, AccessPrivate}},
		{name: "private already present", values: []string{"private", "public"}, private: true, want: AccessSet{AccessPrivate, AccessPublic}},
		{name: "duplicates collapse", values: []string{"public", "public"}, want: AccessSet{AccessPublic}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeAccess(tc.values, tc.private)
			if err != nil {
				t.Fatalf("normalizeAccess: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("access mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeAccessRejectsUnknownLevel(t *testing.T) {
	_, err := normalizeAccess([]string{"public", "internal"}, false)
	if err == nil || !strings.Contains(err.Error(), `"internal"`) {
		t.Fatalf("expected invalid access error, got %v", err)
	}
}

func TestNormalizeAccessDoesNotAliasDefault(t *testing.T) {
	if _, err := normalizeAccess(nil, true); err != nil {
		t.Fatalf("normalizeAccess: %v", err)
	}
	if diff := cmp.Diff(AccessSet{AccessPublic, AccessUndefined, AccessProtected}, defaultAccess); diff != "" {
		t.Fatalf("default access set was modified (-want +got):\n%s", diff)
	}
}

func TestMergeOptionsPrecedence(t *testing.T) {
	yes, no := true, false
	fileExternal, fileURL := "lodash/**", "https://file.example.com"
	file := fileConfig{
		Shallow:   &yes,
		External:  &fileExternal,
		Extension: stringList{"ts"},
		Polyglot:  &yes,
		Private:   &no,
		Access:    stringList{"public"},
		GitHub:    &no,
		URL:       &fileURL,
		TOC:       []any{"first"},
		Extra:     map[string]any{"theme": "dark"},
	}
	cli := cliFlags{
		shallow:   false,
		config:    "docs.yml",
		external:  "react/**",
		extension: []string{"jsx"},
		polyglot:  false,
		private:   true,
		access:    []string{"protected"},
		github:    true,
		url:       "https://cli.example.com",
	}
	all := func(string) bool { return true }
	none := func(string) bool { return false }

	got, err := mergeOptions(file, cli, all)
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	want := Options{
		Config:    "docs.yml",
		External:  "react/**",
		Extension: []string{"jsx"},
		Private:   true,
		Access:    AccessSet{AccessProtected, AccessPrivate},
		GitHub:    true,
		URL:       "https://cli.example.com",
		TOC:       []any{"first"},
		Extra:     map[string]any{"theme": "dark"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CLI should win (-want +got):\n%s", diff)
	}

	got, err = mergeOptions(file, cli, none)
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	want = Options{
		Shallow:   true,
		Config:    "docs.yml",
		External:  "lodash/**",
		Extension: []string{"ts"},
		Polyglot:  true,
		Access:    AccessSet{AccessPublic},
		URL:       "https://file.example.com",
		TOC:       []any{"first"},
		Extra:     map[string]any{"theme": "dark"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("file should win over defaults (-want +got):\n%s", diff)
	}
}

func TestMergeOptionsFallsBackToFlagDefaults(t *testing.T) {
	cli := cliFlags{url: "", extension: nil}
	got, err := mergeOptions(fileConfig{}, cli, func(string) bool { return false })
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	if diff := cmp.Diff(Options{}, got); diff != "" {
		t.Fatalf("expected zero options (-want +got):\n%s", diff)
	}
}

func TestMergeOptionsURLAlias(t *testing.T) {
	short, long := "https://u.example.com", "https://url.example.com"
	got, err := mergeOptions(fileConfig{U: &short}, cliFlags{}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	if got.URL != short {
		t.Fatalf("expected u alias to set url, got %q", got.URL)
	}
	got, err = mergeOptions(fileConfig{U: &short, URL: &long}, cliFlags{}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	if got.URL != long {
		t.Fatalf("expected url to take precedence over u, got %q", got.URL)
	}
}
