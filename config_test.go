package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigFormatsAgree(t *testing.T) {
	yes := true
	url := "https://github.example.com"
	want := fileConfig{
		Shallow:   &yes,
		Access:    stringList{"protected"},
		Extension: stringList{"ts", "jsx"},
		GitHub:    &yes,
		U:         &url,
		TOC:       []any{"Greeter", "greet"},
		Extra:     map[string]any{"theme": "./theme"},
	}
	for _, name := range []string{"docs.yml", "docs.json", "docs.hcl"} {
		t.Run(name, func(t *testing.T) {
			got, err := loadConfigFile(filepath.Join("testdata", "config", name))
			if err != nil {
				t.Fatalf("loadConfigFile: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigSingleAccessBecomesSet(t *testing.T) {
	file, err := loadConfigFile(filepath.Join("testdata", "config", "docs.yml"))
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	opts, err := mergeOptions(file, cliFlags{}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("mergeOptions: %v", err)
	}
	if diff := cmp.Diff(AccessSet{AccessProtected}, opts.Access); diff != "" {
		t.Fatalf("access mismatch (-want +got):\n%s", diff)
	}
	if opts.URL != "https://github.example.com" {
		t.Fatalf("expected url from config, got %q", opts.URL)
	}
}

func TestConfigMissingFile(t *testing.T) {
	_, err := loadConfigFile(filepath.Join(t.TempDir(), "absent.yml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestConfigMalformed(t *testing.T) {
	if _, err := loadConfigFile(filepath.Join("testdata", "config", "broken.yml")); err == nil {
		t.Fatalf("expected YAML error")
	}
	path := filepath.Join(t.TempDir(), "bad.hcl")
	writeFile(t, path, "access = \n")
	if _, err := loadConfigFile(path); err == nil {
		t.Fatalf("expected HCL error")
	}
	path = filepath.Join(t.TempDir(), "ref.hcl")
	writeFile(t, path, "access = var.level\n")
	if _, err := loadConfigFile(path); err == nil {
		t.Fatalf("expected HCL evaluation error")
	}
}

func TestConfigRejectsNestedAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.yml")
	writeFile(t, path, "access:\n  level: public\n")
	if _, err := loadConfigFile(path); err == nil {
		t.Fatalf("expected error for mapping access value")
	}
}
