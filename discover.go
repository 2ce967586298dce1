package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const externalDir = "node_modules"

// discoverFiles expands inputs into the list of source files to document.
// An input may be a file, a directory (walked recursively) or a glob pattern.
// Relative inputs are resolved against dir. Files under node_modules are only
// kept when they match opts.External, and every candidate must pass the
// extension filter.
func discoverFiles(ctx context.Context, dir string, inputs []string, opts Options) ([]SourceFile, error) {
	logger := loggerFrom(ctx)
	if opts.External != "" && !doublestar.ValidatePattern(opts.External) {
		return nil, fmt.Errorf("invalid external pattern %q", opts.External)
	}
	accept := NewExtensionFilter(opts.Extension...)

	seen := make(map[string]struct{})
	var files []SourceFile
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		if isExternal(path) && !externalAllowed(opts.External, path) {
			logger.Debug("skipping external module file", "file", path)
			return
		}
		file := SourceFile{File: path}
		if !accept(file) {
			logger.Debug("skipping file with unaccepted extension", "file", path)
			return
		}
		files = append(files, file)
	}

	for _, input := range inputs {
		target := input
		if dir != "" && !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		if isGlob(input) {
			matches, err := doublestar.FilepathGlob(target, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", input, err)
			}
			for _, match := range matches {
				add(match)
			}
			continue
		}
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input, err)
		}
		if !info.IsDir() {
			add(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != target && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files matched %s", strings.Join(inputs, ", "))
	}
	logger.Debug("discovered source files", "count", len(files))
	return files, nil
}

func isGlob(input string) bool {
	return strings.ContainsAny(input, "*?[{")
}

func isExternal(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == externalDir {
			return true
		}
	}
	return false
}

func externalAllowed(pattern, path string) bool {
	if pattern == "" {
		return false
	}
	slashed := filepath.ToSlash(path)
	if ok, _ := doublestar.Match(pattern, slashed); ok {
		return true
	}
	// Patterns are usually written relative to node_modules, e.g. "lodash/**".
	idx := strings.LastIndex(slashed, externalDir+"/")
	if idx < 0 {
		return false
	}
	ok, _ := doublestar.Match(pattern, slashed[idx+len(externalDir)+1:])
	return ok
}
