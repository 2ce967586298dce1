package main

import (
	"path/filepath"
	"strings"
)

// SourceFile describes a discovered file that may be handed to the engine.
type SourceFile struct {
	File string `json:"file"`
}

// NewExtensionFilter returns a predicate that admits files whose extension is
// one of extensions or "js". Extensions are compared exactly, without the
// leading dot, so "README" (no extension) is never admitted.
//
// The returned function only reads its own copy of the set and is safe for
// concurrent use.
func NewExtensionFilter(extensions ...string) func(SourceFile) bool {
	accepted := make(map[string]struct{}, len(extensions)+1)
	for _, ext := range extensions {
		accepted[ext] = struct{}{}
	}
	accepted["js"] = struct{}{}
	return func(f SourceFile) bool {
		_, ok := accepted[fileExtension(f.File)]
		return ok
	}
}

// fileExtension returns the text after the last dot of the final path
// segment, or "" when there is none. Dotfiles count as having an extension:
// ".eslintrc" yields "eslintrc", where Node's path.extname would give "".
func fileExtension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
