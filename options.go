package main

import (
	"fmt"
	"strings"
)

// Access is a documentation visibility level attached to a comment.
type Access string

const (
	AccessPublic    Access = "public"
	AccessPrivate   Access = "private"
	AccessProtected Access = "protected"
	AccessUndefined Access = "undefined"
)

// defaultAccess is the base set widened by --private when no access levels
// were requested explicitly.
var defaultAccess = AccessSet{AccessPublic, AccessUndefined, AccessProtected}

func parseAccess(s string) (Access, error) {
	switch a := Access(strings.TrimSpace(s)); a {
	case AccessPublic, AccessPrivate, AccessProtected, AccessUndefined:
		return a, nil
	default:
		return "", fmt.Errorf("invalid access level %q (choose from public, private, protected, undefined)", s)
	}
}

// AccessSet is an ordered set of access levels without duplicates.
type AccessSet []Access

// Contains reports whether a is a member of the set.
func (s AccessSet) Contains(a Access) bool {
	for _, v := range s {
		if v == a {
			return true
		}
	}
	return false
}

func (s AccessSet) with(a Access) AccessSet {
	if s.Contains(a) {
		return s
	}
	out := make(AccessSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, a)
}

// normalizeAccess turns the merged access values into a set. A lone value is
// a one-element set; private widens whatever set is in effect, falling back to
// the default public/undefined/protected base when nothing was requested.
func normalizeAccess(values []string, private bool) (AccessSet, error) {
	var set AccessSet
	for _, v := range values {
		a, err := parseAccess(v)
		if err != nil {
			return nil, err
		}
		set = set.with(a)
	}
	if private {
		if len(set) == 0 {
			set = append(AccessSet(nil), defaultAccess...)
		}
		set = set.with(AccessPrivate)
	}
	return set, nil
}

// Options is the resolved configuration handed to a command and, through it,
// to the documentation engine.
type Options struct {
	Shallow   bool      `json:"shallow"`
	Config    string    `json:"config,omitempty"`
	External  string    `json:"external,omitempty"`
	Extension []string  `json:"extension,omitempty"`
	Polyglot  bool      `json:"polyglot"`
	Private   bool      `json:"private"`
	Access    AccessSet `json:"access,omitempty"`
	GitHub    bool      `json:"github"`
	URL       string    `json:"url,omitempty"`
	// TOC is the explicit sort order from a config file. Entries are either
	// names or objects understood by the engine.
	TOC     []any     `json:"toc,omitempty"`
	Package *Manifest `json:"package,omitempty"`
	// Extra holds config file keys this front end does not interpret.
	Extra map[string]any `json:"extra,omitempty"`
}

// cliFlags receives the persistent flag values parsed by Cobra.
type cliFlags struct {
	shallow   bool
	config    string
	external  string
	extension []string
	polyglot  bool
	private   bool
	access    []string
	github    bool
	url       string
	debug     bool
}

// mergeOptions layers CLI flags over config file values. A flag wins when it
// was given on the command line; otherwise a value from the file wins over
// the flag default.
func mergeOptions(file fileConfig, cli cliFlags, changed func(name string) bool) (Options, error) {
	url := file.URL
	if url == nil {
		url = file.U
	}
	opts := Options{
		Shallow:   pick(changed("shallow"), cli.shallow, file.Shallow),
		Config:    cli.config,
		External:  pick(changed("external"), cli.external, file.External),
		Extension: pickList(changed("extension"), cli.extension, file.Extension),
		Polyglot:  pick(changed("polyglot"), cli.polyglot, file.Polyglot),
		Private:   pick(changed("private"), cli.private, file.Private),
		GitHub:    pick(changed("github"), cli.github, file.GitHub),
		URL:       pick(changed("url"), cli.url, url),
		TOC:       file.TOC,
		Extra:     file.Extra,
	}
	access, err := normalizeAccess(pickList(changed("access"), cli.access, file.Access), opts.Private)
	if err != nil {
		return Options{}, err
	}
	opts.Access = access
	return opts, nil
}

func pick[T any](set bool, flag T, file *T) T {
	if set || file == nil {
		return flag
	}
	return *file
}

func pickList(set bool, flag []string, file stringList) []string {
	if set || file == nil {
		return flag
	}
	return []string(file)
}
