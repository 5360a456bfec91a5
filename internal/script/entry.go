// Package script defines the registered scripts scriptbin manages.
package script

import (
	"strings"

	"github.com/Norgate-AV/scriptbin/internal/errs"
)

// BuildKind names the external tool used to compile a script
type BuildKind string

const (
	Rustc BuildKind = "rustc"
	Cargo BuildKind = "cargo"
	Ghc   BuildKind = "ghc"
	Stack BuildKind = "stack"
	Go    BuildKind = "go"
)

// Kinds is the build-type vocabulary accepted in configuration
var Kinds = []BuildKind{Rustc, Cargo, Ghc, Stack, Go}

// ParseBuildKind matches s case-insensitively against the vocabulary.
func ParseBuildKind(s string) (BuildKind, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if string(k) == lower {
			return k, nil
		}
	}

	return "", errs.Errorf(errs.Config, "invalid build-type: %q", s)
}

// Entry is a registered script
type Entry struct {
	// Name is the registry key, also used for the artifact and hash record names
	Name string

	// Path to the script source
	Path string

	BuildKind BuildKind

	// BuildOptions are passed verbatim to the build tool
	BuildOptions []string

	// BuildDeps is parsed from configuration but no build strategy consumes it
	BuildDeps []string
}

// Lookup returns the first entry named name.
func Lookup(entries []Entry, name string) (*Entry, bool) {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i], true
		}
	}

	return nil, false
}
