// Package entities defines core domain models and data structures.
package entities

import (
	"fmt"
	"os"
	"sort"
)

// RequiresGNUHash is the capability token expressing that a package needs a
// dynamic linker with GNU-style hash support.
const RequiresGNUHash = "rtld(GNU_HASH)"

// RequirementSet is a deduplicating collection of RPM requirement tokens.
// Iteration order is normalized to lexicographic by List.
type RequirementSet map[string]struct{}

// NewRequirementSet creates a set from the given tokens.
func NewRequirementSet(tokens ...string) RequirementSet {
	s := make(RequirementSet, len(tokens))
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts a token into the set.
func (s RequirementSet) Add(token string) {
	s[token] = struct{}{}
}

// Merge inserts every token of other into the set.
func (s RequirementSet) Merge(other RequirementSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// List returns the tokens in lexicographic order.
func (s RequirementSet) List() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

type autoReqKind int

const (
	autoReqAuto autoReqKind = iota
	autoReqDisabled
	autoReqBuiltin
	autoReqScript
)

// AutoReqMode selects how automatic dependency discovery is performed.
// It is a closed variant: Auto, Disabled, Builtin, or Script(path).
type AutoReqMode struct {
	kind   autoReqKind
	script string
}

// AutoMode resolves to the system find-requires script when one exists,
// otherwise to the builtin analyzers.
func AutoMode() AutoReqMode { return AutoReqMode{kind: autoReqAuto} }

// DisabledMode turns discovery off entirely.
func DisabledMode() AutoReqMode { return AutoReqMode{kind: autoReqDisabled} }

// BuiltinMode uses the ELF and shebang analyzers.
func BuiltinMode() AutoReqMode { return AutoReqMode{kind: autoReqBuiltin} }

// ScriptMode delegates discovery to an external program.
func ScriptMode(path string) AutoReqMode {
	return AutoReqMode{kind: autoReqScript, script: path}
}

// IsAuto reports whether the mode still needs resolution.
func (m AutoReqMode) IsAuto() bool { return m.kind == autoReqAuto }

// IsDisabled reports whether discovery is turned off.
func (m AutoReqMode) IsDisabled() bool { return m.kind == autoReqDisabled }

// IsBuiltin reports whether the builtin analyzers are selected.
func (m AutoReqMode) IsBuiltin() bool { return m.kind == autoReqBuiltin }

// IsScript reports whether an external program is selected.
func (m AutoReqMode) IsScript() bool { return m.kind == autoReqScript }

// Script returns the external program path for Script mode.
func (m AutoReqMode) Script() string { return m.script }

// String renders the mode the way the manifest spells it.
func (m AutoReqMode) String() string {
	switch m.kind {
	case autoReqDisabled:
		return "disabled"
	case autoReqBuiltin:
		return "builtin"
	case autoReqScript:
		return m.script
	default:
		return "auto"
	}
}

// FindRequiresScript is the well-known system dependency-finder probed by
// Auto mode and selected by the "find-requires" mode spelling.
const FindRequiresScript = "/usr/lib/rpm/find-requires"

// ParseAutoReqMode maps a manifest or CLI mode string to an AutoReqMode.
// An existing filesystem path selects that path as an external script.
func ParseAutoReqMode(value string) (AutoReqMode, error) {
	switch value {
	case "", "auto":
		return AutoMode(), nil
	case "no", "disabled":
		return DisabledMode(), nil
	case "builtin":
		return BuiltinMode(), nil
	case "find-requires":
		return ScriptMode(FindRequiresScript), nil
	}
	if _, err := os.Stat(value); err == nil {
		return ScriptMode(value), nil
	}
	return AutoReqMode{}, fmt.Errorf("%w: %q", ErrUnknownAutoReqMode, value)
}
