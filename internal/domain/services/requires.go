// Package services contains domain logic that coordinates gateways.
package services

import (
	"context"
	"os"
	"runtime"

	"rpmforge/internal/domain/entities"
)

// BinaryInspector classifies candidate files as dynamically linked binaries
type BinaryInspector interface {
	Inspect(path string) (*entities.BinaryInfo, bool)
}

// SharedObjectResolver extracts soname requirements from one binary
type SharedObjectResolver interface {
	Requires(ctx context.Context, path, marker string) (entities.RequirementSet, error)
}

// InterpreterResolver resolves shebang interpreters
type InterpreterResolver interface {
	Interpreter(path string) (string, bool)
}

// ScriptFinder delegates discovery to an external program
type ScriptFinder interface {
	Requires(ctx context.Context, paths []string, program string) ([]string, error)
}

// RequiresService is the discovery engine's top-level dispatcher: it maps a
// candidate file list and an AutoReqMode to a sorted, deduplicated list of
// requirement tokens.
type RequiresService struct {
	inspector    BinaryInspector
	sharedObjs   SharedObjectResolver
	interpreters InterpreterResolver
	scriptFinder ScriptFinder
	probeScript  string
}

// RequiresServiceConfig holds optional configuration for the service
type RequiresServiceConfig struct {
	// ProbeScript is the well-known system find-requires path checked by
	// Auto mode. Empty selects entities.FindRequiresScript.
	ProbeScript string
}

// NewRequiresService creates a new requires discovery service
func NewRequiresService(
	inspector BinaryInspector,
	sharedObjs SharedObjectResolver,
	interpreters InterpreterResolver,
	scriptFinder ScriptFinder,
	config RequiresServiceConfig,
) *RequiresService {
	probeScript := config.ProbeScript
	if probeScript == "" {
		probeScript = entities.FindRequiresScript
	}
	return &RequiresService{
		inspector:    inspector,
		sharedObjs:   sharedObjs,
		interpreters: interpreters,
		scriptFinder: scriptFinder,
		probeScript:  probeScript,
	}
}

// Discover runs dependency discovery over paths according to mode and
// returns the requirement tokens in lexicographic order.
//
// Disabled performs no I/O at all. Auto resolves once, to the system
// find-requires script when it exists and to Builtin otherwise. Script mode
// is all-or-nothing; in Builtin mode a file that cannot be read or
// recognized simply contributes nothing, and only an external-process
// failure aborts the batch.
func (s *RequiresService) Discover(ctx context.Context, paths []string, mode entities.AutoReqMode) ([]string, error) {
	switch {
	case mode.IsDisabled():
		return nil, nil

	case mode.IsAuto():
		if _, err := os.Stat(s.probeScript); err == nil {
			return s.Discover(ctx, paths, entities.ScriptMode(s.probeScript))
		}
		return s.Discover(ctx, paths, entities.BuiltinMode())

	case mode.IsScript():
		lines, err := s.scriptFinder.Requires(ctx, paths, mode.Script())
		if err != nil {
			return nil, err
		}
		return entities.NewRequirementSet(lines...).List(), nil

	default:
		return s.discoverBuiltin(ctx, paths)
	}
}

func (s *RequiresService) discoverBuiltin(ctx context.Context, paths []string) ([]string, error) {
	requires := entities.NewRequirementSet()

	for _, path := range paths {
		if !isExecutable(path) {
			continue
		}

		if info, ok := s.inspector.Inspect(path); ok {
			found, err := s.sharedObjs.Requires(ctx, path, info.Marker())
			if err != nil {
				return nil, err
			}
			requires.Merge(found)
			if info.HasGNUHash && !info.HasHash {
				requires.Add(entities.RequiresGNUHash)
			}
			continue
		}

		if interpreter, ok := s.interpreters.Interpreter(path); ok {
			requires.Add(interpreter)
		}
	}

	return requires.List(), nil
}

// isExecutable reports whether any execute bit is set. Platforms without
// POSIX execute bits never filter (conservative: never silently skip).
func isExecutable(path string) bool {
	if runtime.GOOS == "windows" {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
