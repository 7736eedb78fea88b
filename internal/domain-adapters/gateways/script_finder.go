package gateways

import (
	"context"
	"strings"

	ifgateways "rpmforge/internal/domain/interfaces/gateways"
)

// ScriptFinder delegates requirement discovery to an external program
// speaking the classic find-requires protocol: candidate paths on stdin,
// one per line; requirement tokens on stdout, one per line.
type ScriptFinder struct {
	runner ifgateways.ProcessRunner
}

// NewScriptFinder creates a new external-script requirement finder
func NewScriptFinder(runner ifgateways.ProcessRunner) *ScriptFinder {
	return &ScriptFinder{runner: runner}
}

// Requires feeds paths to program and returns its non-empty output lines
// verbatim. The program's output is the contract; no validation or dedup
// happens here. Spawn and pipe failures surface as *entities.ProcessError.
func (f *ScriptFinder) Requires(ctx context.Context, paths []string, program string) ([]string, error) {
	out, err := f.runner.Run(ctx, program, nil, strings.Join(paths, "\n"))
	if err != nil {
		return nil, err
	}

	var requires []string
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		requires = append(requires, line)
	}
	return requires, nil
}
