// Package gateways provides adapter implementations for external services and tools.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"rpmforge/internal/domain/entities"
)

// ProcessRunner executes external programs and captures their stdout.
// It blocks until the child's stdout is fully drained.
type ProcessRunner struct{}

// NewProcessRunner creates a new process runner
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run spawns program with args, writes stdin to its standard input, and
// returns everything the child wrote to stdout. A non-zero exit status is
// not an error; the captured output is the only success signal. Spawn and
// pipe failures are reported as *entities.ProcessError carrying the program
// name.
func (r *ProcessRunner) Run(ctx context.Context, program string, args []string, stdin string) ([]byte, error) {
	//nolint:gosec // G204: program and args come from discovery configuration
	cmd := exec.CommandContext(ctx, program, args...)

	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &entities.ProcessError{Program: program, Err: err}
		}
		// Tools like ldd exit non-zero for files they cannot handle;
		// whatever they printed is still the report.
	}

	return stdout.Bytes(), nil
}
