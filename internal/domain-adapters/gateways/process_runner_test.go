package gateways

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"rpmforge/internal/domain/entities"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestProcessRunner_CapturesStdout(t *testing.T) {
	skipWithoutShell(t)

	runner := NewProcessRunner()
	out, err := runner.Run(context.Background(), "sh", []string{"-c", "echo hello"}, "")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "hello" {
		t.Errorf("Run() output = %q, want %q", got, "hello")
	}
}

func TestProcessRunner_ForwardsStdin(t *testing.T) {
	skipWithoutShell(t)

	runner := NewProcessRunner()
	out, err := runner.Run(context.Background(), "cat", nil, "line1\nline2")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if string(out) != "line1\nline2" {
		t.Errorf("Run() output = %q, want stdin echoed back", out)
	}
}

// Tools like ldd exit non-zero for inputs they cannot handle while still
// printing a useful report; the runner must hand back the output anyway.
func TestProcessRunner_NonZeroExitIsNotAnError(t *testing.T) {
	skipWithoutShell(t)

	runner := NewProcessRunner()
	out, err := runner.Run(context.Background(), "sh", []string{"-c", "echo partial; exit 3"}, "")
	if err != nil {
		t.Fatalf("Run() error: %v, want nil for non-zero exit", err)
	}
	if got := strings.TrimSpace(string(out)); got != "partial" {
		t.Errorf("Run() output = %q, want %q", got, "partial")
	}
}

func TestProcessRunner_SpawnFailure(t *testing.T) {
	runner := NewProcessRunner()
	_, err := runner.Run(context.Background(), "rpmforge-no-such-program", nil, "")

	var procErr *entities.ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("Run() error = %v, want *entities.ProcessError", err)
	}
	if procErr.Program != "rpmforge-no-such-program" {
		t.Errorf("Program = %q, want the failing program name", procErr.Program)
	}
}
