// Package gateways defines interfaces for external tools and services.
package gateways

import "context"

// ProcessRunner runs an external program to completion, optionally feeding
// it stdin, and captures its stdout. Implementations ignore the exit status:
// a non-zero exit with empty output means "nothing found", not failure. Only
// spawn and pipe errors are reported, as *entities.ProcessError.
//
// The two process-based discovery components depend on this interface so
// tests can substitute fakes without spawning real processes.
type ProcessRunner interface {
	Run(ctx context.Context, program string, args []string, stdin string) ([]byte, error)
}
