package gateways

import (
	"context"
	"strings"

	"rpmforge/internal/domain/entities"
	ifgateways "rpmforge/internal/domain/interfaces/gateways"
)

// lddProgram is the dynamic-linker introspection tool invoked in verbose
// mode against each binary.
const lddProgram = "ldd"

// LddResolver turns a dynamically linked binary into the set of soname
// requirement tokens its dynamic linker will demand at run time.
type LddResolver struct {
	runner ifgateways.ProcessRunner
}

// NewLddResolver creates a new ldd-based requirement resolver
func NewLddResolver(runner ifgateways.ProcessRunner) *LddResolver {
	return &LddResolver{runner: runner}
}

// Requires runs `ldd -v path` and parses its report. marker is the
// architecture suffix appended to every emitted token. Failure to spawn ldd
// or read its output is fatal for the discovery call.
func (r *LddResolver) Requires(ctx context.Context, path, marker string) (entities.RequirementSet, error) {
	out, err := r.runner.Run(ctx, lddProgram, []string{"-v", path}, "")
	if err != nil {
		return nil, err
	}
	return parseLddReport(string(out), path, marker), nil
}

// parseLddReport extracts requirement tokens from a verbose ldd report in
// two independent passes.
//
// The unversioned pass reads the leading block, up to the first blank line:
//
//	linux-vdso.so.1 (0x00007ffd609f2000)
//	libc.so.6 => /lib64/libc.so.6 (0x00007f6581c00000)
//
// The versioned pass reads the "Version information:" block, but only the
// sub-block belonging to the analyzed path itself, whose entries look like
//
//	libc.so.6 (GLIBC_2.34) => /lib64/libc.so.6
func parseLddReport(report, path, marker string) entities.RequirementSet {
	lines := strings.Split(report, "\n")

	var candidates []string

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			break
		}
		token, _, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
		candidates = append(candidates, token)
	}

	i := 0
	for ; i < len(lines); i++ {
		if strings.Contains(lines[i], "Version information:") {
			i++
			break
		}
	}
	for ; i < len(lines); i++ {
		if strings.Contains(lines[i], path) {
			i++
			break
		}
	}
	for ; i < len(lines); i++ {
		if !strings.Contains(lines[i], " => ") {
			break
		}
		token, _, _ := strings.Cut(strings.TrimLeft(lines[i], " \t"), " => ")
		candidates = append(candidates, token)
	}

	requires := entities.NewRequirementSet()
	for _, name := range candidates {
		if !acceptSoname(name) {
			continue
		}
		if strings.Contains(name, " (") {
			// Versioned entry: emit the bare soname too.
			base, _, _ := strings.Cut(name, " ")
			requires.Add(base + "()" + marker)
			requires.Add(strings.ReplaceAll(name, " ", "") + marker)
		} else {
			requires.Add(strings.ReplaceAll(name, " ", "") + "()" + marker)
		}
	}
	return requires
}

// acceptSoname filters out the non-library tokens ldd also prints, such as
// the vdso and absolute loader paths.
func acceptSoname(name string) bool {
	if !strings.Contains(name, ".so") {
		return false
	}
	return strings.HasPrefix(name, "ld.") ||
		strings.HasPrefix(name, "ld-") ||
		strings.HasPrefix(name, "ld64.") ||
		strings.HasPrefix(name, "ld64-") ||
		strings.HasPrefix(name, "lib")
}
