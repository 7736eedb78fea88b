package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "package":
		runPackage(ctx, os.Args[2:])
	case "requires":
		runRequires(ctx, os.Args[2:])
	case "inspect":
		runInspect(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rpmforge - RPM packager for prebuilt artifacts

Usage:
  rpmforge <command> [options]

Commands:
  package   Build an RPM package from a manifest
  requires  Discover runtime dependencies of built files
  inspect   Show the dependency-relevant structure of a binary
  verify    Verify checksum sidecars of a built package

Use "rpmforge <command> --help" for more information about a command.`)
}

// detectArch maps the running GOARCH to the RPM architecture name used in
// package file names and headers.
func detectArch() string {
	archMap := map[string]string{
		"amd64": "x86_64",
		"arm64": "aarch64",
		"386":   "i686",
	}

	if mapped := archMap[runtime.GOARCH]; mapped != "" {
		return mapped
	}
	return runtime.GOARCH
}
