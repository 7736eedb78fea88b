package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"rpmforge/internal/domain/services"
)

func runVerify(_ context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rpmforge verify <package.rpm>...

Verify each package against its .sha256/.sha512 checksum sidecars.
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}

	checksums := services.NewChecksumService()
	failed := 0

	for _, path := range fs.Args() {
		verified := 0
		for _, suffix := range []string{".sha256", ".sha512"} {
			sidecar := path + suffix
			if _, err := os.Stat(sidecar); err != nil {
				continue
			}
			if err := checksums.Verify(path, sidecar); err != nil {
				fmt.Fprintf(os.Stderr, "❌ %s: %v\n", path, err)
				failed++
				continue
			}
			verified++
		}
		if verified > 0 {
			fmt.Printf("✅ %s\n", path)
		} else if failed == 0 {
			fmt.Fprintf(os.Stderr, "❌ %s: no checksum sidecars found\n", path)
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
