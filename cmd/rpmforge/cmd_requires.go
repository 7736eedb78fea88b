package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"rpmforge/internal/domain/entities"
)

func runRequires(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("requires", flag.ExitOnError)
	mode := fs.String("auto-req", "auto", "Discovery mode: auto, disabled, builtin, find-requires, or a script path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rpmforge requires [options] <file>...

Discover the runtime dependencies the given built files induce and print
one requirement token per line.

Examples:
  rpmforge requires dist/mytool
  rpmforge requires -auto-req builtin dist/*
  rpmforge requires -auto-req /usr/lib/rpm/find-requires dist/mytool

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one file is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	autoReqMode, err := entities.ParseAutoReqMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	requires, err := newRequiresService().Discover(ctx, fs.Args(), autoReqMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, req := range requires {
		fmt.Println(req)
	}
}
