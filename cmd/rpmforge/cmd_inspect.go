package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"rpmforge/internal/domain-adapters/gateways"
)

// inspectReport is the JSON shape printed by the inspect command
type inspectReport struct {
	Path       string `json:"path"`
	Class      int    `json:"class"`
	Machine    uint16 `json:"machine"`
	HasHash    bool   `json:"hash_section"`
	HasGNUHash bool   `json:"gnu_hash_section"`
	Marker     string `json:"marker"`
}

func runInspect(_ context.Context, args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rpmforge inspect <binary>

Print the dependency-relevant structure of a dynamically linked binary as
JSON: word size, machine code, and symbol-hash sections.
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)
	info, ok := gateways.NewELFInspector().Inspect(path)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s is not a recognizable ELF binary\n", path)
		os.Exit(1)
	}

	report := inspectReport{
		Path:       path,
		Class:      info.Class,
		Machine:    info.Machine,
		HasHash:    info.HasHash,
		HasGNUHash: info.HasGNUHash,
		Marker:     info.Marker(),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
