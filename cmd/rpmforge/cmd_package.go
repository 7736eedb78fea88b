// Package main provides the rpmforge CLI for packaging prebuilt artifacts as RPMs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rpmforge/internal/domain-adapters/gateways"
	orchestrators "rpmforge/internal/domain-orchestrators"
	"rpmforge/internal/domain/interfaces"
	"rpmforge/internal/domain/interfaces/repositories"
	"rpmforge/internal/domain/services"
	"rpmforge/internal/external-adapters/gpg"
	"rpmforge/internal/external-adapters/toml"
	"rpmforge/internal/external-adapters/yaml"
)

func runPackage(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("package", flag.ExitOnError)
	var (
		manifestPath = fs.String("manifest", "rpmforge.toml", "Path to the package manifest (.toml or .yaml)")
		baseDir      = fs.String("base-dir", "", "Directory that relative asset sources are resolved against")
		outputDir    = fs.String("output-dir", "dist", "Output directory for the built package")
		arch         = fs.String("arch", "", "Target architecture (default: manifest arch, else host arch)")
		autoReq      = fs.String("auto-req", "", "Dependency discovery mode: auto, disabled, builtin, find-requires, or a script path (default: manifest setting)")
		compress     = fs.String("payload-compress", "", "Payload compressor: gzip, lzma, xz, zstd (default: manifest setting)")
		signKey      = fs.String("sign-key", "", "Armored PGP private key file used to sign the package")
		signPass     = fs.String("sign-passphrase", "", "Passphrase for the signing key")
		checksums    = fs.Bool("checksums", false, "Write .sha256/.sha512 sidecars next to the package")
		verbose      = fs.Bool("verbose", false, "Log each discovered requirement")
		quiet        = fs.Bool("quiet", false, "Quiet mode - minimal output")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rpmforge package [options]

Build an RPM package from a manifest.

Examples:
  rpmforge package
  rpmforge package -manifest dist/rpmforge.toml -output-dir out
  rpmforge package -auto-req builtin -checksums
  rpmforge package -sign-key release.key -payload-compress zstd

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	var logger interfaces.Logger = &interfaces.StderrLogger{Verbose: *verbose}
	if *quiet {
		logger = &interfaces.NoOpLogger{}
	}

	targetArch := *arch
	if targetArch == "" {
		targetArch = detectArch()
	}

	config := orchestrators.PackageOrchestratorConfig{
		BaseDir:         *baseDir,
		OutputDir:       *outputDir,
		Arch:            targetArch,
		AutoReq:         *autoReq,
		PayloadCompress: *compress,
		EmitChecksums:   *checksums,
	}

	if *signKey != "" {
		signer, err := gpg.NewSignerFromFile(*signKey, *signPass)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.Signer = signer.Sign
	}

	orch := orchestrators.NewPackageOrchestrator(
		manifestRepository(*manifestPath),
		gateways.NewAssetCollector(),
		newRequiresService(),
		gateways.NewRPMPackager(),
		services.NewChecksumService(),
		logger,
		config,
	)

	result, err := orch.BuildPackage(ctx, *manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*quiet {
		fmt.Printf("✅ Built %s (%d discovered requires, %.2fs)\n",
			result.Artifact.Path, len(result.DiscoveredRequires), result.Duration.Seconds())
	}
}

// manifestRepository picks the repository implementation by file extension.
func manifestRepository(path string) repositories.ManifestRepository {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.NewManifestRepository()
	default:
		return toml.NewManifestRepository()
	}
}

// newRequiresService wires the discovery engine with its real gateways.
func newRequiresService() *services.RequiresService {
	runner := gateways.NewProcessRunner()
	return services.NewRequiresService(
		gateways.NewELFInspector(),
		gateways.NewLddResolver(runner),
		gateways.NewShebangResolver(),
		gateways.NewScriptFinder(runner),
		services.RequiresServiceConfig{},
	)
}
