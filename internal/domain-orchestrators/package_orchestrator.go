// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"rpmforge/internal/domain-adapters/gateways"
	"rpmforge/internal/domain/entities"
	"rpmforge/internal/domain/interfaces"
	"rpmforge/internal/domain/interfaces/repositories"
)

// AssetCollector interface for expanding manifest assets into files
type AssetCollector interface {
	Collect(baseDir string, assets []entities.Asset) ([]gateways.ResolvedAsset, error)
}

// RequiresDiscoverer interface for automatic dependency discovery
type RequiresDiscoverer interface {
	Discover(ctx context.Context, paths []string, mode entities.AutoReqMode) ([]string, error)
}

// Packager interface for serializing the package file
type Packager interface {
	BuildPackage(ctx context.Context, manifest *entities.Manifest, assets []gateways.ResolvedAsset,
		requires []string, opts gateways.PackageOptions) (*entities.PackageArtifact, error)
}

// ChecksumWriter interface for generating checksum sidecars
type ChecksumWriter interface {
	GenerateSHA256(filePath string) (string, error)
	GenerateSHA512(filePath string) (string, error)
}

// PackageOrchestrator coordinates the complete manifest-to-RPM workflow
type PackageOrchestrator struct {
	manifests repositories.ManifestRepository
	collector AssetCollector
	discovery RequiresDiscoverer
	packager  Packager
	checksums ChecksumWriter
	logger    interfaces.Logger
	config    PackageOrchestratorConfig
}

// PackageOrchestratorConfig holds configuration for the orchestrator
type PackageOrchestratorConfig struct {
	// BaseDir anchors relative asset sources; empty means the current
	// directory.
	BaseDir string
	// OutputDir receives the built package (default "dist").
	OutputDir string
	// Arch overrides the manifest arch.
	Arch string
	// AutoReq overrides the manifest auto-req mode when non-empty.
	AutoReq string
	// PayloadCompress overrides the manifest payload compressor.
	PayloadCompress string
	// Signer signs the package when set.
	Signer func([]byte) ([]byte, error)
	// EmitChecksums writes .sha256/.sha512 sidecars next to the package.
	EmitChecksums bool
}

// NewPackageOrchestrator creates a new package orchestrator
func NewPackageOrchestrator(
	manifests repositories.ManifestRepository,
	collector AssetCollector,
	discovery RequiresDiscoverer,
	packager Packager,
	checksums ChecksumWriter,
	logger interfaces.Logger,
	config PackageOrchestratorConfig,
) *PackageOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &PackageOrchestrator{
		manifests: manifests,
		collector: collector,
		discovery: discovery,
		packager:  packager,
		checksums: checksums,
		logger:    logger,
		config:    config,
	}
}

// PackageResult contains the result of one package build
type PackageResult struct {
	Artifact           *entities.PackageArtifact
	DiscoveredRequires []string
	Duration           time.Duration
}

// BuildPackage executes the complete workflow for the manifest at
// manifestPath: load and validate, collect assets, discover requires,
// serialize the RPM, and optionally emit checksum sidecars.
func (o *PackageOrchestrator) BuildPackage(ctx context.Context, manifestPath string) (*PackageResult, error) {
	start := time.Now()

	manifest, err := o.manifests.Load(ctx, manifestPath)
	if err != nil {
		return nil, err
	}
	o.logger.Info("manifest loaded",
		interfaces.F("package", manifest.Package.Name),
		interfaces.F("version", manifest.Package.Version))

	assets, err := o.collector.Collect(o.config.BaseDir, manifest.Assets)
	if err != nil {
		return nil, err
	}
	o.logger.Info("assets collected", interfaces.F("files", len(assets)))

	modeValue := manifest.Package.AutoReq
	if o.config.AutoReq != "" {
		modeValue = o.config.AutoReq
	}
	mode, err := entities.ParseAutoReqMode(modeValue)
	if err != nil {
		return nil, err
	}

	discovered, err := o.discovery.Discover(ctx, gateways.Sources(assets), mode)
	if err != nil {
		return nil, fmt.Errorf("dependency discovery failed: %w", err)
	}
	o.logger.Info("requires discovered",
		interfaces.F("mode", mode.String()),
		interfaces.F("count", len(discovered)))
	for _, req := range discovered {
		o.logger.Debug("requires", interfaces.F("token", req))
	}

	artifact, err := o.packager.BuildPackage(ctx, manifest, assets, discovered, gateways.PackageOptions{
		OutputDir:  o.config.OutputDir,
		Arch:       o.config.Arch,
		Compressor: o.config.PayloadCompress,
		Signer:     o.config.Signer,
	})
	if err != nil {
		return nil, err
	}
	o.logger.Info("package written", interfaces.F("path", artifact.Path))

	if o.config.EmitChecksums {
		sha256Path, err := o.checksums.GenerateSHA256(artifact.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to generate SHA256: %w", err)
		}
		artifact.SHA256Path = sha256Path

		sha512Path, err := o.checksums.GenerateSHA512(artifact.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to generate SHA512: %w", err)
		}
		artifact.SHA512Path = sha512Path
		o.logger.Info("checksums written")
	}

	return &PackageResult{
		Artifact:           artifact,
		DiscoveredRequires: discovered,
		Duration:           time.Since(start),
	}, nil
}
