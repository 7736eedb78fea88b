package orchestrators

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rpmforge/internal/domain-adapters/gateways"
	"rpmforge/internal/domain/entities"
	"rpmforge/internal/domain/services"
)

type fakeManifestRepository struct {
	manifest *entities.Manifest
	err      error

	loadedPath string
}

func (f *fakeManifestRepository) Load(_ context.Context, path string) (*entities.Manifest, error) {
	f.loadedPath = path
	return f.manifest, f.err
}

type fakeDiscoverer struct {
	requires []string
	err      error

	paths []string
	mode  entities.AutoReqMode
}

func (f *fakeDiscoverer) Discover(_ context.Context, paths []string, mode entities.AutoReqMode) ([]string, error) {
	f.paths = paths
	f.mode = mode
	return f.requires, f.err
}

func orchestratorManifest(t *testing.T) (*entities.Manifest, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello"), []byte("binary"), 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := &entities.Manifest{
		Package: entities.PackageMeta{
			Name:    "hello",
			Version: "1.0.0",
			License: "MIT",
			Arch:    "x86_64",
			AutoReq: "disabled",
		},
		Assets: []entities.Asset{
			{Source: "hello", Dest: "/usr/bin/hello", Mode: "755"},
		},
	}
	return manifest, dir
}

func TestPackageOrchestrator_BuildPackage(t *testing.T) {
	manifest, baseDir := orchestratorManifest(t)
	outputDir := t.TempDir()

	repo := &fakeManifestRepository{manifest: manifest}
	discovery := &fakeDiscoverer{requires: []string{"libc.so.6()(64bit)"}}

	orch := NewPackageOrchestrator(
		repo,
		gateways.NewAssetCollector(),
		discovery,
		gateways.NewRPMPackager(),
		services.NewChecksumService(),
		nil,
		PackageOrchestratorConfig{BaseDir: baseDir, OutputDir: outputDir},
	)

	result, err := orch.BuildPackage(context.Background(), "manifest.toml")
	if err != nil {
		t.Fatalf("BuildPackage() error: %v", err)
	}

	if repo.loadedPath != "manifest.toml" {
		t.Errorf("loaded path = %q, want manifest.toml", repo.loadedPath)
	}
	if len(discovery.paths) != 1 || discovery.paths[0] != filepath.Join(baseDir, "hello") {
		t.Errorf("discovery paths = %v, want the resolved asset source", discovery.paths)
	}
	if !discovery.mode.IsDisabled() {
		t.Errorf("discovery mode = %v, want the manifest's disabled mode", discovery.mode)
	}

	if _, err := os.Stat(result.Artifact.Path); err != nil {
		t.Errorf("artifact missing on disk: %v", err)
	}
	if len(result.DiscoveredRequires) != 1 {
		t.Errorf("DiscoveredRequires = %v, want the discovered token", result.DiscoveredRequires)
	}
	if result.Artifact.SHA256Path != "" {
		t.Errorf("SHA256Path = %q, want empty without EmitChecksums", result.Artifact.SHA256Path)
	}
}

func TestPackageOrchestrator_EmitChecksums(t *testing.T) {
	manifest, baseDir := orchestratorManifest(t)

	orch := NewPackageOrchestrator(
		&fakeManifestRepository{manifest: manifest},
		gateways.NewAssetCollector(),
		&fakeDiscoverer{},
		gateways.NewRPMPackager(),
		services.NewChecksumService(),
		nil,
		PackageOrchestratorConfig{BaseDir: baseDir, OutputDir: t.TempDir(), EmitChecksums: true},
	)

	result, err := orch.BuildPackage(context.Background(), "manifest.toml")
	if err != nil {
		t.Fatal(err)
	}

	for _, sidecar := range []string{result.Artifact.SHA256Path, result.Artifact.SHA512Path} {
		if sidecar == "" {
			t.Fatal("checksum sidecar path not recorded")
		}
		if _, err := os.Stat(sidecar); err != nil {
			t.Errorf("sidecar missing on disk: %v", err)
		}
	}
}

func TestPackageOrchestrator_AutoReqOverride(t *testing.T) {
	manifest, baseDir := orchestratorManifest(t)
	manifest.Package.AutoReq = "builtin"

	discovery := &fakeDiscoverer{}
	orch := NewPackageOrchestrator(
		&fakeManifestRepository{manifest: manifest},
		gateways.NewAssetCollector(),
		discovery,
		gateways.NewRPMPackager(),
		services.NewChecksumService(),
		nil,
		PackageOrchestratorConfig{BaseDir: baseDir, OutputDir: t.TempDir(), AutoReq: "disabled"},
	)

	if _, err := orch.BuildPackage(context.Background(), "manifest.toml"); err != nil {
		t.Fatal(err)
	}
	if !discovery.mode.IsDisabled() {
		t.Errorf("mode = %v, want command-line override to win", discovery.mode)
	}
}

func TestPackageOrchestrator_LoadErrorStopsWorkflow(t *testing.T) {
	wantErr := errors.New("manifest unreadable")
	discovery := &fakeDiscoverer{}

	orch := NewPackageOrchestrator(
		&fakeManifestRepository{err: wantErr},
		gateways.NewAssetCollector(),
		discovery,
		gateways.NewRPMPackager(),
		services.NewChecksumService(),
		nil,
		PackageOrchestratorConfig{},
	)

	_, err := orch.BuildPackage(context.Background(), "manifest.toml")
	if !errors.Is(err, wantErr) {
		t.Fatalf("BuildPackage() error = %v, want the load error", err)
	}
	if discovery.paths != nil {
		t.Error("discovery ran after the manifest failed to load")
	}
}

func TestPackageOrchestrator_DiscoveryErrorStopsWorkflow(t *testing.T) {
	manifest, baseDir := orchestratorManifest(t)
	manifest.Package.AutoReq = "builtin"

	orch := NewPackageOrchestrator(
		&fakeManifestRepository{manifest: manifest},
		gateways.NewAssetCollector(),
		&fakeDiscoverer{err: errors.New("ldd missing")},
		gateways.NewRPMPackager(),
		services.NewChecksumService(),
		nil,
		PackageOrchestratorConfig{BaseDir: baseDir, OutputDir: t.TempDir()},
	)

	if _, err := orch.BuildPackage(context.Background(), "manifest.toml"); err == nil {
		t.Fatal("BuildPackage() = nil error, want discovery failure to propagate")
	}
}

func TestPackageOrchestrator_BadAutoReqValue(t *testing.T) {
	manifest, baseDir := orchestratorManifest(t)
	manifest.Package.AutoReq = "definitely-not-a-mode"

	orch := NewPackageOrchestrator(
		&fakeManifestRepository{manifest: manifest},
		gateways.NewAssetCollector(),
		&fakeDiscoverer{},
		gateways.NewRPMPackager(),
		services.NewChecksumService(),
		nil,
		PackageOrchestratorConfig{BaseDir: baseDir, OutputDir: t.TempDir()},
	)

	_, err := orch.BuildPackage(context.Background(), "manifest.toml")
	if !errors.Is(err, entities.ErrUnknownAutoReqMode) {
		t.Fatalf("BuildPackage() error = %v, want ErrUnknownAutoReqMode", err)
	}
}
