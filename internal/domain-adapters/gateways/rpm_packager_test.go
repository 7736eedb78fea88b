package gateways

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rpmforge/internal/domain/entities"
)

func packagerManifest() *entities.Manifest {
	return &entities.Manifest{
		Package: entities.PackageMeta{
			Name:    "hello",
			Version: "1.0.0",
			Release: "2",
			License: "MIT",
			Summary: "a test package",
			Arch:    "x86_64",
		},
	}
}

func TestRPMPackager_BuildPackage(t *testing.T) {
	dir := t.TempDir()
	source := touch(t, dir, "hello")

	packager := NewRPMPackager()
	artifact, err := packager.BuildPackage(
		context.Background(),
		packagerManifest(),
		[]ResolvedAsset{{Source: source, Dest: "/usr/bin/hello", Asset: entities.Asset{Mode: "755"}}},
		[]string{"libc.so.6()(64bit)"},
		PackageOptions{OutputDir: filepath.Join(dir, "out")},
	)
	if err != nil {
		t.Fatalf("BuildPackage() error: %v", err)
	}

	wantPath := filepath.Join(dir, "out", "hello-1.0.0-2.x86_64.rpm")
	if artifact.Path != wantPath {
		t.Errorf("Path = %q, want %q", artifact.Path, wantPath)
	}

	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		t.Fatalf("package file missing: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xed, 0xab, 0xee, 0xdb}) {
		t.Errorf("output does not start with the RPM lead magic: % x", data[:4])
	}

	if len(artifact.Requires) != 1 || artifact.Requires[0] != "libc.so.6()(64bit)" {
		t.Errorf("Requires = %v, want the discovered token", artifact.Requires)
	}
}

func TestRPMPackager_ArchOverride(t *testing.T) {
	dir := t.TempDir()
	source := touch(t, dir, "hello")

	packager := NewRPMPackager()
	artifact, err := packager.BuildPackage(
		context.Background(),
		packagerManifest(),
		[]ResolvedAsset{{Source: source, Dest: "/usr/bin/hello"}},
		nil,
		PackageOptions{OutputDir: dir, Arch: "aarch64"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if artifact.Arch != "aarch64" {
		t.Errorf("Arch = %q, want override to win", artifact.Arch)
	}
	if !strings.HasSuffix(artifact.Path, ".aarch64.rpm") {
		t.Errorf("Path = %q, want aarch64 file name", artifact.Path)
	}
}

func TestRPMPackager_BadRelation(t *testing.T) {
	manifest := packagerManifest()
	manifest.Package.Requires = []string{"libfoo =< 1.0"}

	packager := NewRPMPackager()
	_, err := packager.BuildPackage(context.Background(), manifest, nil, nil, PackageOptions{OutputDir: t.TempDir()})
	if err == nil {
		t.Fatal("BuildPackage() = nil error for a malformed relation")
	}
}

func TestRPMPackager_MissingAsset(t *testing.T) {
	packager := NewRPMPackager()
	_, err := packager.BuildPackage(
		context.Background(),
		packagerManifest(),
		[]ResolvedAsset{{Source: "/nonexistent/file", Dest: "/usr/bin/x"}},
		nil,
		PackageOptions{OutputDir: t.TempDir()},
	)
	if err == nil {
		t.Fatal("BuildPackage() = nil error for a missing asset source")
	}
}

func TestAssetMode(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "f")
	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		modeStr string
		want    uint
		wantErr bool
	}{
		{"explicit mode gets file type bits", "755", 0o100755, false},
		{"mode with type bits kept as-is", "100644", 0o100644, false},
		{"empty mode falls back to source perms", "", 0o100640, false},
		{"non-octal mode", "rwxr-xr-x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assetMode(tt.modeStr, info)
			if tt.wantErr {
				if err == nil {
					t.Fatal("assetMode() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("assetMode() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("assetMode(%q) = %o, want %o", tt.modeStr, got, tt.want)
			}
		})
	}
}
