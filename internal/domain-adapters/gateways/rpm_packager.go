package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/rpmpack"

	"rpmforge/internal/domain/entities"
)

// RPMPackager serializes a manifest plus its resolved assets and final
// requirement list into an .rpm file.
type RPMPackager struct{}

// NewRPMPackager creates a new RPM packager
func NewRPMPackager() *RPMPackager {
	return &RPMPackager{}
}

// PackageOptions holds per-invocation overrides for BuildPackage
type PackageOptions struct {
	// OutputDir receives the package; created if missing. Defaults to "dist".
	OutputDir string
	// Arch overrides the manifest arch.
	Arch string
	// Compressor overrides the manifest payload compressor.
	Compressor string
	// Signer, when set, produces a detached PGP signature over the
	// header+payload and is plugged into the package signature header.
	Signer func([]byte) ([]byte, error)
}

// BuildPackage writes <name>-<version>-<release>.<arch>.rpm under the output
// directory and returns the artifact description. requires holds the
// discovered dependency tokens; they are recorded as any-version relations
// alongside the manifest's declared ones.
func (p *RPMPackager) BuildPackage(
	_ context.Context,
	manifest *entities.Manifest,
	assets []ResolvedAsset,
	requires []string,
	opts PackageOptions,
) (*entities.PackageArtifact, error) {
	pkg := manifest.Package

	arch := opts.Arch
	if arch == "" {
		arch = pkg.Arch
	}
	compressor := opts.Compressor
	if compressor == "" {
		compressor = pkg.PayloadCompress
	}
	release := pkg.ReleaseOrDefault()

	meta := rpmpack.RPMMetaData{
		Name:        pkg.Name,
		Version:     pkg.Version,
		Release:     release,
		Epoch:       pkg.Epoch,
		Summary:     pkg.Summary,
		Description: pkg.Description,
		Licence:     pkg.License,
		URL:         pkg.URL,
		Vendor:      pkg.Vendor,
		Group:       pkg.Group,
		Arch:        arch,
		OS:          "linux",
		BuildTime:   time.Now(),
		Compressor:  compressor,
	}

	allRequires := make([]string, 0, len(pkg.Requires)+len(requires))
	allRequires = append(allRequires, pkg.Requires...)
	allRequires = append(allRequires, requires...)
	for _, rel := range allRequires {
		if err := meta.Requires.Set(rel); err != nil {
			return nil, fmt.Errorf("bad requires relation %q: %w", rel, err)
		}
	}
	relationLists := []struct {
		target *rpmpack.Relations
		values []string
	}{
		{&meta.Provides, pkg.Provides},
		{&meta.Conflicts, pkg.Conflicts},
		{&meta.Obsoletes, pkg.Obsoletes},
		{&meta.Recommends, pkg.Recommends},
		{&meta.Suggests, pkg.Suggests},
	}
	for _, rl := range relationLists {
		for _, rel := range rl.values {
			if err := rl.target.Set(rel); err != nil {
				return nil, fmt.Errorf("bad relation %q: %w", rel, err)
			}
		}
	}

	rpm, err := rpmpack.NewRPM(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize package: %w", err)
	}

	for _, asset := range assets {
		file, err := p.packageFile(asset)
		if err != nil {
			return nil, err
		}
		rpm.AddFile(file)
	}

	if s := manifest.Scripts.PreInstall; s != "" {
		rpm.AddPrein(s)
	}
	if s := manifest.Scripts.PostInstall; s != "" {
		rpm.AddPostin(s)
	}
	if s := manifest.Scripts.PreUninstall; s != "" {
		rpm.AddPreun(s)
	}
	if s := manifest.Scripts.PostUninstall; s != "" {
		rpm.AddPostun(s)
	}

	if opts.Signer != nil {
		rpm.SetPGPSigner(opts.Signer)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "dist"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	fileName := fmt.Sprintf("%s-%s-%s.%s.rpm", pkg.Name, pkg.Version, release, arch)
	outputPath := filepath.Join(outputDir, fileName)

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := rpm.Write(out); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return &entities.PackageArtifact{
		Name:     pkg.Name,
		Version:  pkg.Version,
		Release:  release,
		Arch:     arch,
		Path:     outputPath,
		Requires: allRequires,
	}, nil
}

// packageFile loads one resolved asset into an in-memory package entry.
func (p *RPMPackager) packageFile(asset ResolvedAsset) (rpmpack.RPMFile, error) {
	info, err := os.Stat(asset.Source)
	if err != nil {
		return rpmpack.RPMFile{}, fmt.Errorf("failed to stat asset %s: %w", asset.Source, err)
	}

	body, err := os.ReadFile(asset.Source)
	if err != nil {
		return rpmpack.RPMFile{}, fmt.Errorf("failed to read asset %s: %w", asset.Source, err)
	}

	mode, err := assetMode(asset.Asset.Mode, info)
	if err != nil {
		return rpmpack.RPMFile{}, fmt.Errorf("asset %s: %w", asset.Source, err)
	}

	owner := asset.Asset.User
	if owner == "" {
		owner = "root"
	}
	group := asset.Asset.Group
	if group == "" {
		group = "root"
	}

	var fileType rpmpack.FileType
	switch {
	case asset.Asset.ConfigNoReplace:
		fileType = rpmpack.ConfigFile | rpmpack.NoReplaceFile
	case asset.Asset.Config:
		fileType = rpmpack.ConfigFile
	case asset.Asset.Doc:
		fileType = rpmpack.DocFile
	default:
		fileType = rpmpack.GenericFile
	}

	return rpmpack.RPMFile{
		Name:  asset.Dest,
		Body:  body,
		Mode:  mode,
		Owner: owner,
		Group: group,
		MTime: uint32(info.ModTime().Unix()),
		Type:  fileType,
	}, nil
}

// assetMode resolves the on-package mode bits: the manifest's octal string
// when present (regular-file type bits added unless the string already
// carries type bits), the source file's permissions otherwise.
func assetMode(modeStr string, info os.FileInfo) (uint, error) {
	const regularFile = 0o100000

	if modeStr == "" {
		return uint(info.Mode().Perm()) | regularFile, nil
	}
	mode, err := strconv.ParseUint(modeStr, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("mode %q is not an octal string", modeStr)
	}
	if mode&0o170000 == 0 {
		mode |= regularFile
	}
	return uint(mode), nil
}
