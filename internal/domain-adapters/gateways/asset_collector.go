package gateways

import (
	"fmt"
	"path/filepath"
	"strings"

	"rpmforge/internal/domain/entities"
)

// ResolvedAsset is one concrete file placement produced by expanding a
// manifest asset: a single existing source file and its final install path.
type ResolvedAsset struct {
	Source string
	Dest   string
	Asset  entities.Asset
}

// AssetCollector expands manifest asset entries into the concrete file list
// that gets packaged and analyzed for dependencies.
type AssetCollector struct{}

// NewAssetCollector creates a new asset collector
func NewAssetCollector() *AssetCollector {
	return &AssetCollector{}
}

// Collect resolves every asset relative to baseDir. A source containing
// glob metacharacters may match several files; its dest must then end with
// "/" and each match keeps its base name. A source matching nothing is an
// error: the manifest promised a file the build did not produce.
func (c *AssetCollector) Collect(baseDir string, assets []entities.Asset) ([]ResolvedAsset, error) {
	var resolved []ResolvedAsset

	for i, asset := range assets {
		source := asset.Source
		if !filepath.IsAbs(source) {
			source = filepath.Join(baseDir, source)
		}

		if !strings.ContainsAny(source, "*?[") {
			resolved = append(resolved, ResolvedAsset{
				Source: source,
				Dest:   destFor(asset.Dest, source),
				Asset:  asset,
			})
			continue
		}

		matches, err := filepath.Glob(source)
		if err != nil {
			return nil, fmt.Errorf("asset %d: bad glob %q: %w", i, asset.Source, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("asset %d: %q matched no files", i, asset.Source)
		}
		if len(matches) > 1 && !strings.HasSuffix(asset.Dest, "/") {
			return nil, fmt.Errorf("asset %d: %q matched %d files but dest %q is not a directory",
				i, asset.Source, len(matches), asset.Dest)
		}
		for _, m := range matches {
			resolved = append(resolved, ResolvedAsset{
				Source: m,
				Dest:   destFor(asset.Dest, m),
				Asset:  asset,
			})
		}
	}

	return resolved, nil
}

// Sources returns just the source paths, in asset order. These are the
// candidate files handed to dependency discovery.
func Sources(assets []ResolvedAsset) []string {
	paths := make([]string, 0, len(assets))
	for _, a := range assets {
		paths = append(paths, a.Source)
	}
	return paths
}

func destFor(dest, source string) string {
	if strings.HasSuffix(dest, "/") {
		return dest + filepath.Base(source)
	}
	return dest
}
