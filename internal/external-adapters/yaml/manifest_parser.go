// Package yaml provides YAML-based manifest parsing and repository implementations.
package yaml

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"rpmforge/internal/domain/entities"
)

// yamlManifest represents the raw YAML structure
type yamlManifest struct {
	Package yamlPackage `yaml:"package"`
	Assets  []yamlAsset `yaml:"assets"`
	Scripts yamlScripts `yaml:"scripts"`
}

type yamlPackage struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Release     string `yaml:"release"`
	Epoch       uint32 `yaml:"epoch"`
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	License     string `yaml:"license"`
	Arch        string `yaml:"arch"`
	URL         string `yaml:"url"`
	Vendor      string `yaml:"vendor"`
	Group       string `yaml:"group"`

	Requires   []string `yaml:"requires"`
	Provides   []string `yaml:"provides"`
	Conflicts  []string `yaml:"conflicts"`
	Obsoletes  []string `yaml:"obsoletes"`
	Recommends []string `yaml:"recommends"`
	Suggests   []string `yaml:"suggests"`

	AutoReq         string `yaml:"auto-req"`
	PayloadCompress string `yaml:"payload-compress"`
}

type yamlAsset struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
	User   string `yaml:"user"`
	Group  string `yaml:"group"`
	Mode   string `yaml:"mode"`
	// Config is either a boolean or the string "noreplace"
	Config any  `yaml:"config"`
	Doc    bool `yaml:"doc"`
}

type yamlScripts struct {
	PreInstall    string `yaml:"pre-install"`
	PostInstall   string `yaml:"post-install"`
	PreUninstall  string `yaml:"pre-uninstall"`
	PostUninstall string `yaml:"post-uninstall"`
}

// ManifestParser parses YAML manifest files
type ManifestParser struct{}

// NewManifestParser creates a new YAML parser
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// ParseFile parses a YAML manifest file into a Manifest entity
func (p *ManifestParser) ParseFile(filePath string) (*entities.Manifest, error) {
	//nolint:gosec // G304: filePath is the manifest path given on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return p.Parse(data)
}

// Parse parses YAML manifest content with unknown keys rejected.
func (p *ManifestParser) Parse(data []byte) (*entities.Manifest, error) {
	var raw yamlManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	manifest := &entities.Manifest{
		Package: entities.PackageMeta{
			Name:            raw.Package.Name,
			Version:         raw.Package.Version,
			Release:         raw.Package.Release,
			Epoch:           raw.Package.Epoch,
			Summary:         raw.Package.Summary,
			Description:     raw.Package.Description,
			License:         raw.Package.License,
			Arch:            raw.Package.Arch,
			URL:             raw.Package.URL,
			Vendor:          raw.Package.Vendor,
			Group:           raw.Package.Group,
			Requires:        raw.Package.Requires,
			Provides:        raw.Package.Provides,
			Conflicts:       raw.Package.Conflicts,
			Obsoletes:       raw.Package.Obsoletes,
			Recommends:      raw.Package.Recommends,
			Suggests:        raw.Package.Suggests,
			AutoReq:         raw.Package.AutoReq,
			PayloadCompress: raw.Package.PayloadCompress,
		},
		Scripts: entities.Scriptlets{
			PreInstall:    raw.Scripts.PreInstall,
			PostInstall:   raw.Scripts.PostInstall,
			PreUninstall:  raw.Scripts.PreUninstall,
			PostUninstall: raw.Scripts.PostUninstall,
		},
	}

	for i, a := range raw.Assets {
		asset := entities.Asset{
			Source: a.Source,
			Dest:   a.Dest,
			User:   a.User,
			Group:  a.Group,
			Mode:   a.Mode,
			Doc:    a.Doc,
		}
		switch v := a.Config.(type) {
		case nil:
		case bool:
			asset.Config = v
		case string:
			if v != "noreplace" {
				return nil, fmt.Errorf("asset %d: config must be a bool or %q, got %q", i, "noreplace", v)
			}
			asset.ConfigNoReplace = true
		default:
			return nil, fmt.Errorf("asset %d: config must be a bool or %q", i, "noreplace")
		}
		manifest.Assets = append(manifest.Assets, asset)
	}

	return manifest, nil
}
