// Package toml provides TOML-based manifest parsing and repository implementations.
package toml

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"rpmforge/internal/domain/entities"
)

// tomlManifest represents the raw TOML structure
type tomlManifest struct {
	Package tomlPackage `toml:"package"`
	Assets  []tomlAsset `toml:"assets"`
	Scripts tomlScripts `toml:"scripts"`
}

type tomlPackage struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Release     string `toml:"release"`
	Epoch       uint32 `toml:"epoch"`
	Summary     string `toml:"summary"`
	Description string `toml:"description"`
	License     string `toml:"license"`
	Arch        string `toml:"arch"`
	URL         string `toml:"url"`
	Vendor      string `toml:"vendor"`
	Group       string `toml:"group"`

	Requires   []string `toml:"requires"`
	Provides   []string `toml:"provides"`
	Conflicts  []string `toml:"conflicts"`
	Obsoletes  []string `toml:"obsoletes"`
	Recommends []string `toml:"recommends"`
	Suggests   []string `toml:"suggests"`

	AutoReq         string `toml:"auto-req"`
	PayloadCompress string `toml:"payload-compress"`
}

type tomlAsset struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
	User   string `toml:"user"`
	Group  string `toml:"group"`
	Mode   string `toml:"mode"`
	// Config is either a boolean or the string "noreplace"
	Config any  `toml:"config"`
	Doc    bool `toml:"doc"`
}

type tomlScripts struct {
	PreInstall    string `toml:"pre-install"`
	PostInstall   string `toml:"post-install"`
	PreUninstall  string `toml:"pre-uninstall"`
	PostUninstall string `toml:"post-uninstall"`
}

// ManifestParser parses TOML manifest files
type ManifestParser struct{}

// NewManifestParser creates a new TOML parser
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// ParseFile parses a TOML manifest file into a Manifest entity
func (p *ManifestParser) ParseFile(filePath string) (*entities.Manifest, error) {
	//nolint:gosec // G304: filePath is the manifest path given on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return p.Parse(data)
}

// Parse parses TOML manifest content. Unknown keys are rejected so schema
// mistakes surface at load time instead of silently dropping fields.
func (p *ManifestParser) Parse(data []byte) (*entities.Manifest, error) {
	var raw tomlManifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
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
		config, noReplace, err := configFlags(a.Config)
		if err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
		asset.Config = config
		asset.ConfigNoReplace = noReplace
		manifest.Assets = append(manifest.Assets, asset)
	}

	return manifest, nil
}

// configFlags maps the config field, which is either a boolean or the
// string "noreplace", onto the two entity flags.
func configFlags(value any) (config, noReplace bool, err error) {
	switch v := value.(type) {
	case nil:
		return false, false, nil
	case bool:
		return v, false, nil
	case string:
		if v == "noreplace" {
			return false, true, nil
		}
		return false, false, fmt.Errorf("config must be a bool or %q, got %q", "noreplace", v)
	default:
		return false, false, fmt.Errorf("config must be a bool or %q", "noreplace")
	}
}
