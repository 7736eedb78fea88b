package entities

import "fmt"

// Manifest is the parsed package description driving one RPM build.
type Manifest struct {
	Package PackageMeta
	Assets  []Asset
	Scripts Scriptlets
}

// PackageMeta carries the RPM header metadata and declared relations.
// Relation entries are free-form RPM relation strings ("bash",
// "openssl >= 3.0").
type PackageMeta struct {
	Name        string
	Version     string
	Release     string
	Epoch       uint32
	Summary     string
	Description string
	License     string
	Arch        string
	URL         string
	Vendor      string
	Group       string

	Requires   []string
	Provides   []string
	Conflicts  []string
	Obsoletes  []string
	Recommends []string
	Suggests   []string

	// AutoReq is the discovery mode string: "auto" (default), "disabled",
	// "builtin", "find-requires", or a path to an external program.
	AutoReq string

	// PayloadCompress selects the payload compressor: gzip (default),
	// lzma, xz, or zstd.
	PayloadCompress string
}

// Asset maps a built file into the package. Source may be a glob; a Dest
// ending in "/" is treated as a directory for every matched file.
type Asset struct {
	Source          string
	Dest            string
	User            string
	Group           string
	Mode            string // octal string, e.g. "755"
	Config          bool
	ConfigNoReplace bool
	Doc             bool
}

// Scriptlets are shell fragments embedded into the package and run by rpm
// around install and uninstall.
type Scriptlets struct {
	PreInstall    string
	PostInstall   string
	PreUninstall  string
	PostUninstall string
}

// Validate checks the fields every build needs before any work starts.
func (m *Manifest) Validate() error {
	if m.Package.Name == "" {
		return fmt.Errorf("manifest: missing field: package.name")
	}
	if m.Package.Version == "" {
		return fmt.Errorf("manifest: missing field: package.version")
	}
	if m.Package.License == "" {
		return fmt.Errorf("manifest: missing field: package.license")
	}
	for i, a := range m.Assets {
		if a.Source == "" {
			return fmt.Errorf("manifest: asset %d: missing source", i)
		}
		if a.Dest == "" {
			return fmt.Errorf("manifest: asset %d: missing dest", i)
		}
		if a.Config && a.ConfigNoReplace {
			return fmt.Errorf("manifest: asset %d: config and config=\"noreplace\" are mutually exclusive", i)
		}
	}
	return nil
}

// ReleaseOrDefault returns the release tag, defaulting to "1".
func (m *PackageMeta) ReleaseOrDefault() string {
	if m.Release == "" {
		return "1"
	}
	return m.Release
}
