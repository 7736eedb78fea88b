package entities

// PackageArtifact describes a built RPM on disk.
type PackageArtifact struct {
	Name    string
	Version string
	Release string
	Arch    string
	Path    string

	// Requires is the final relation list written into the package,
	// declared and discovered entries combined.
	Requires []string

	// Sidecar checksum files, when generated.
	SHA256Path string
	SHA512Path string
}
