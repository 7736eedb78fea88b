package yaml

import (
	"context"
	"fmt"
	"os"

	"rpmforge/internal/domain/entities"
)

// ManifestRepository implements repositories.ManifestRepository for YAML
// manifest files.
type ManifestRepository struct {
	parser *ManifestParser
}

// NewManifestRepository creates a new YAML-based manifest repository
func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{parser: NewManifestParser()}
}

// Load reads and validates the manifest at path
func (r *ManifestRepository) Load(_ context.Context, path string) (*entities.Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("manifest not found: %s", path)
	}

	manifest, err := r.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}
