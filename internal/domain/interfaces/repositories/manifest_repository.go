// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"rpmforge/internal/domain/entities"
)

// ManifestRepository defines the interface for loading package manifests
type ManifestRepository interface {
	// Load reads and validates the manifest at path
	Load(ctx context.Context, path string) (*entities.Manifest, error)
}
