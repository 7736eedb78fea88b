package services

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumService generates and verifies checksum sidecar files for built
// packages. Sidecars use the coreutils "<hex>  <basename>" format so
// sha256sum -c accepts them.
type ChecksumService struct{}

// NewChecksumService creates a new checksum service
func NewChecksumService() *ChecksumService {
	return &ChecksumService{}
}

// GenerateSHA256 writes <filePath>.sha256 and returns its path
func (s *ChecksumService) GenerateSHA256(filePath string) (string, error) {
	return s.generate(filePath, ".sha256", sha256.New())
}

// GenerateSHA512 writes <filePath>.sha512 and returns its path
func (s *ChecksumService) GenerateSHA512(filePath string) (string, error) {
	return s.generate(filePath, ".sha512", sha512.New())
}

func (s *ChecksumService) generate(filePath, suffix string, h hash.Hash) (string, error) {
	sum, err := s.compute(filePath, h)
	if err != nil {
		return "", err
	}

	sidecarPath := filePath + suffix
	content := fmt.Sprintf("%s  %s\n", sum, filepath.Base(filePath))
	if err := os.WriteFile(sidecarPath, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", suffix, err)
	}
	return sidecarPath, nil
}

// Verify checks filePath against an existing .sha256 or .sha512 sidecar,
// whichever sidecarPath names.
func (s *ChecksumService) Verify(filePath, sidecarPath string) error {
	//nolint:gosec // G304: sidecar path derives from a user-provided artifact path
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	expected, _, _ := strings.Cut(strings.TrimSpace(string(data)), " ")
	if expected == "" {
		return fmt.Errorf("checksum file %s is empty", sidecarPath)
	}

	var h hash.Hash
	switch filepath.Ext(sidecarPath) {
	case ".sha256":
		h = sha256.New()
	case ".sha512":
		h = sha512.New()
	default:
		return fmt.Errorf("unsupported checksum file %s", sidecarPath)
	}

	actual, err := s.compute(filePath, h)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

func (s *ChecksumService) compute(filePath string, h hash.Hash) (string, error) {
	//nolint:gosec // G304: file path is the artifact being checksummed
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
