package gateways

import (
	"debug/elf"

	"rpmforge/internal/domain/entities"
)

// ELFInspector classifies candidate files as dynamically linked ELF binaries
// using debug/elf - no external tools required. Only the file header and
// section-header type tags are read; symbols and relocations are never
// touched.
type ELFInspector struct{}

// NewELFInspector creates a new ELF inspector
func NewELFInspector() *ELFInspector {
	return &ELFInspector{}
}

// Inspect parses the file at path as an ELF object. The second return value
// is false when the file is not a recognizable ELF binary (or cannot be
// read); that is the normal discriminator between the binary and shebang
// analysis paths, not an error.
func (g *ELFInspector) Inspect(path string) (*entities.BinaryInfo, bool) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, false
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	info := &entities.BinaryInfo{
		Class:   32,
		Machine: uint16(f.Machine),
	}
	if f.Class == elf.ELFCLASS64 {
		info.Class = 64
	}

	for _, section := range f.Sections {
		switch section.Type {
		case elf.SHT_HASH:
			info.HasHash = true
		case elf.SHT_GNU_HASH:
			info.HasGNUHash = true
		}
	}

	return info, true
}
