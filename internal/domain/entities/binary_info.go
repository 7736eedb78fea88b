package entities

// Machine codes for DEC Alpha. 0x9026 is the historical binutils value that
// predates the official assignment and still appears in old toolchains.
const (
	machineAlpha       = 41
	machineAlphaLegacy = 0x9026
)

// BinaryInfo describes the parts of a dynamically linked binary that matter
// for dependency naming: word size, machine code, and which symbol-hash
// sections are present. It lives only for the duration of one file's
// analysis.
type BinaryInfo struct {
	Class      int // 32 or 64
	Machine    uint16
	HasHash    bool // legacy SysV hash section
	HasGNUHash bool // GNU-style hash section
}

// Marker returns the architecture suffix appended to requirement tokens:
// "(64bit)" for 64-bit binaries and "" otherwise. Alpha never adopted the
// 64-bit naming convention, so both its machine codes map to "".
func (b *BinaryInfo) Marker() string {
	if b.Class != 64 {
		return ""
	}
	if b.Machine == machineAlpha || b.Machine == machineAlphaLegacy {
		return ""
	}
	return "(64bit)"
}
