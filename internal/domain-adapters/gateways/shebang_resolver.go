package gateways

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ShebangResolver detects interpreter scripts and resolves their
// interpreters. Any I/O problem is treated as "no interpreter": a file this
// engine cannot read simply contributes no dependency.
type ShebangResolver struct{}

// NewShebangResolver creates a new shebang resolver
func NewShebangResolver() *ShebangResolver {
	return &ShebangResolver{}
}

// Interpreter returns the interpreter path named on the first line of the
// script at path. It reports false when the file does not start with "#!",
// when the interpreter path does not exist on disk, or on any read error.
func (r *ShebangResolver) Interpreter(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	reader := bufio.NewReader(f)

	marker := make([]byte, 2)
	if _, err := io.ReadFull(reader, marker); err != nil {
		return "", false
	}
	if marker[0] != '#' || marker[1] != '!' {
		return "", false
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}

	candidate := leadingASCIIWord(strings.TrimSpace(line))
	if candidate == "" {
		return "", false
	}
	if _, err := os.Stat(candidate); err != nil {
		return "", false
	}
	return candidate, true
}

// leadingASCIIWord returns the run of printable ASCII, non-whitespace
// characters at the start of s.
func leadingASCIIWord(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || c == ' ' || c == '\t' {
			return s[:i]
		}
	}
	return s
}
