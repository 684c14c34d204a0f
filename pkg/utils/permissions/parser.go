// Package permissions provides utilities for parsing and handling file permissions
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default permission constants
const (
	DefaultTokenPerms     = 0o644 // Tokens are meant to be published
	DefaultPlaintextPerms = 0o600 // Read/write for owner only
)

// ParseOctalString parses an octal permission string into a file mode.
// Handles formats like "644", "0644", "0o644". An empty string yields def.
func ParseOctalString(s string, def os.FileMode) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	val, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return def, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val > 0o777 {
		return def, fmt.Errorf("invalid permission string %q: only permission bits are allowed", s)
	}

	return os.FileMode(val), nil
}

// FormatOctal formats a permission value as an octal string
func FormatOctal(perm os.FileMode) string {
	return fmt.Sprintf("0%o", perm.Perm())
}

// IsWorldReadable reports whether others may read a file with perm
func IsWorldReadable(perm os.FileMode) bool {
	return perm&0o004 != 0
}
