package findings

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint hashes the matched line with surrounding whitespace removed, so a
// finding keeps its fingerprint when the line moves or is re-indented.
func Fingerprint(line string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(line)))
	return hex.EncodeToString(sum[:])
}
