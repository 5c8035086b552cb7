package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashRules returns the hex-encoded SHA-256 of the rule text, one rule per
// line. The hash ties an audit record to the exact rule revision that
// produced its verdict.
func HashRules(rules []string) string {
	sum := sha256.Sum256([]byte(strings.Join(rules, "\n")))
	return hex.EncodeToString(sum[:])
}
