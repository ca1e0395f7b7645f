package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString creates a short SHA-256 fingerprint of the input so contact
// details can be correlated in logs without being written to them
func HashString(input string) string {
	if input == "" {
		return "-"
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])[:12]
}
