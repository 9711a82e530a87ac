// Package jobid generates short identifiers for training jobs.
//
// An identifier is the first 8 hex characters of a SHA-256 digest over
// 32 bytes of cryptographically random input. Identifiers distinguish
// repeated launches of the same job name; they are not globally unique.
package jobid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Length is the number of hex characters in a job identifier.
const Length = 8

// New returns a fresh 8-character lowercase hex job identifier.
func New() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])[:Length], nil
}
