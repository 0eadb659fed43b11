// Package analysiscache decides whether a stored skill gap analysis is
// reusable for a resume or a fresh computation must run. The content hash of
// the resume text is the sole invalidation key: a resume edit changes the hash
// and forces recomputation, with no TTL involved.
package analysiscache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the deterministic content hash of resume text.
func Hash(resumeText string) string {
	sum := sha256.Sum256([]byte(resumeText))
	return hex.EncodeToString(sum[:])
}

// FingerprintKey builds the single-flight key for one analysis fingerprint.
func FingerprintKey(resumeID, targetRole, contentHash string) string {
	return resumeID + "|" + targetRole + "|" + contentHash
}
