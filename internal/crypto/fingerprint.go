package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short hex fingerprint of a secret such as a bearer
// token, safe to print in logs and diagnostics.
//
// It hashes with SHA-256 and truncates to 6 bytes (12 hex chars). An empty
// secret yields an empty fingerprint.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:6])
}
