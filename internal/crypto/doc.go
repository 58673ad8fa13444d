// Package crypto holds the small helpers used around credentials.
//
//   - Short fingerprints of tokens for logs (Fingerprint)
//   - Best-effort memory wiping for passwords read from the terminal (Wipe)
//
// Secrets themselves are never logged; callers log Fingerprint(secret).
package crypto
