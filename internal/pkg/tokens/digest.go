package tokens

import (
	"crypto/sha256"
	"encoding/base64"
)

// Digest returns the unpadded URL-safe base64 of the SHA-256 hash of s.
// Stored descriptors hold digests only, never the secret itself.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
