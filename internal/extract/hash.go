package extract

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the SHA-256 hex digest of raw document bytes. It is
// the idempotency key the cache uses to skip re-extraction: byte-identical
// uploads hash the same regardless of filename, client, or upload time.
func ContentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
