// Package auth holds the credential digest and the process-local cache of
// verified digests used by the auth gate.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// MinSecretLength is the shortest admin secret the gate will consider.
const MinSecretLength = 8

// DigestSecret computes the one-way, deterministic digest of a candidate
// secret. Determinism matters: the digest doubles as the cache key, so the
// same secret must always digest to the same value within and across
// processes.
func DigestSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
