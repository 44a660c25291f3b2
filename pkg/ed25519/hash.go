package ed25519

import "crypto/sha512"

// hash512 returns the SHA-512 digest of the concatenation of parts, in
// order. The concatenation orders used by key expansion, nonce derivation
// and challenge derivation are fixed by RFC 8032; every call site in this
// package spells its inputs out explicitly so the order is visible and
// testable.
func hash512(parts ...[]byte) [64]byte {
	h := sha512.New()
	for _, part := range parts {
		h.Write(part)
	}
	var digest [64]byte
	h.Sum(digest[:0])
	return digest
}
