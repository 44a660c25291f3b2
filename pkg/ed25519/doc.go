// Package ed25519 implements the Ed25519 digital-signature scheme of
// RFC 8032 as a self-contained primitive: key generation, deterministic
// signing and signature verification, with the Curve25519 field, scalar
// and group arithmetic implemented in this module rather than delegated
// to a system crypto library.
//
// Keys and signatures use the standard wire formats, so output is
// bit-compatible with other RFC 8032 implementations: 32-byte seeds,
// 32-byte compressed public keys and 64-byte R||S signatures.
//
// Basic Usage:
//
//	keypair, err := ed25519.Generate()
//	// Or deterministically: keypair, err := ed25519.FromSeed(seed)
//	sig := keypair.Sign(message)
//	ok, err := ed25519.Verify(keypair.PublicKey(), message, sig)
//
// Customizing the validation policy (defaults are sensible; override as needed):
//
//	verifier := ed25519.NewVerifier().WithStrictValidation(true)
//	ok, err := verifier.Verify(publicKey, message, sig)
//
// Verification applies the cofactor-multiplied group equation
// 8*S*B == 8*(R + k*A), which neutralizes small-order components of the
// public key and the commitment. Strict validation additionally rejects
// small-order points at decode time; both camps exist among deployed
// implementations, so the choice is exposed as a policy rather than
// hard-coded.
//
// Signing is deterministic: the nonce is derived from the secret prefix
// and the message, so signing the same message with the same key always
// yields the same signature and no randomness source is consulted after
// key generation.
//
// Secret material (the seed, the clamped scalar and the nonce prefix)
// lives only inside the Keypair. Call Zeroize when a key goes out of use;
// it is a hardening measure, not a protocol requirement.
package ed25519
