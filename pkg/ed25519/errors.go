package ed25519

import "errors"

// Errors returned for malformed fixed-size inputs and undecodable
// encodings. A signature that decodes fine but fails the group equation is
// not an error: Verify reports that as a plain false.
var (
	// ErrInvalidSeedLength is returned when a seed is not SeedSize bytes.
	ErrInvalidSeedLength = errors.New("ed25519: seed must be 32 bytes")

	// ErrInvalidPublicKeyLength is returned when a public key is not
	// PublicKeySize bytes.
	ErrInvalidPublicKeyLength = errors.New("ed25519: public key must be 32 bytes")

	// ErrInvalidSignatureLength is returned when a signature encoding is
	// not SignatureSize bytes.
	ErrInvalidSignatureLength = errors.New("ed25519: signature must be 64 bytes")

	// ErrInvalidKeypairLength is returned when a keypair encoding is not
	// KeypairSize bytes.
	ErrInvalidKeypairLength = errors.New("ed25519: keypair must be 64 bytes")

	// ErrPublicKeyMismatch is returned by KeypairFromBytes when the stored
	// public key does not match the one derived from the seed.
	ErrPublicKeyMismatch = errors.New("ed25519: public key does not match seed")
)
