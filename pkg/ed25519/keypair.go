package ed25519

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"github.com/mahdiidarabi/ed25519-core/internal/edwards25519"
)

const (
	// SeedSize is the size, in bytes, of a private seed.
	SeedSize = 32
	// PublicKeySize is the size, in bytes, of a compressed public key.
	PublicKeySize = 32
	// SignatureSize is the size, in bytes, of a signature (R || S).
	SignatureSize = 64
	// KeypairSize is the size, in bytes, of a serialized keypair
	// (seed || public key).
	KeypairSize = SeedSize + PublicKeySize
)

// Keypair holds an Ed25519 key: the 32-byte seed, the clamped signing
// scalar and nonce prefix expanded from it, and the compressed public key.
// The secret halves never leave the Keypair; only the seed is exposed, at
// explicit request, for serialization.
//
// A Keypair is immutable after construction (Zeroize excepted) and safe
// for concurrent use.
type Keypair struct {
	seed   [SeedSize]byte
	scalar edwards25519.Scalar
	prefix [32]byte
	public [PublicKeySize]byte
}

// Generate creates a new Keypair from 32 bytes of crypto/rand randomness.
//
// Returns:
//   - The new Keypair, or an error if the randomness source fails.
func Generate() (*Keypair, error) {
	var seed [SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to read random seed: %w", err)
	}
	kp, err := FromSeed(seed[:])
	wipe(seed[:])
	return kp, err
}

// FromSeed derives a Keypair from a 32-byte seed, per RFC 8032: the seed
// is expanded with SHA-512, the low half is clamped into the signing
// scalar, the high half becomes the nonce prefix, and the public key is
// the compressed encoding of scalar*B.
//
// Args:
//   - seed: 32 bytes of secret key material.
//
// Returns:
//   - The derived Keypair, or ErrInvalidSeedLength.
func FromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, ErrInvalidSeedLength
	}

	kp := &Keypair{}
	copy(kp.seed[:], seed)

	h := hash512(seed)
	var low [32]byte
	copy(low[:], h[:32])
	kp.scalar.SetClampedBytes(&low)
	copy(kp.prefix[:], h[32:])
	wipe(h[:])
	wipe(low[:])

	var a edwards25519.Point
	a.ScalarBaseMult(&kp.scalar)
	kp.public = a.Bytes()
	return kp, nil
}

// PublicKey returns a copy of the 32-byte compressed public key.
func (kp *Keypair) PublicKey() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, kp.public[:])
	return out
}

// Seed returns a copy of the 32-byte seed. The seed is the full secret:
// treat the returned slice accordingly.
func (kp *Keypair) Seed() []byte {
	out := make([]byte, SeedSize)
	copy(out, kp.seed[:])
	return out
}

// Bytes serializes the keypair as seed || public key (64 bytes).
func (kp *Keypair) Bytes() []byte {
	out := make([]byte, 0, KeypairSize)
	out = append(out, kp.seed[:]...)
	out = append(out, kp.public[:]...)
	return out
}

// KeypairFromBytes deserializes a keypair produced by Bytes. The public
// half is re-derived from the seed and must match the stored one, so a
// corrupted or mismatched encoding is rejected rather than silently
// repaired.
//
// Args:
//   - data: 64 bytes, seed || public key.
//
// Returns:
//   - The Keypair, or ErrInvalidKeypairLength / ErrPublicKeyMismatch.
func KeypairFromBytes(data []byte) (*Keypair, error) {
	if len(data) != KeypairSize {
		return nil, ErrInvalidKeypairLength
	}
	kp, err := FromSeed(data[:SeedSize])
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(kp.public[:], data[SeedSize:]) != 1 {
		kp.Zeroize()
		return nil, ErrPublicKeyMismatch
	}
	return kp, nil
}

// PublicKeyFromSeed derives only the 32-byte public key for a seed,
// without retaining any secret state.
func PublicKeyFromSeed(seed []byte) ([]byte, error) {
	kp, err := FromSeed(seed)
	if err != nil {
		return nil, err
	}
	pub := kp.PublicKey()
	kp.Zeroize()
	return pub, nil
}

// Zeroize overwrites the secret material in the keypair. The Keypair must
// not be used afterwards.
func (kp *Keypair) Zeroize() {
	wipe(kp.seed[:])
	wipe(kp.prefix[:])
	kp.scalar = edwards25519.Scalar{}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
