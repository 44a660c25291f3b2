package ed25519

import "github.com/mahdiidarabi/ed25519-core/internal/edwards25519"

// Signature is an Ed25519 signature: the compressed commitment point R and
// the response scalar S, little-endian. It carries no secret state and is
// a plain transport value once produced.
type Signature struct {
	R [32]byte
	S [32]byte
}

// SignatureFromBytes parses a 64-byte R || S signature encoding.
//
// Args:
//   - data: 64 bytes.
//
// Returns:
//   - The Signature, or ErrInvalidSignatureLength.
func SignatureFromBytes(data []byte) (*Signature, error) {
	if len(data) != SignatureSize {
		return nil, ErrInvalidSignatureLength
	}
	sig := &Signature{}
	copy(sig.R[:], data[:32])
	copy(sig.S[:], data[32:])
	return sig, nil
}

// Bytes returns the 64-byte R || S encoding of the signature.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, 0, SignatureSize)
	out = append(out, sig.R[:]...)
	out = append(out, sig.S[:]...)
	return out
}

// IsCanonical reports whether S encodes a value below the group order L.
// Signatures produced by Sign always are; verification rejects the rest.
func (sig *Signature) IsCanonical() bool {
	return edwards25519.IsCanonicalScalar(sig.S[:])
}
