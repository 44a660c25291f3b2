package ed25519

import "github.com/mahdiidarabi/ed25519-core/internal/edwards25519"

// Verifier checks signatures under a configurable validation policy.
// The zero policy (permissive) relies on the cofactor-multiplied group
// equation to neutralize small-order components; strict validation
// additionally rejects small-order public keys and commitments outright.
type Verifier struct {
	strict bool
}

// NewVerifier creates a verifier with the default (permissive) policy.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// WithStrictValidation toggles rejection of small-order points at decode
// time and returns the verifier for chaining.
func (v *Verifier) WithStrictValidation(strict bool) *Verifier {
	v.strict = strict
	return v
}

// Verify reports whether sig is a valid signature of message under
// publicKey.
//
// A malformed fixed-size input (public key of the wrong length, nil
// signature) is a caller error and returns ErrInvalidPublicKeyLength or
// ErrInvalidSignatureLength. Everything else — undecodable points,
// non-canonical S, a failed group equation — is an expected negative
// outcome and returns (false, nil).
//
// The check is the cofactor-multiplied equation 8*S*B == 8*(R + k*A),
// evaluated as 8*(S*B - k*A - R) == identity with a variable-time
// double-scalar multiplication; no secret is involved in verification.
func (v *Verifier) Verify(publicKey, message []byte, sig *Signature) (bool, error) {
	if len(publicKey) != PublicKeySize {
		return false, ErrInvalidPublicKeyLength
	}
	if sig == nil {
		return false, ErrInvalidSignatureLength
	}

	if !sig.IsCanonical() {
		return false, nil
	}

	var a edwards25519.Point
	if _, err := a.SetBytes(publicKey); err != nil {
		return false, nil
	}
	var r edwards25519.Point
	if _, err := r.SetBytes(sig.R[:]); err != nil {
		return false, nil
	}

	if v.strict && (a.HasSmallOrder() == 1 || r.HasSmallOrder() == 1) {
		return false, nil
	}

	var k edwards25519.Scalar
	challengeDigest := hash512(sig.R[:], publicKey, message)
	k.SetWideBytes(&challengeDigest)

	var s edwards25519.Scalar
	if _, err := s.SetCanonicalBytes(sig.S[:]); err != nil {
		return false, nil
	}

	// S*B - k*A - R, then clear the cofactor.
	var negA, negR, check edwards25519.Point
	negA.Negate(&a)
	negR.Negate(&r)
	check.VarTimeDoubleScalarMult(&k, &negA, &s, edwards25519.Generator())
	check.Add(&check, &negR)
	check.MultByCofactor(&check)

	return check.IsIdentity() == 1, nil
}

// Verify checks sig against message and publicKey under the default
// permissive policy. See Verifier.Verify.
func Verify(publicKey, message []byte, sig *Signature) (bool, error) {
	return NewVerifier().Verify(publicKey, message, sig)
}

// VerifyBytes is Verify over a raw 64-byte signature encoding. A
// wrong-length encoding returns ErrInvalidSignatureLength.
func VerifyBytes(publicKey, message, sig []byte) (bool, error) {
	parsed, err := SignatureFromBytes(sig)
	if err != nil {
		return false, err
	}
	return Verify(publicKey, message, parsed)
}
