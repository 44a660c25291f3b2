package ed25519

import "github.com/mahdiidarabi/ed25519-core/internal/edwards25519"

// Sign produces the Ed25519 signature of message under kp, per RFC 8032:
//
//	r = SHA-512(prefix || message) mod L
//	R = r*B (compressed)
//	k = SHA-512(R || public || message) mod L
//	S = k*scalar + r mod L
//
// The nonce r is a deterministic function of the key and the message, so
// the same (key, message) pair always yields the same signature. The two
// operations that touch secrets, r*B and k*scalar + r, run in time
// independent of their secret inputs. The keypair is not mutated.
func (kp *Keypair) Sign(message []byte) *Signature {
	var r edwards25519.Scalar
	nonceDigest := hash512(kp.prefix[:], message)
	r.SetWideBytes(&nonceDigest)

	var commitment edwards25519.Point
	commitment.ScalarBaseMult(&r)
	rEnc := commitment.Bytes()

	var k edwards25519.Scalar
	challengeDigest := hash512(rEnc[:], kp.public[:], message)
	k.SetWideBytes(&challengeDigest)

	var s edwards25519.Scalar
	s.MulAdd(&k, &kp.scalar, &r)

	sig := &Signature{R: rEnc, S: s.Bytes()}
	wipe(nonceDigest[:])
	r = edwards25519.Scalar{}
	return sig
}
