package ed25519

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"
)

func testKeypair(t *testing.T) *Keypair {
	t.Helper()
	kp, err := FromSeed(bytes.Repeat([]byte{0x5a}, SeedSize))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	return kp
}

func TestSignDeterministic(t *testing.T) {
	kp := testKeypair(t)
	message := []byte("determinism check")

	sig1 := kp.Sign(message)
	sig2 := kp.Sign(message)
	if !bytes.Equal(sig1.Bytes(), sig2.Bytes()) {
		t.Error("signing the same message twice should yield identical signatures")
	}

	other := kp.Sign([]byte("a different message"))
	if bytes.Equal(sig1.Bytes(), other.Bytes()) {
		t.Error("different messages should yield different signatures")
	}
}

func TestVerifyBitFlips(t *testing.T) {
	kp := testKeypair(t)
	message := []byte("the quick brown fox jumps over the lazy dog")
	sig := kp.Sign(message)

	if ok, _ := Verify(kp.PublicKey(), message, sig); !ok {
		t.Fatal("untampered signature should verify")
	}

	// Flip single bits at representative positions of the message.
	for _, pos := range []int{0, 7, len(message) / 2, len(message) - 1} {
		tampered := append([]byte(nil), message...)
		tampered[pos] ^= 0x40
		if ok, _ := Verify(kp.PublicKey(), tampered, sig); ok {
			t.Errorf("flipped message bit at byte %d should fail verification", pos)
		}
	}

	// Flip single bits across the signature, covering both R and S.
	for _, pos := range []int{0, 15, 31, 32, 47, 63} {
		raw := sig.Bytes()
		raw[pos] ^= 0x04
		tamperedSig, err := SignatureFromBytes(raw)
		if err != nil {
			t.Fatalf("SignatureFromBytes: %v", err)
		}
		if ok, _ := Verify(kp.PublicKey(), message, tamperedSig); ok {
			t.Errorf("flipped signature bit at byte %d should fail verification", pos)
		}
	}

	// Flip single bits across the public key.
	for _, pos := range []int{0, 16, 31} {
		pub := kp.PublicKey()
		pub[pos] ^= 0x10
		if ok, err := Verify(pub, message, sig); err == nil && ok {
			t.Errorf("flipped public key bit at byte %d should fail verification", pos)
		}
	}
}

func TestVerifyRejectsNonCanonicalS(t *testing.T) {
	kp := testKeypair(t)
	message := []byte("canonicity")
	sig := kp.Sign(message)

	// S + L encodes the same residue but is non-canonical and must be
	// rejected before the group equation is ever evaluated.
	order, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	s := new(big.Int).SetBytes(reverse(sig.S[:]))
	s.Add(s, order)
	raw := s.Bytes()
	if len(raw) > 32 {
		t.Fatal("test scalar overflowed 32 bytes; pick another seed")
	}

	var bumped Signature
	bumped.R = sig.R
	for i := 0; i < len(raw); i++ {
		bumped.S[i] = raw[len(raw)-1-i]
	}
	if bumped.IsCanonical() {
		t.Fatal("S + L should not be canonical")
	}
	if ok, err := Verify(kp.PublicKey(), message, &bumped); err != nil || ok {
		t.Errorf("non-canonical S should fail verification, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyMalformedInputs(t *testing.T) {
	kp := testKeypair(t)
	sig := kp.Sign([]byte("x"))

	if _, err := Verify(kp.PublicKey()[:31], []byte("x"), sig); err != ErrInvalidPublicKeyLength {
		t.Errorf("short public key: got %v, want ErrInvalidPublicKeyLength", err)
	}
	if _, err := Verify(kp.PublicKey(), []byte("x"), nil); err != ErrInvalidSignatureLength {
		t.Errorf("nil signature: got %v, want ErrInvalidSignatureLength", err)
	}
	if _, err := VerifyBytes(kp.PublicKey(), []byte("x"), make([]byte, 63)); err != ErrInvalidSignatureLength {
		t.Errorf("short signature encoding: got %v, want ErrInvalidSignatureLength", err)
	}
}

func TestVerifyUndecodablePoints(t *testing.T) {
	kp := testKeypair(t)
	message := []byte("decode")
	sig := kp.Sign(message)

	// A y coordinate above the field prime decodes to nothing; this is a
	// negative outcome, not an error.
	badKey, _ := hex.DecodeString("f0ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	if ok, err := Verify(badKey, message, sig); err != nil || ok {
		t.Errorf("undecodable public key: got ok=%v err=%v, want false, nil", ok, err)
	}

	var badR Signature
	badR.S = sig.S
	copy(badR.R[:], badKey)
	if ok, err := Verify(kp.PublicKey(), message, &badR); err != nil || ok {
		t.Errorf("undecodable R: got ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestStrictValidationRejectsSmallOrderKeys(t *testing.T) {
	kp := testKeypair(t)
	message := []byte("policy")
	sig := kp.Sign(message)

	// y = 1 is the identity: a small-order public key. It decodes fine, so
	// the permissive verifier evaluates the equation (and fails it for
	// this signature); the strict verifier rejects it outright.
	identityKey, _ := hex.DecodeString("0100000000000000000000000000000000000000000000000000000000000000")

	strict := NewVerifier().WithStrictValidation(true)
	if ok, err := strict.Verify(identityKey, message, sig); err != nil || ok {
		t.Errorf("strict verify of small-order key: got ok=%v err=%v, want false, nil", ok, err)
	}

	// A small-order R is likewise rejected under the strict policy.
	var smallR Signature
	smallR.S = sig.S
	copy(smallR.R[:], identityKey)
	if ok, err := strict.Verify(kp.PublicKey(), message, &smallR); err != nil || ok {
		t.Errorf("strict verify of small-order R: got ok=%v err=%v, want false, nil", ok, err)
	}

	// The strict policy must not reject honest signatures.
	if ok, err := strict.Verify(kp.PublicKey(), message, sig); err != nil || !ok {
		t.Errorf("strict verify of honest signature: got ok=%v err=%v, want true, nil", ok, err)
	}
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
