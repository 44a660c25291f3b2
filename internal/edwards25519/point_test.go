package edwards25519

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	ref "filippo.io/edwards25519"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// Values computed with an independent implementation.
const (
	generatorHex = "5866666666666666666666666666666666666666666666666666666666666666"
	twoBHex      = "c9a3f86aae465f0e56513864510f3997561fa2c9e85ea21dc2292309f3cd6022"
	threeBHex    = "d4b4f5784868c3020403246717ec169ff79e26608ea126a1ab69ee77d1b16712"
	kHex         = "02fab5335ef321ba1831b4ed995c55fdeecdab9078563412efcdab9078563402"
	kBHex        = "b4a4cb8ece614b0f959c3e4ab35e4e6f9a387b8468f0b4b5bfad43955a3cf041"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("Failed to decode hex %q: %v", s, err)
	}
	return raw
}

func pointFromHex(t *testing.T, s string) *Point {
	t.Helper()
	p := &Point{}
	if _, err := p.SetBytes(mustDecodeHex(t, s)); err != nil {
		t.Fatalf("Failed to decompress %q: %v", s, err)
	}
	return p
}

func randomScalar(t *testing.T) *Scalar {
	t.Helper()
	var wide [64]byte
	if _, err := rand.Read(wide[:]); err != nil {
		t.Fatalf("Failed to draw random scalar: %v", err)
	}
	var s Scalar
	return s.SetWideBytes(&wide)
}

func TestGeneratorRoundTrip(t *testing.T) {
	b := pointFromHex(t, generatorHex)
	if b.Equal(Generator()) != 1 {
		t.Error("decompressed generator should equal the constant")
	}
	enc := b.Bytes()
	if !bytes.Equal(enc[:], mustDecodeHex(t, generatorHex)) {
		t.Error("generator should compress back to the standard encoding")
	}
	if b.IsOnCurve() != 1 {
		t.Error("generator should satisfy the curve equation")
	}
}

func TestGroupLaw(t *testing.T) {
	b := Generator()

	var twoB, sum, threeB Point
	twoB.Double(b)
	if got := twoB.Bytes(); !bytes.Equal(got[:], mustDecodeHex(t, twoBHex)) {
		t.Errorf("2B = %x, want %s", got, twoBHex)
	}

	sum.Add(b, b)
	if sum.Equal(&twoB) != 1 {
		t.Error("B + B should equal double(B)")
	}

	threeB.Add(b, &twoB)
	if got := threeB.Bytes(); !bytes.Equal(got[:], mustDecodeHex(t, threeBHex)) {
		t.Errorf("3B = %x, want %s", got, threeBHex)
	}

	var viaIdentity Point
	viaIdentity.Add(b, Identity())
	if viaIdentity.Equal(b) != 1 {
		t.Error("P + identity should equal P")
	}

	var doubledIdentity Point
	doubledIdentity.Double(Identity())
	if doubledIdentity.IsIdentity() != 1 {
		t.Error("double(identity) should be the identity")
	}

	var negB, shouldBeIdentity Point
	negB.Negate(b)
	shouldBeIdentity.Add(b, &negB)
	if shouldBeIdentity.IsIdentity() != 1 {
		t.Error("P + (-P) should be the identity")
	}
}

func TestScalarMult(t *testing.T) {
	var zero, one Scalar
	oneBytes := [32]byte{1}
	if _, err := one.SetCanonicalBytes(oneBytes[:]); err != nil {
		t.Fatalf("Failed to build scalar one: %v", err)
	}

	var out Point
	out.ScalarMult(&zero, Generator())
	if out.IsIdentity() != 1 {
		t.Error("0 * B should be the identity")
	}

	out.ScalarMult(&one, Generator())
	if out.Equal(Generator()) != 1 {
		t.Error("1 * B should be B")
	}

	var k Scalar
	if _, err := k.SetCanonicalBytes(mustDecodeHex(t, kHex)); err != nil {
		t.Fatalf("Failed to parse scalar: %v", err)
	}
	out.ScalarBaseMult(&k)
	if got := out.Bytes(); !bytes.Equal(got[:], mustDecodeHex(t, kBHex)) {
		t.Errorf("k*B = %x, want %s", got, kBHex)
	}
}

func TestScalarMultMatchesVarTime(t *testing.T) {
	for i := 0; i < 10; i++ {
		a := randomScalar(t)
		b := randomScalar(t)

		// a*A + b*B computed the fast way and as two ladders.
		base := pointFromHex(t, twoBHex)
		var combined Point
		combined.VarTimeDoubleScalarMult(a, base, b, Generator())

		var left, right, sum Point
		left.ScalarMult(a, base)
		right.ScalarBaseMult(b)
		sum.Add(&left, &right)

		if combined.Equal(&sum) != 1 {
			t.Fatalf("VarTimeDoubleScalarMult disagrees with separate ladders on try %d", i)
		}
	}
}

func TestCofactorChecksAgree(t *testing.T) {
	// 8*(aA + bB) computed via MultByCofactor must agree with multiplying
	// each term by 8 separately.
	for i := 0; i < 10; i++ {
		a := randomScalar(t)
		b := randomScalar(t)
		base := pointFromHex(t, threeBHex)

		var combined Point
		combined.VarTimeDoubleScalarMult(a, base, b, Generator())
		combined.MultByCofactor(&combined)

		var left, right, sum Point
		left.ScalarMult(a, base)
		left.MultByCofactor(&left)
		right.ScalarBaseMult(b)
		right.MultByCofactor(&right)
		sum.Add(&left, &right)

		if combined.Equal(&sum) != 1 {
			t.Fatalf("cofactor-multiplied results disagree on try %d", i)
		}
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("decompress(compress(kB)) == kB", prop.ForAll(
		func(raw []byte) bool {
			var wide [64]byte
			copy(wide[:], raw)
			var k Scalar
			k.SetWideBytes(&wide)

			var p, back Point
			p.ScalarBaseMult(&k)
			enc := p.Bytes()
			if _, err := back.SetBytes(enc[:]); err != nil {
				return false
			}
			return back.Equal(&p) == 1 && back.IsOnCurve() == 1
		},
		gen.SliceOfN(64, gen.UInt8()),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecompressRejections(t *testing.T) {
	cases := []struct {
		name string
		enc  string
	}{
		// Low 255 bits encode p + 3, above the field prime.
		{"non-canonical y", "f0ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"},
		// y = 2 has no matching x on the curve.
		{"no square root", "0200000000000000000000000000000000000000000000000000000000000000"},
		// y = 1 decodes to x = 0, which admits no sign bit.
		{"negative zero", "0100000000000000000000000000000000000000000000000000000000000080"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Point
			if _, err := p.SetBytes(mustDecodeHex(t, tc.enc)); err == nil {
				t.Errorf("SetBytes should reject %s encoding", tc.name)
			}
		})
	}

	var p Point
	if _, err := p.SetBytes(make([]byte, 31)); err == nil {
		t.Error("SetBytes should reject wrong-length input")
	}
}

func TestSmallOrderPoints(t *testing.T) {
	// The identity encodes as y = 1 and has small order.
	var ident Point
	if _, err := ident.SetBytes(mustDecodeHex(t, "0100000000000000000000000000000000000000000000000000000000000000")); err != nil {
		t.Fatalf("identity encoding should decompress: %v", err)
	}
	if ident.HasSmallOrder() != 1 {
		t.Error("identity should have small order")
	}
	// y = -1 is the order-2 point.
	var orderTwo Point
	if _, err := orderTwo.SetBytes(mustDecodeHex(t, "ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")); err != nil {
		t.Fatalf("order-2 encoding should decompress: %v", err)
	}
	if orderTwo.HasSmallOrder() != 1 {
		t.Error("y = -1 should have small order")
	}

	if Generator().HasSmallOrder() != 0 {
		t.Error("the generator must not have small order")
	}
}

func TestScalarBaseMultMatchesReference(t *testing.T) {
	for i := 0; i < 20; i++ {
		k := randomScalar(t)
		kEnc := k.Bytes()

		var ours Point
		ours.ScalarBaseMult(k)
		got := ours.Bytes()

		refScalar, err := ref.NewScalar().SetCanonicalBytes(kEnc[:])
		require.NoError(t, err)
		want := ref.NewIdentityPoint().ScalarBaseMult(refScalar).Bytes()
		require.Equal(t, want, got[:], "scalar base mult diverges from reference")
	}
}

func TestPointAddMatchesReference(t *testing.T) {
	for i := 0; i < 20; i++ {
		a := randomScalar(t)
		b := randomScalar(t)

		var pa, pb, sum Point
		pa.ScalarBaseMult(a)
		pb.ScalarBaseMult(b)
		sum.Add(&pa, &pb)
		got := sum.Bytes()

		aEnc, bEnc := pa.Bytes(), pb.Bytes()
		refA, err := ref.NewIdentityPoint().SetBytes(aEnc[:])
		require.NoError(t, err)
		refB, err := ref.NewIdentityPoint().SetBytes(bEnc[:])
		require.NoError(t, err)
		want := ref.NewIdentityPoint().Add(refA, refB).Bytes()
		require.Equal(t, want, got[:], "point addition diverges from reference")
	}
}
