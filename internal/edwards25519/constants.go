package edwards25519

import "encoding/hex"

// Curve constants, as canonical little-endian field element encodings.
// d = -121665/121666 mod p, the Edwards curve coefficient.
// 2d shows up in the extended-coordinate addition formula.
// sqrtM1 = sqrt(-1) = 2^((p-1)/4) mod p, used for root correction.
var (
	feD      = mustFieldElement("a3785913ca4deb75abd841414d0a700098e879777940c78c73fe6f2bee6c0352")
	feD2     = mustFieldElement("59f1b226949bd6eb56b183829a14e00030d1f3eef2808e19e7fcdf56dcd90624")
	feSqrtM1 = mustFieldElement("b0a00e4a271beec478e42fad0618432fa7d7fb3d99004d2b0bdfc14f8024832b")
)

// generator is the standard base point B: y = 4/5, x positive.
var generator = mustPoint("5866666666666666666666666666666666666666666666666666666666666666")

// identityPoint is the neutral element (0, 1), extended as (0 : 1 : 1 : 0).
var identityPoint = Point{
	x: FieldElement{},
	y: FieldElement{l0: 1},
	z: FieldElement{l0: 1},
	t: FieldElement{},
}

// lLimbs is the group order L = 2^252 + 27742317777372353535851937790883648493
// as four little-endian 64-bit limbs.
var lLimbs = [4]uint64{
	0x5812631a5cf5d3ed,
	0x14def9dea2f79cd6,
	0x0000000000000000,
	0x1000000000000000,
}

func mustFieldElement(s string) FieldElement {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		panic("edwards25519: bad field element constant")
	}
	var buf [32]byte
	copy(buf[:], raw)
	var fe FieldElement
	fe.SetBytes(&buf)
	return fe
}

func mustPoint(s string) Point {
	raw, err := hex.DecodeString(s)
	if err != nil {
		panic("edwards25519: bad point constant")
	}
	var p Point
	if _, err := p.SetBytes(raw); err != nil {
		panic("edwards25519: bad point constant: " + err.Error())
	}
	return p
}

// Generator returns the base point B.
func Generator() *Point {
	return &generator
}

// Identity returns the neutral group element.
func Identity() *Point {
	return &identityPoint
}
