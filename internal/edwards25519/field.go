package edwards25519

import (
	"crypto/subtle"
	"encoding/binary"
	"math/bits"
)

// FieldElement is an integer modulo 2^255 - 19, held in five unsigned
// 64-bit limbs of 51 bits each, little-endian. The value of the element is
// l0 + l1*2^51 + l2*2^102 + l3*2^153 + l4*2^204.
//
// Between operations limbs are kept below 2^52 (a "loose" reduction); full
// canonical reduction to [0, p) happens in Bytes, Equal, IsNegative and
// IsZero, so values never leave the package non-normalized.
type FieldElement struct {
	l0, l1, l2, l3, l4 uint64
}

const maskLow51Bits uint64 = (1 << 51) - 1

// Zero sets v = 0 and returns v.
func (v *FieldElement) Zero() *FieldElement {
	*v = FieldElement{}
	return v
}

// One sets v = 1 and returns v.
func (v *FieldElement) One() *FieldElement {
	*v = FieldElement{l0: 1}
	return v
}

// Set sets v = a and returns v.
func (v *FieldElement) Set(a *FieldElement) *FieldElement {
	*v = *a
	return v
}

// carryPropagate brings every limb back below 2^52, folding the carry out
// of the top limb back into the bottom one via 2^255 = 19 (mod p).
func (v *FieldElement) carryPropagate() *FieldElement {
	c0 := v.l0 >> 51
	c1 := v.l1 >> 51
	c2 := v.l2 >> 51
	c3 := v.l3 >> 51
	c4 := v.l4 >> 51

	v.l0 = v.l0&maskLow51Bits + c4*19
	v.l1 = v.l1&maskLow51Bits + c0
	v.l2 = v.l2&maskLow51Bits + c1
	v.l3 = v.l3&maskLow51Bits + c2
	v.l4 = v.l4&maskLow51Bits + c3
	return v
}

// reduce normalizes v to its canonical representative in [0, p).
func (v *FieldElement) reduce() *FieldElement {
	v.carryPropagate()

	// If v >= p, adding 19 overflows bit 255; c captures that overflow.
	c := (v.l0 + 19) >> 51
	c = (v.l1 + c) >> 51
	c = (v.l2 + c) >> 51
	c = (v.l3 + c) >> 51
	c = (v.l4 + c) >> 51

	// Subtract c*p by adding c*19 and dropping everything at bit 255 and up.
	v.l0 += 19 * c
	v.l1 += v.l0 >> 51
	v.l0 &= maskLow51Bits
	v.l2 += v.l1 >> 51
	v.l1 &= maskLow51Bits
	v.l3 += v.l2 >> 51
	v.l2 &= maskLow51Bits
	v.l4 += v.l3 >> 51
	v.l3 &= maskLow51Bits
	v.l4 &= maskLow51Bits
	return v
}

// Add sets v = a + b and returns v.
func (v *FieldElement) Add(a, b *FieldElement) *FieldElement {
	v.l0 = a.l0 + b.l0
	v.l1 = a.l1 + b.l1
	v.l2 = a.l2 + b.l2
	v.l3 = a.l3 + b.l3
	v.l4 = a.l4 + b.l4
	return v.carryPropagate()
}

// Sub sets v = a - b and returns v. 2p is added first so no limb
// underflows regardless of the operands.
func (v *FieldElement) Sub(a, b *FieldElement) *FieldElement {
	v.l0 = (a.l0 + 0xFFFFFFFFFFFDA) - b.l0
	v.l1 = (a.l1 + 0xFFFFFFFFFFFFE) - b.l1
	v.l2 = (a.l2 + 0xFFFFFFFFFFFFE) - b.l2
	v.l3 = (a.l3 + 0xFFFFFFFFFFFFE) - b.l3
	v.l4 = (a.l4 + 0xFFFFFFFFFFFFE) - b.l4
	return v.carryPropagate()
}

// Negate sets v = -a and returns v.
func (v *FieldElement) Negate(a *FieldElement) *FieldElement {
	var zero FieldElement
	return v.Sub(&zero, a)
}

// uint128 holds an intermediate 128-bit product.
type uint128 struct {
	lo, hi uint64
}

func mul64(a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	return uint128{lo, hi}
}

func addMul64(r uint128, a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	lo, c := bits.Add64(lo, r.lo, 0)
	hi, _ = bits.Add64(hi, r.hi, c)
	return uint128{lo, hi}
}

func shiftRightBy51(a uint128) uint64 {
	return a.hi<<13 | a.lo>>51
}

// Mul sets v = a * b and returns v.
//
// Limb products are accumulated in 128 bits column by column, with the
// columns above 2^255 wrapped down via 2^255 = 19 (mod p):
//
//	r0 = a0*b0 + 19*(a1*b4 + a2*b3 + a3*b2 + a4*b1)
//	r1 = a0*b1 + a1*b0 + 19*(a2*b4 + a3*b3 + a4*b2)
//	r2 = a0*b2 + a1*b1 + a2*b0 + 19*(a3*b4 + a4*b3)
//	r3 = a0*b3 + a1*b2 + a2*b1 + a3*b0 + 19*a4*b4
//	r4 = a0*b4 + a1*b3 + a2*b2 + a3*b1 + a4*b0
func (v *FieldElement) Mul(a, b *FieldElement) *FieldElement {
	a0, a1, a2, a3, a4 := a.l0, a.l1, a.l2, a.l3, a.l4
	b0, b1, b2, b3, b4 := b.l0, b.l1, b.l2, b.l3, b.l4

	a1_19 := a1 * 19
	a2_19 := a2 * 19
	a3_19 := a3 * 19
	a4_19 := a4 * 19

	r0 := mul64(a0, b0)
	r0 = addMul64(r0, a1_19, b4)
	r0 = addMul64(r0, a2_19, b3)
	r0 = addMul64(r0, a3_19, b2)
	r0 = addMul64(r0, a4_19, b1)

	r1 := mul64(a0, b1)
	r1 = addMul64(r1, a1, b0)
	r1 = addMul64(r1, a2_19, b4)
	r1 = addMul64(r1, a3_19, b3)
	r1 = addMul64(r1, a4_19, b2)

	r2 := mul64(a0, b2)
	r2 = addMul64(r2, a1, b1)
	r2 = addMul64(r2, a2, b0)
	r2 = addMul64(r2, a3_19, b4)
	r2 = addMul64(r2, a4_19, b3)

	r3 := mul64(a0, b3)
	r3 = addMul64(r3, a1, b2)
	r3 = addMul64(r3, a2, b1)
	r3 = addMul64(r3, a3, b0)
	r3 = addMul64(r3, a4_19, b4)

	r4 := mul64(a0, b4)
	r4 = addMul64(r4, a1, b3)
	r4 = addMul64(r4, a2, b2)
	r4 = addMul64(r4, a3, b1)
	r4 = addMul64(r4, a4, b0)

	c0 := shiftRightBy51(r0)
	c1 := shiftRightBy51(r1)
	c2 := shiftRightBy51(r2)
	c3 := shiftRightBy51(r3)
	c4 := shiftRightBy51(r4)

	v.l0 = r0.lo&maskLow51Bits + c4*19
	v.l1 = r1.lo&maskLow51Bits + c0
	v.l2 = r2.lo&maskLow51Bits + c1
	v.l3 = r3.lo&maskLow51Bits + c2
	v.l4 = r4.lo&maskLow51Bits + c3
	return v.carryPropagate()
}

// Square sets v = a * a and returns v.
func (v *FieldElement) Square(a *FieldElement) *FieldElement {
	return v.Mul(a, a)
}

// SetBytes interprets x as a 255-bit little-endian integer and sets v to
// it. Bit 255 of x is ignored; the value is not required to be canonical.
// Callers that must reject non-canonical encodings compare Bytes output
// against the input.
func (v *FieldElement) SetBytes(x *[32]byte) *FieldElement {
	v.l0 = binary.LittleEndian.Uint64(x[0:8]) & maskLow51Bits
	v.l1 = (binary.LittleEndian.Uint64(x[6:14]) >> 3) & maskLow51Bits
	v.l2 = (binary.LittleEndian.Uint64(x[12:20]) >> 6) & maskLow51Bits
	v.l3 = (binary.LittleEndian.Uint64(x[19:27]) >> 1) & maskLow51Bits
	v.l4 = (binary.LittleEndian.Uint64(x[24:32]) >> 12) & maskLow51Bits
	return v
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *FieldElement) Bytes() [32]byte {
	t := *v
	t.reduce()

	var out [32]byte
	var buf [8]byte
	for i, l := range [5]uint64{t.l0, t.l1, t.l2, t.l3, t.l4} {
		bitsOffset := i * 51
		binary.LittleEndian.PutUint64(buf[:], l<<uint(bitsOffset%8))
		for j, b := range buf {
			off := bitsOffset/8 + j
			if off >= len(out) {
				break
			}
			out[off] |= b
		}
	}
	return out
}

// Equal returns 1 if v and u are equal mod p, 0 otherwise, in constant time.
func (v *FieldElement) Equal(u *FieldElement) int {
	va, ua := v.Bytes(), u.Bytes()
	return subtle.ConstantTimeCompare(va[:], ua[:])
}

// IsZero returns 1 if v == 0 mod p, 0 otherwise, in constant time.
func (v *FieldElement) IsZero() int {
	var zero FieldElement
	return v.Equal(&zero)
}

// IsNegative returns 1 if the canonical encoding of v is odd, 0 otherwise.
// This is the sign convention used by the point encoding.
func (v *FieldElement) IsNegative() int {
	b := v.Bytes()
	return int(b[0] & 1)
}

func mask64Bits(cond int) uint64 {
	return ^(uint64(cond) - 1)
}

// Select sets v = a if cond == 1 and v = b if cond == 0, without branching
// on cond. cond must be 0 or 1.
func (v *FieldElement) Select(a, b *FieldElement, cond int) *FieldElement {
	m := mask64Bits(cond)
	v.l0 = (m & a.l0) | (^m & b.l0)
	v.l1 = (m & a.l1) | (^m & b.l1)
	v.l2 = (m & a.l2) | (^m & b.l2)
	v.l3 = (m & a.l3) | (^m & b.l3)
	v.l4 = (m & a.l4) | (^m & b.l4)
	return v
}

// Swap exchanges v and u if cond == 1, leaves both untouched if cond == 0,
// without branching on cond. cond must be 0 or 1.
func (v *FieldElement) Swap(u *FieldElement, cond int) {
	m := mask64Bits(cond)
	t := m & (v.l0 ^ u.l0)
	v.l0 ^= t
	u.l0 ^= t
	t = m & (v.l1 ^ u.l1)
	v.l1 ^= t
	u.l1 ^= t
	t = m & (v.l2 ^ u.l2)
	v.l2 ^= t
	u.l2 ^= t
	t = m & (v.l3 ^ u.l3)
	v.l3 ^= t
	u.l3 ^= t
	t = m & (v.l4 ^ u.l4)
	v.l4 ^= t
	u.l4 ^= t
}

// Absolute sets v to a if a is non-negative under the encoding sign
// convention and to -a otherwise, and returns v.
func (v *FieldElement) Absolute(a *FieldElement) *FieldElement {
	var neg FieldElement
	neg.Negate(a)
	return v.Select(&neg, a, a.IsNegative())
}

// Invert sets v = a^(p-2) = a^-1 and returns v. By Fermat's little theorem
// the result is the multiplicative inverse for every nonzero a, and 0 for
// a == 0, which keeps inversion total for the group formulas.
//
// The addition chain is the classic one from the ref10 implementation.
func (v *FieldElement) Invert(a *FieldElement) *FieldElement {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t FieldElement

	z2.Square(a)             // 2
	t.Square(&z2)            // 4
	t.Square(&t)             // 8
	z9.Mul(&t, a)            // 9
	z11.Mul(&z9, &z2)        // 11
	t.Square(&z11)           // 22
	z2_5_0.Mul(&t, &z9)      // 31 = 2^5 - 2^0

	t.Square(&z2_5_0)        // 2^6 - 2^1
	for i := 0; i < 4; i++ {
		t.Square(&t)         // 2^10 - 2^5
	}
	z2_10_0.Mul(&t, &z2_5_0) // 2^10 - 2^0

	t.Square(&z2_10_0)       // 2^11 - 2^1
	for i := 0; i < 9; i++ {
		t.Square(&t)         // 2^20 - 2^10
	}
	z2_20_0.Mul(&t, &z2_10_0) // 2^20 - 2^0

	t.Square(&z2_20_0)       // 2^21 - 2^1
	for i := 0; i < 19; i++ {
		t.Square(&t)         // 2^40 - 2^20
	}
	t.Mul(&t, &z2_20_0)      // 2^40 - 2^0

	t.Square(&t)             // 2^41 - 2^1
	for i := 0; i < 9; i++ {
		t.Square(&t)         // 2^50 - 2^10
	}
	z2_50_0.Mul(&t, &z2_10_0) // 2^50 - 2^0

	t.Square(&z2_50_0)       // 2^51 - 2^1
	for i := 0; i < 49; i++ {
		t.Square(&t)         // 2^100 - 2^50
	}
	z2_100_0.Mul(&t, &z2_50_0) // 2^100 - 2^0

	t.Square(&z2_100_0)      // 2^101 - 2^1
	for i := 0; i < 99; i++ {
		t.Square(&t)         // 2^200 - 2^100
	}
	t.Mul(&t, &z2_100_0)     // 2^200 - 2^0

	t.Square(&t)             // 2^201 - 2^1
	for i := 0; i < 49; i++ {
		t.Square(&t)         // 2^250 - 2^50
	}
	t.Mul(&t, &z2_50_0)      // 2^250 - 2^0

	t.Square(&t)             // 2^251 - 2^1
	t.Square(&t)             // 2^252 - 2^2
	t.Square(&t)             // 2^253 - 2^3
	t.Square(&t)             // 2^254 - 2^4
	t.Square(&t)             // 2^255 - 2^5

	return v.Mul(&t, &z11)   // 2^255 - 21 = p - 2
}

// Pow22523 sets v = a^((p-5)/8) = a^(2^252 - 3) and returns v. This is the
// exponent used to produce the square-root candidate during decompression.
func (v *FieldElement) Pow22523(a *FieldElement) *FieldElement {
	var t0, t1, t2 FieldElement

	t0.Square(a)             // 2
	t1.Square(&t0)           // 4
	t1.Square(&t1)           // 8
	t1.Mul(a, &t1)           // 9
	t0.Mul(&t0, &t1)         // 11
	t0.Square(&t0)           // 22
	t0.Mul(&t1, &t0)         // 31 = 2^5 - 2^0

	t1.Square(&t0)           // 2^6 - 2^1
	for i := 0; i < 4; i++ {
		t1.Square(&t1)       // 2^10 - 2^5
	}
	t0.Mul(&t1, &t0)         // 2^10 - 2^0

	t1.Square(&t0)           // 2^11 - 2^1
	for i := 0; i < 9; i++ {
		t1.Square(&t1)       // 2^20 - 2^10
	}
	t1.Mul(&t1, &t0)         // 2^20 - 2^0

	t2.Square(&t1)           // 2^21 - 2^1
	for i := 0; i < 19; i++ {
		t2.Square(&t2)       // 2^40 - 2^20
	}
	t1.Mul(&t2, &t1)         // 2^40 - 2^0

	t1.Square(&t1)           // 2^41 - 2^1
	for i := 0; i < 9; i++ {
		t1.Square(&t1)       // 2^50 - 2^10
	}
	t0.Mul(&t1, &t0)         // 2^50 - 2^0

	t1.Square(&t0)           // 2^51 - 2^1
	for i := 0; i < 49; i++ {
		t1.Square(&t1)       // 2^100 - 2^50
	}
	t1.Mul(&t1, &t0)         // 2^100 - 2^0

	t2.Square(&t1)           // 2^101 - 2^1
	for i := 0; i < 99; i++ {
		t2.Square(&t2)       // 2^200 - 2^100
	}
	t1.Mul(&t2, &t1)         // 2^200 - 2^0

	t1.Square(&t1)           // 2^201 - 2^1
	for i := 0; i < 49; i++ {
		t1.Square(&t1)       // 2^250 - 2^50
	}
	t0.Mul(&t1, &t0)         // 2^250 - 2^0

	t0.Square(&t0)           // 2^251 - 2^1
	t0.Square(&t0)           // 2^252 - 2^2
	return v.Mul(&t0, a)     // 2^252 - 3
}

// SqrtRatio sets v to the non-negative square root of u/w if one exists
// and returns (v, 1). If u/w is a non-residue, v is set to an undefined
// value and (v, 0) is returned. Control flow does not depend on the inputs.
func (v *FieldElement) SqrtRatio(u, w *FieldElement) (*FieldElement, int) {
	var w2, w3, w7, uw3, uw7, r, check, uNeg, uNegI, rPrime FieldElement

	// r = u * w^3 * (u * w^7)^((p-5)/8) is the square-root candidate.
	w2.Square(w)
	w3.Mul(&w2, w)
	w7.Mul(&w3, w2.Square(&w2))
	uw3.Mul(u, &w3)
	uw7.Mul(u, &w7)
	r.Pow22523(&uw7)
	r.Mul(&uw3, &r)

	check.Square(&r)
	check.Mul(&check, w) // w * r^2

	uNeg.Negate(u)
	uNegI.Mul(&uNeg, &feSqrtM1)

	correctSign := check.Equal(u)
	flippedSign := check.Equal(&uNeg)
	flippedSignI := check.Equal(&uNegI)

	// If w*r^2 == -u (mod sqrt(-1) factors), multiplying the candidate by
	// sqrt(-1) yields the root.
	rPrime.Mul(&r, &feSqrtM1)
	r.Select(&rPrime, &r, flippedSign|flippedSignI)

	v.Absolute(&r)
	return v, correctSign | flippedSign
}
