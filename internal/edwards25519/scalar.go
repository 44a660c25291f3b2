package edwards25519

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// Scalar is an integer modulo the group order
// L = 2^252 + 27742317777372353535851937790883648493, stored as 32
// little-endian bytes.
//
// Values produced by SetWideBytes, SetCanonicalBytes and MulAdd are fully
// reduced. SetClampedBytes is the one exception: a clamped signing scalar
// has bit 254 set and is therefore above L; every operation consuming a
// Scalar reduces modulo L internally, so the clamped form is safe as an
// input to MulAdd and to the point multiplication ladder.
type Scalar struct {
	v [32]byte
}

var errNonCanonicalScalar = errors.New("edwards25519: scalar encoding is not canonical")

// Set sets s = a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.v = a.v
	return s
}

// Bytes returns the 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() [32]byte {
	return s.v
}

// SetCanonicalBytes sets s to the scalar encoded in x and returns s, or an
// error if x is not 32 bytes or encodes a value >= L.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errNonCanonicalScalar
	}
	if !scalarIsCanonical(x) {
		return nil, errNonCanonicalScalar
	}
	copy(s.v[:], x)
	return s, nil
}

// SetClampedBytes applies the RFC 8032 bitmask to x and sets s to the
// result: the bottom three bits are cleared so the scalar is a multiple of
// the cofactor, the top bit is cleared and bit 254 is set. The transform
// discards entropy on purpose; it is not invertible.
func (s *Scalar) SetClampedBytes(x *[32]byte) *Scalar {
	s.v = *x
	s.v[0] &= 248
	s.v[31] &= 127
	s.v[31] |= 64
	return s
}

// SetWideBytes reduces the 512-bit little-endian integer in x modulo L and
// sets s to the result. This is how 64-byte hash outputs become nonces and
// challenges. The reduction processes a fixed 512 bits with a conditional
// subtraction at every step, so its timing does not depend on x.
func (s *Scalar) SetWideBytes(x *[64]byte) *Scalar {
	var w [8]uint64
	for i := range w {
		w[i] = binary.LittleEndian.Uint64(x[i*8:])
	}
	r := reduceWide(&w)
	binary.LittleEndian.PutUint64(s.v[0:], r[0])
	binary.LittleEndian.PutUint64(s.v[8:], r[1])
	binary.LittleEndian.PutUint64(s.v[16:], r[2])
	binary.LittleEndian.PutUint64(s.v[24:], r[3])
	return s
}

// MulAdd sets s = a*b + c mod L and returns s. All 256-bit inputs are
// accepted, including clamped scalars. The computation is schoolbook
// multiplication into a 512-bit accumulator followed by the same
// constant-time reduction SetWideBytes uses.
func (s *Scalar) MulAdd(a, b, c *Scalar) *Scalar {
	var al, bl, cl [4]uint64
	for i := 0; i < 4; i++ {
		al[i] = binary.LittleEndian.Uint64(a.v[i*8:])
		bl[i] = binary.LittleEndian.Uint64(b.v[i*8:])
		cl[i] = binary.LittleEndian.Uint64(c.v[i*8:])
	}

	var w [8]uint64
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(al[i], bl[j])
			lo, cc := bits.Add64(lo, carry, 0)
			hi, _ = bits.Add64(hi, 0, cc)
			lo, cc = bits.Add64(lo, w[i+j], 0)
			hi, _ = bits.Add64(hi, 0, cc)
			w[i+j] = lo
			carry = hi
		}
		w[i+4] = carry
	}

	var cc uint64
	w[0], cc = bits.Add64(w[0], cl[0], 0)
	w[1], cc = bits.Add64(w[1], cl[1], cc)
	w[2], cc = bits.Add64(w[2], cl[2], cc)
	w[3], cc = bits.Add64(w[3], cl[3], cc)
	w[4], cc = bits.Add64(w[4], 0, cc)
	w[5], cc = bits.Add64(w[5], 0, cc)
	w[6], cc = bits.Add64(w[6], 0, cc)
	w[7], _ = bits.Add64(w[7], 0, cc)

	r := reduceWide(&w)
	binary.LittleEndian.PutUint64(s.v[0:], r[0])
	binary.LittleEndian.PutUint64(s.v[8:], r[1])
	binary.LittleEndian.PutUint64(s.v[16:], r[2])
	binary.LittleEndian.PutUint64(s.v[24:], r[3])
	return s
}

// reduceWide reduces a 512-bit little-endian value modulo L bit by bit,
// most significant first. The accumulator stays below L, so doubling plus
// the incoming bit never overflows four limbs; the subtraction of L is
// selected by mask rather than branch.
func reduceWide(w *[8]uint64) [4]uint64 {
	var r [4]uint64
	for i := 511; i >= 0; i-- {
		bit := (w[i/64] >> uint(i%64)) & 1

		r[3] = r[3]<<1 | r[2]>>63
		r[2] = r[2]<<1 | r[1]>>63
		r[1] = r[1]<<1 | r[0]>>63
		r[0] = r[0]<<1 | bit

		d0, borrow := bits.Sub64(r[0], lLimbs[0], 0)
		d1, borrow := bits.Sub64(r[1], lLimbs[1], borrow)
		d2, borrow := bits.Sub64(r[2], lLimbs[2], borrow)
		d3, borrow := bits.Sub64(r[3], lLimbs[3], borrow)

		// borrow == 0 means r >= L: keep the subtracted value.
		m := borrow - 1
		r[0] = (d0 & m) | (r[0] &^ m)
		r[1] = (d1 & m) | (r[1] &^ m)
		r[2] = (d2 & m) | (r[2] &^ m)
		r[3] = (d3 & m) | (r[3] &^ m)
	}
	return r
}

// scalarIsCanonical reports whether the 32-byte little-endian value in x is
// below L, using a borrow chain rather than a byte-by-byte branch.
func scalarIsCanonical(x []byte) bool {
	var borrow uint64
	for i := 0; i < 4; i++ {
		_, borrow = bits.Sub64(binary.LittleEndian.Uint64(x[i*8:]), lLimbs[i], borrow)
	}
	return borrow == 1
}

// IsCanonicalScalar reports whether the 32-byte little-endian encoding in x
// represents a value in [0, L). Used by signature verification to reject
// non-canonical S values.
func IsCanonicalScalar(x []byte) bool {
	if len(x) != 32 {
		return false
	}
	return scalarIsCanonical(x)
}

// bit returns bit i of the scalar, for 0 <= i < 256.
func (s *Scalar) bit(i int) int {
	return int(s.v[i/8]>>(uint(i)%8)) & 1
}
