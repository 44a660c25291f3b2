package edwards25519

import "errors"

// Point is a point on the twisted Edwards form of Curve25519, in extended
// coordinates (X : Y : Z : T) with x = X/Z, y = Y/Z, x*y = T/Z. The
// representation keeps the group law complete: addition and doubling are
// correct for every pair of inputs, including the identity and P + P.
type Point struct {
	x, y, z, t FieldElement
}

var (
	errInvalidEncoding  = errors.New("edwards25519: invalid point encoding")
	errNonCanonicalY    = errors.New("edwards25519: y coordinate is not canonical")
	errWrongEncodingLen = errors.New("edwards25519: point encoding must be 32 bytes")
)

// NewIdentityPoint returns a new point set to the neutral element.
func NewIdentityPoint() *Point {
	p := &Point{}
	return p.Set(&identityPoint)
}

// NewGeneratorPoint returns a new point set to the base point B.
func NewGeneratorPoint() *Point {
	p := &Point{}
	return p.Set(&generator)
}

// Set sets v = p and returns v.
func (v *Point) Set(p *Point) *Point {
	*v = *p
	return v
}

// Add sets v = p + q and returns v, using the complete extended-coordinate
// addition formula (no exceptional inputs for this curve).
func (v *Point) Add(p, q *Point) *Point {
	var t1, t2, a, b, c, d, e, f, g, h FieldElement

	t1.Sub(&p.y, &p.x)
	t2.Sub(&q.y, &q.x)
	a.Mul(&t1, &t2) // A = (Y1-X1)*(Y2-X2)

	t1.Add(&p.y, &p.x)
	t2.Add(&q.y, &q.x)
	b.Mul(&t1, &t2) // B = (Y1+X1)*(Y2+X2)

	c.Mul(&p.t, &q.t)
	c.Mul(&c, &feD2) // C = 2d*T1*T2

	d.Mul(&p.z, &q.z)
	d.Add(&d, &d) // D = 2*Z1*Z2

	e.Sub(&b, &a)
	f.Sub(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	v.x.Mul(&e, &f)
	v.y.Mul(&g, &h)
	v.z.Mul(&f, &g)
	v.t.Mul(&e, &h)
	return v
}

// Double sets v = p + p and returns v.
func (v *Point) Double(p *Point) *Point {
	var xx, yy, zz2, xy2, yPlus, yMinus, tt FieldElement

	xx.Square(&p.x)
	yy.Square(&p.y)
	zz2.Square(&p.z)
	zz2.Add(&zz2, &zz2)

	xy2.Add(&p.x, &p.y)
	xy2.Square(&xy2)
	yPlus.Add(&yy, &xx)
	yMinus.Sub(&yy, &xx)
	xy2.Sub(&xy2, &yPlus) // 2*X*Y
	tt.Sub(&zz2, &yMinus) // 2*Z^2 - (Y^2 - X^2)

	v.x.Mul(&xy2, &tt)
	v.y.Mul(&yPlus, &yMinus)
	v.z.Mul(&yMinus, &tt)
	v.t.Mul(&xy2, &yPlus)
	return v
}

// Negate sets v = -p and returns v.
func (v *Point) Negate(p *Point) *Point {
	v.x.Negate(&p.x)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	v.t.Negate(&p.t)
	return v
}

// Select sets v = p if cond == 1 and v = q if cond == 0, without branching
// on cond.
func (v *Point) Select(p, q *Point, cond int) *Point {
	v.x.Select(&p.x, &q.x, cond)
	v.y.Select(&p.y, &q.y, cond)
	v.z.Select(&p.z, &q.z, cond)
	v.t.Select(&p.t, &q.t, cond)
	return v
}

// Equal returns 1 if v and p represent the same group element, 0
// otherwise. Comparison is done projectively: X1*Z2 == X2*Z1 and
// Y1*Z2 == Y2*Z1.
func (v *Point) Equal(p *Point) int {
	var a, b, c, d FieldElement
	a.Mul(&v.x, &p.z)
	b.Mul(&p.x, &v.z)
	c.Mul(&v.y, &p.z)
	d.Mul(&p.y, &v.z)
	return a.Equal(&b) & c.Equal(&d)
}

// IsIdentity returns 1 if v is the neutral element.
func (v *Point) IsIdentity() int {
	return v.Equal(&identityPoint)
}

// ScalarMult sets v = s*p and returns v.
//
// The ladder processes all 256 scalar bits with one doubling and one
// addition per bit; the addition result is folded in through a masked
// select, so the sequence of operations does not depend on the scalar.
// Use this whenever the scalar is secret.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
	var acc, addend, sum Point
	acc.Set(&identityPoint)
	addend.Set(p)

	for i := 0; i < 256; i++ {
		sum.Add(&acc, &addend)
		acc.Select(&sum, &acc, s.bit(i))
		addend.Double(&addend)
	}
	return v.Set(&acc)
}

// ScalarBaseMult sets v = s*B and returns v, with the same constant-time
// guarantee as ScalarMult.
func (v *Point) ScalarBaseMult(s *Scalar) *Point {
	return v.ScalarMult(s, &generator)
}

// VarTimeDoubleScalarMult sets v = a*A + b*B and returns v, using a
// variable-time interleaved double-and-add. Only for public scalars and
// points; verification qualifies, signing does not.
func (v *Point) VarTimeDoubleScalarMult(a *Scalar, A *Point, b *Scalar, B *Point) *Point {
	var acc Point
	acc.Set(&identityPoint)

	for i := 255; i >= 0; i-- {
		acc.Double(&acc)
		if a.bit(i) == 1 {
			acc.Add(&acc, A)
		}
		if b.bit(i) == 1 {
			acc.Add(&acc, B)
		}
	}
	return v.Set(&acc)
}

// MultByCofactor sets v = 8*p and returns v. Multiplying by the cofactor
// clears any small-order component of p.
func (v *Point) MultByCofactor(p *Point) *Point {
	v.Double(p)
	v.Double(v)
	return v.Double(v)
}

// HasSmallOrder returns 1 if p is a point of order 1, 2, 4 or 8, i.e. if
// it vanishes under cofactor multiplication.
func (v *Point) HasSmallOrder() int {
	var e Point
	return e.MultByCofactor(v).IsIdentity()
}

// IsOnCurve returns 1 if v satisfies the curve equation
// -x^2 + y^2 = 1 + d*x^2*y^2 along with the extended-coordinate
// invariant x*y = t (all per the affine values X/Z, Y/Z, T/Z).
func (v *Point) IsOnCurve() int {
	var zInv, x, y, t, lhs, rhs, xy FieldElement
	zInv.Invert(&v.z)
	x.Mul(&v.x, &zInv)
	y.Mul(&v.y, &zInv)
	t.Mul(&v.t, &zInv)

	var x2, y2 FieldElement
	x2.Square(&x)
	y2.Square(&y)
	lhs.Sub(&y2, &x2) // -x^2 + y^2

	rhs.Mul(&x2, &y2)
	rhs.Mul(&rhs, &feD)
	var one FieldElement
	one.One()
	rhs.Add(&rhs, &one) // 1 + d*x^2*y^2

	xy.Mul(&x, &y)
	return lhs.Equal(&rhs) & xy.Equal(&t)
}

// Bytes returns the canonical 32-byte compressed encoding of v: the
// y coordinate with the sign of x in the top bit.
func (v *Point) Bytes() [32]byte {
	var zInv, x, y FieldElement
	zInv.Invert(&v.z)
	x.Mul(&v.x, &zInv)
	y.Mul(&v.y, &zInv)

	out := y.Bytes()
	out[31] |= byte(x.IsNegative()) << 7
	return out
}

// SetBytes decompresses the 32-byte encoding in data and sets v to the
// result. It returns an error when data is not 32 bytes, when the encoded
// y coordinate is not canonical (y >= p after masking the sign bit), or
// when no x on the curve matches the encoding. On error v is unmodified.
func (v *Point) SetBytes(data []byte) (*Point, error) {
	if len(data) != 32 {
		return nil, errWrongEncodingLen
	}

	var enc [32]byte
	copy(enc[:], data)
	sign := int(enc[31] >> 7)
	enc[31] &= 0x7f

	var y FieldElement
	y.SetBytes(&enc)
	if y.Bytes() != enc {
		return nil, errNonCanonicalY
	}

	// x^2 = (y^2 - 1) / (d*y^2 + 1). The denominator is always nonzero
	// because -1/d is a non-residue.
	var y2, u, w, one FieldElement
	one.One()
	y2.Square(&y)
	u.Sub(&y2, &one)
	w.Mul(&y2, &feD)
	w.Add(&w, &one)

	var x FieldElement
	if _, wasSquare := x.SqrtRatio(&u, &w); wasSquare == 0 {
		return nil, errInvalidEncoding
	}

	// The encoding of -0 is rejected: x = 0 admits no sign bit.
	if x.IsZero() == 1 && sign == 1 {
		return nil, errInvalidEncoding
	}

	var xNeg FieldElement
	xNeg.Negate(&x)
	x.Select(&xNeg, &x, sign^x.IsNegative())

	v.x.Set(&x)
	v.y.Set(&y)
	v.z.One()
	v.t.Mul(&x, &y)
	return v, nil
}
