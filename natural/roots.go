package natural

import (
	"github.com/agbru/bignum/internal/arena"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Bezout holds gcd(a, b) and cofactors with a·(±X) + b·(±Y) = GCD, where
// XNeg and YNeg give the signs. A zero cofactor is never negative.
type Bezout struct {
	GCD, X, Y  Natural
	XNeg, YNeg bool
}

// ExtendedGCD returns gcd(x, y) with Bézout cofactors. When both operands
// are positive, X ≤ y/GCD and Y ≤ x/GCD. ExtendedGCD(0, 0) is all zeros.
func (x Natural) ExtendedGCD(y Natural) Bezout {
	if x.IsZero() && y.IsZero() {
		return Bezout{}
	}
	a, b, swapped := x, y, false
	if a.Cmp(b) < 0 {
		a, b, swapped = b, a, true
	}
	al, bl := a.limbs(), b.limbs()
	e := active().gcd
	ar := arena.New(e.ExtendedGCDScratch(len(al)))
	defer ar.Free()

	g, m := e.ExtendedGCD(al, bl, ar)
	// g = det·(m11·a - m01·b)
	out := Bezout{
		GCD: fromLimbs(append([]limb.Limb(nil), g...)),
		X:   fromLimbs(append([]limb.Limb(nil), m.Entry(1, 1)...)),
		Y:   fromLimbs(append([]limb.Limb(nil), m.Entry(0, 1)...)),
	}
	out.XNeg, out.YNeg = m.Det() < 0, m.Det() > 0
	if swapped {
		out.X, out.Y = out.Y, out.X
		out.XNeg, out.YNeg = out.YNeg, out.XNeg
	}
	out.XNeg = out.XNeg && !out.X.IsZero()
	out.YNeg = out.YNeg && !out.Y.IsZero()
	return out
}

// LCM returns the least common multiple of x and y. LCM with zero is 0.
func (x Natural) LCM(y Natural) Natural {
	if x.IsZero() || y.IsZero() {
		return Natural{}
	}
	q, _ := x.DivExact(x.GCD(y))
	return q.Mul(y)
}

// DivExact returns x / y for a y known to divide x, dividing from the low
// end. The result is unspecified when y does not divide x. y == 0 returns
// ErrDivisionByZero.
func (x Natural) DivExact(y Natural) (Natural, error) {
	if y.IsZero() {
		return Natural{}, apperrors.NewArithmeticError("DivExact", apperrors.DivisionByZero)
	}
	if x.large == nil && y.large == nil {
		return Natural{small: x.small / y.small}, nil
	}
	tz := y.TrailingZeroBits()
	xl, yl := x.Shr(tz).limbs(), y.Shr(tz).limbs()
	if len(xl) < len(yl) {
		return Natural{}, nil
	}
	q := make([]limb.Limb, len(xl)-len(yl)+1)
	limb.DivExact(q, xl, yl, make([]limb.Limb, len(xl)))
	return fromLimbs(q), nil
}

// Sqrt returns ⌊√x⌋.
func (x Natural) Sqrt() Natural {
	r, _ := x.Root(2)
	return r
}

// SqrtRem returns s = ⌊√x⌋ and x - s².
func (x Natural) SqrtRem() (s, rem Natural) {
	s = x.Sqrt()
	rem, _ = x.Sub(s.Square())
	return s, rem
}

// Root returns ⌊x^(1/k)⌋. A zero degree is a ValidationError.
func (x Natural) Root(k uint) (Natural, error) {
	if k == 0 {
		return Natural{}, apperrors.ValidationError{Field: "k", Message: "root degree must be positive"}
	}
	if k == 1 || x.Cmp(FromUint32(2)) < 0 {
		return x, nil
	}
	b := uint(x.BitLen())
	if b <= k {
		// x < 2^k
		return Natural{small: 1}, nil
	}
	// Newton's iteration from above: r' = ((k-1)·r + x/r^(k-1)) / k
	// decreases strictly until it reaches the floor root.
	r := Natural{small: 1}.Shl((b + k - 1) / k)
	km1, kn := FromUint64(uint64(k-1)), FromUint64(uint64(k))
	for {
		t, _ := x.Div(r.Pow(uint64(k - 1)))
		next, _ := r.Mul(km1).Add(t).Div(kn)
		if next.Cmp(r) >= 0 {
			return r, nil
		}
		r = next
	}
}

// RootRem returns r = ⌊x^(1/k)⌋ and x - r^k.
func (x Natural) RootRem(k uint) (r, rem Natural, err error) {
	if r, err = x.Root(k); err != nil {
		return Natural{}, Natural{}, err
	}
	rem, _ = x.Sub(r.Pow(uint64(k)))
	return r, rem, nil
}

// CeilRoot returns ⌈x^(1/k)⌉.
func (x Natural) CeilRoot(k uint) (Natural, error) {
	r, rem, err := x.RootRem(k)
	if err != nil || rem.IsZero() {
		return r, err
	}
	return r.Add(FromUint32(1)), nil
}

// RootSigned returns the floor of the k-th root of the signed value
// (neg, x) as a magnitude and sign. An even root of a negative value
// returns ErrNegativeRoot.
func RootSigned(x Natural, neg bool, k uint) (Natural, bool, error) {
	if !neg || x.IsZero() {
		r, err := x.Root(k)
		return r, false, err
	}
	if k%2 == 0 {
		return Natural{}, false, apperrors.NewArithmeticError("RootSigned", apperrors.NegativeRoot)
	}
	// ⌊-y⌋ = -⌈y⌉
	r, err := x.CeilRoot(k)
	return r, true, err
}
