package limb

import apperrors "github.com/agbru/bignum/internal/errors"

// DivW sets z = x / y and returns the remainder. y must be non-zero and
// z may equal x.
func DivW(z, x []Limb, y Limb) (r Limb) {
	apperrors.CheckLen("DivW", len(x), len(z))
	if y == 0 {
		apperrors.Precondition("DivW", "zero divisor")
	}
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = DivWW(r, x[i], y)
	}
	return r
}

// ModW returns x mod y. y must be non-zero.
func ModW(x []Limb, y Limb) (r Limb) {
	if y == 0 {
		apperrors.Precondition("ModW", "zero divisor")
	}
	for i := len(x) - 1; i >= 0; i-- {
		_, r = DivWW(r, x[i], y)
	}
	return r
}

// DivRemScratchLen returns the scratch length DivRem needs for a
// dividend of m limbs and a divisor of n limbs.
func DivRemScratchLen(m, n int) int { return m + 1 + n }

// DivRem sets q = u / v and r = u mod v using Knuth's algorithm D.
//
// v must be normalized with at least two limbs and len(u) >= len(v).
// q needs len(u)-len(v)+1 limbs and r needs len(v) limbs; neither may
// alias u, v or scratch. scratch needs DivRemScratchLen(len(u), len(v)).
func DivRem(q, r, u, v, scratch []Limb) {
	n := len(v)
	if n < 2 || v[n-1] == 0 {
		apperrors.Precondition("DivRem", "divisor must be normalized with at least two limbs")
	}
	if len(u) < n {
		apperrors.Precondition("DivRem", "dividend shorter than divisor")
	}
	m := len(u) - n
	apperrors.CheckLen("DivRem", len(q), m+1)
	apperrors.CheckLen("DivRem", len(r), n)
	if len(scratch) < DivRemScratchLen(len(u), n) {
		panic(apperrors.LengthError{Op: "DivRem", Want: DivRemScratchLen(len(u), n), Got: len(scratch)})
	}

	shift := LeadingZeros(v[n-1])
	vn := scratch[:n]
	un := scratch[n : n+len(u)+1]
	ShlVU(vn, v, shift)
	un[len(u)] = ShlVU(un[:len(u)], u, shift)

	vtop, vnext := vn[n-1], vn[n-2]
	for j := m; j >= 0; j-- {
		qhat := Max
		if ujn := un[j+n]; ujn != vtop {
			var rhat Limb
			qhat, rhat = DivWW(ujn, un[j+n-1], vtop)
			x1, x2 := MulWW(qhat, vnext)
			ujn2 := un[j+n-2]
			for x1 > rhat || (x1 == rhat && x2 > ujn2) {
				qhat--
				prev := rhat
				rhat += vtop
				if rhat < prev {
					break
				}
				x1, x2 = MulWW(qhat, vnext)
			}
		}

		borrow := SubMulVVW(un[j:j+n], vn, qhat)
		top, b := SubWW(un[j+n], borrow, 0)
		for b != 0 {
			qhat--
			c := AddVV(un[j:j+n], un[j:j+n], vn)
			var carry Limb
			top, carry = AddWW(top, c, 0)
			if carry != 0 {
				b = 0
			}
		}
		un[j+n] = top
		q[j] = qhat
	}
	ShrVU(r, un[:n], shift)
}

// DivMod returns freshly allocated, normalized q = u / v and r = u mod v.
// v must be non-zero.
func DivMod(u, v []Limb) (q, r []Limb) {
	u, v = Norm(u), Norm(v)
	switch {
	case len(v) == 0:
		apperrors.Precondition("DivMod", "zero divisor")
	case len(u) < len(v) || (len(u) == len(v) && CmpVV(u, v) < 0):
		return nil, append([]Limb(nil), u...)
	case len(v) == 1:
		q = make([]Limb, len(u))
		rem := DivW(q, u, v[0])
		if rem != 0 {
			r = []Limb{rem}
		}
		return Norm(q), r
	}
	q = make([]Limb, len(u)-len(v)+1)
	r = make([]Limb, len(v))
	DivRem(q, r, u, v, make([]Limb, DivRemScratchLen(len(u), len(v))))
	return Norm(q), Norm(r)
}

// DivModTo sets q = u / v and r = u mod v for normalized u and non-zero
// normalized v, returning the normalized lengths of both. q needs at
// least len(u) limbs, r at least len(v) limbs and scratch at least
// DivRemScratchLen(len(u), len(v)) limbs. None of them may overlap u or v.
func DivModTo(q, r, u, v, scratch []Limb) (qn, rn int) {
	switch {
	case len(v) == 0:
		apperrors.Precondition("DivModTo", "zero divisor")
	case len(q) < len(u) || len(r) < len(v):
		apperrors.Precondition("DivModTo", "q has %d and r %d limbs for a %d by %d division", len(q), len(r), len(u), len(v))
	case len(u) < len(v) || (len(u) == len(v) && CmpVV(u, v) < 0):
		return 0, copy(r, u)
	case len(v) == 1:
		rem := DivW(q[:len(u)], u, v[0])
		r[0] = rem
		if rem != 0 {
			rn = 1
		}
		return len(Norm(q[:len(u)])), rn
	}
	m := len(u) - len(v) + 1
	DivRem(q[:m], r[:len(v)], u, v, scratch)
	return len(Norm(q[:m])), len(Norm(r[:len(v)]))
}

// InvertOdd returns the inverse of the odd limb y modulo 2^Width.
func InvertOdd(y Limb) Limb {
	if y&1 == 0 {
		apperrors.Precondition("InvertOdd", "even limb %#x", y)
	}
	// y·y ≡ 1 mod 8 gives three correct bits; each Newton step doubles them.
	v := y
	for range 5 {
		v *= 2 - y*v
	}
	return v
}

// DivExact sets q = x / y for an odd divisor y that divides x exactly,
// working from the low limb upwards (Hensel division). len(q) must be
// len(x)-len(y)+1 and scratch needs len(x) limbs. If y does not divide x
// the result is unspecified.
func DivExact(q, x, y, scratch []Limb) {
	switch {
	case len(y) == 0 || y[0]&1 == 0:
		apperrors.Precondition("DivExact", "divisor must be odd")
	case len(x) < len(y):
		apperrors.Precondition("DivExact", "dividend shorter than divisor")
	}
	apperrors.CheckLen("DivExact", len(q), len(x)-len(y)+1)
	r := scratch[:len(x)]
	copy(r, x)
	inv := InvertOdd(y[0])
	for i := range q {
		qi := r[i] * inv
		q[i] = qi
		end := i + len(y)
		b := SubMulVVW(r[i:end], y, qi)
		if end < len(r) {
			SubVW(r[end:], r[end:], b)
		}
	}
}
