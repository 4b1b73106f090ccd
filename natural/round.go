package natural

import (
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
	"github.com/agbru/bignum/rounding"
)

// ShrRound returns x / 2^s rounded per m and how the result compares with
// the exact quotient. Exact fails with ErrInexact when bits would be lost.
func (x Natural) ShrRound(s uint, m rounding.Mode) (Natural, rounding.Ordering, error) {
	xl := x.limbs()
	z := make([]limb.Limb, limb.ShrRoundLen(len(xl), s))
	n, o, ok := limb.ShrRound(z, xl, s, m)
	if !ok {
		return Natural{}, rounding.Equal, apperrors.NewArithmeticError("ShrRound", apperrors.Inexact)
	}
	return fromLimbs(z[:n]), o, nil
}

// ShrRoundAssign sets *x to ShrRound(s, m). On error *x is unchanged.
func (x *Natural) ShrRoundAssign(s uint, m rounding.Mode) (rounding.Ordering, error) {
	z, o, err := x.ShrRound(s, m)
	if err != nil {
		return o, err
	}
	*x = z
	return o, nil
}

// DivRound returns x / d rounded per m and how the result compares with
// the exact quotient. Nearest resolves ties to the even quotient.
func (x Natural) DivRound(d Natural, m rounding.Mode) (Natural, rounding.Ordering, error) {
	if d.IsZero() {
		return Natural{}, rounding.Equal, apperrors.NewArithmeticError("DivRound", apperrors.DivisionByZero)
	}
	if d.large == nil {
		xl := x.limbs()
		z := make([]limb.Limb, len(xl))
		n, o, ok := limb.DivRoundW(z, xl, d.small, m)
		if !ok {
			return Natural{}, rounding.Equal, apperrors.NewArithmeticError("DivRound", apperrors.Inexact)
		}
		return fromLimbs(z[:n]), o, nil
	}

	q, r, err := x.DivMod(d)
	if err != nil {
		return Natural{}, rounding.Equal, err
	}
	up, o, ok := rounding.Decide(m, !r.IsZero(), rounding.Ordering(r.Shl(1).Cmp(d)), q.Bit(0) == 1)
	if !ok {
		return Natural{}, rounding.Equal, apperrors.NewArithmeticError("DivRound", apperrors.Inexact)
	}
	if up {
		q = q.Add(Natural{small: 1})
	}
	return q, o, nil
}

// DivRoundAssign sets *x to DivRound(d, m). On error *x is unchanged.
func (x *Natural) DivRoundAssign(d Natural, m rounding.Mode) (rounding.Ordering, error) {
	z, o, err := x.DivRound(d, m)
	if err != nil {
		return o, err
	}
	*x = z
	return o, nil
}

// DivRoundSigned divides the signed value (xNeg, x) by (dNeg, d) with m
// applied to the signed quotient. It returns the magnitude and sign of
// the result; zero is never negative.
func DivRoundSigned(x Natural, xNeg bool, d Natural, dNeg bool, m rounding.Mode) (q Natural, neg bool, o rounding.Ordering, err error) {
	neg = xNeg != dNeg && !x.IsZero()
	mm := m
	if neg {
		mm = m.Neg()
	}
	q, o, err = x.DivRound(d, mm)
	if err != nil {
		return Natural{}, false, rounding.Equal, apperrors.WrapError(err, "DivRoundSigned")
	}
	return signedResult(q, neg, o)
}

// ShrRoundSigned shifts the signed value (neg, x) right by s with m
// applied to the signed result. A negative s shifts left exactly.
func ShrRoundSigned(x Natural, neg bool, s int, m rounding.Mode) (Natural, bool, rounding.Ordering, error) {
	neg = neg && !x.IsZero()
	if s < 0 {
		return x.Shl(uint(-s)), neg, rounding.Equal, nil
	}
	mm := m
	if neg {
		mm = m.Neg()
	}
	z, o, err := x.ShrRound(uint(s), mm)
	if err != nil {
		return Natural{}, false, rounding.Equal, apperrors.WrapError(err, "ShrRoundSigned")
	}
	return signedResult(z, neg, o)
}

func signedResult(z Natural, neg bool, o rounding.Ordering) (Natural, bool, rounding.Ordering, error) {
	if neg {
		o = o.Neg()
	}
	return z, neg && !z.IsZero(), o, nil
}

// RoundToMultiple returns the multiple of d nearest to x in the direction
// given by m.
func (x Natural) RoundToMultiple(d Natural, m rounding.Mode) (Natural, rounding.Ordering, error) {
	if d.IsZero() {
		if x.IsZero() {
			return x, rounding.Equal, nil
		}
		return Natural{}, rounding.Equal, apperrors.NewArithmeticError("RoundToMultiple", apperrors.DivisionByZero)
	}
	q, o, err := x.DivRound(d, m)
	if err != nil {
		return Natural{}, rounding.Equal, apperrors.WrapError(err, "RoundToMultiple")
	}
	return q.Mul(d), o, nil
}

// RoundToMultipleOfPowerOf2 returns the multiple of 2^k selected by m.
func (x Natural) RoundToMultipleOfPowerOf2(k uint, m rounding.Mode) (Natural, rounding.Ordering, error) {
	q, o, err := x.ShrRound(k, m)
	if err != nil {
		return Natural{}, rounding.Equal, apperrors.WrapError(err, "RoundToMultipleOfPowerOf2")
	}
	return q.Shl(k), o, nil
}
