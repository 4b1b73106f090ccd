package rounding

import (
	"math"

	apperrors "github.com/agbru/bignum/internal/errors"
)

// DivRoundUint64 returns x/d rounded per m.
func DivRoundUint64(x, d uint64, m Mode) (uint64, Ordering, error) {
	if d == 0 {
		return 0, Equal, apperrors.NewArithmeticError("DivRoundUint64", apperrors.DivisionByZero)
	}
	q, r := x/d, x%d
	up, o, ok := Decide(m, r != 0, compareHalf(r, d), q&1 == 1)
	if !ok {
		return 0, Equal, apperrors.NewArithmeticError("DivRoundUint64", apperrors.Inexact)
	}
	if up {
		q++
	}
	return q, o, nil
}

// CeilDiv returns ⌈x/d⌉ for d > 0.
func CeilDiv(x, d int) int {
	q, _, _ := DivRoundUint64(uint64(x), uint64(d), Ceiling)
	return int(q)
}

// compareHalf compares r with d/2 without overflow.
func compareHalf(r, d uint64) Ordering {
	switch rest := d - r; {
	case r < rest:
		return Less
	case r > rest:
		return Greater
	}
	return Equal
}

// ShrRoundUint64 returns x / 2^s rounded per m.
func ShrRoundUint64(x uint64, s uint, m Mode) (uint64, Ordering, error) {
	if s == 0 {
		return x, Equal, nil
	}
	var q, r uint64
	var half Ordering
	switch {
	case s > 64:
		q, r, half = 0, x, Less
	case s == 64:
		q, r = 0, x
		half = compareBit(r, 63)
	default:
		q, r = x>>s, x&(1<<s-1)
		half = compareBit(r, s-1)
	}
	up, o, ok := Decide(m, r != 0, half, q&1 == 1)
	if !ok {
		return 0, Equal, apperrors.NewArithmeticError("ShrRoundUint64", apperrors.Inexact)
	}
	if up {
		q++
	}
	return q, o, nil
}

// compareBit compares r (r < 2^(b+1)) with 2^b.
func compareBit(r uint64, b uint) Ordering {
	h := uint64(1) << b
	switch {
	case r < h:
		return Less
	case r > h:
		return Greater
	}
	return Equal
}

func magnitude(x int64) (uint64, bool) {
	if x < 0 {
		return uint64(^x) + 1, true
	}
	return uint64(x), false
}

func signed(op string, mag uint64, neg bool) (int64, error) {
	if neg {
		if mag > 1<<63 {
			return 0, apperrors.NewArithmeticError(op, apperrors.Overflow)
		}
		return int64(-mag), nil
	}
	if mag > math.MaxInt64 {
		return 0, apperrors.NewArithmeticError(op, apperrors.Overflow)
	}
	return int64(mag), nil
}

// DivRoundInt64 returns x/d rounded per m, with Floor and Ceiling taken
// relative to the signed quotient.
func DivRoundInt64(x, d int64, m Mode) (int64, Ordering, error) {
	ux, nx := magnitude(x)
	ud, nd := magnitude(d)
	neg := nx != nd
	mm := m
	if neg {
		mm = m.Neg()
	}
	q, o, err := DivRoundUint64(ux, ud, mm)
	if err != nil {
		return 0, Equal, apperrors.WrapError(err, "DivRoundInt64")
	}
	v, err := signed("DivRoundInt64", q, neg)
	if err != nil {
		return 0, Equal, err
	}
	if neg {
		o = o.Neg()
	}
	return v, o, nil
}

// ShrRoundInt64 returns x / 2^s rounded per m. A negative s shifts left
// and must not overflow.
func ShrRoundInt64(x int64, s int, m Mode) (int64, Ordering, error) {
	if s < 0 {
		if s <= -64 {
			if x == 0 {
				return 0, Equal, nil
			}
			return 0, Equal, apperrors.NewArithmeticError("ShrRoundInt64", apperrors.Overflow)
		}
		v := x << uint(-s)
		if v>>uint(-s) != x {
			return 0, Equal, apperrors.NewArithmeticError("ShrRoundInt64", apperrors.Overflow)
		}
		return v, Equal, nil
	}
	ux, neg := magnitude(x)
	mm := m
	if neg {
		mm = m.Neg()
	}
	q, o, err := ShrRoundUint64(ux, uint(s), mm)
	if err != nil {
		return 0, Equal, apperrors.WrapError(err, "ShrRoundInt64")
	}
	v, err := signed("ShrRoundInt64", q, neg)
	if err != nil {
		return 0, Equal, err
	}
	if neg {
		o = o.Neg()
	}
	return v, o, nil
}
