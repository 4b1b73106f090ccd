package limb

import (
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/rounding"
)

// ShrRoundLen returns the output length ShrRound needs for an x of n limbs.
func ShrRoundLen(n int, s uint) int {
	q := n - int(s/Width)
	if q < 0 {
		q = 0
	}
	return q + 1
}

// ShrRound sets z = x / 2^s rounded per m and returns the normalized
// length of z and how it compares with the exact quotient. ok is false
// when m is Exact and bits would be lost; z is then left unspecified.
// len(z) must be at least ShrRoundLen(len(x), s). z may equal x when
// len(x) >= ShrRoundLen(len(x), s).
func ShrRound(z, x []Limb, s uint, m rounding.Mode) (n int, o rounding.Ordering, ok bool) {
	x = Norm(x)
	if want := ShrRoundLen(len(x), s); len(z) < want {
		panic(apperrors.LengthError{Op: "ShrRound", Want: want, Got: len(z)})
	}
	if s == 0 {
		copy(z, x)
		clear(z[len(x):])
		return len(x), rounding.Equal, true
	}
	half := rounding.Less
	inexact := false
	if Bit(x, s-1) != 0 {
		inexact = true
		half = rounding.Equal
		if AnyBitBelow(x, s-1) {
			half = rounding.Greater
		}
	} else {
		inexact = AnyBitBelow(x, s-1)
	}
	odd := Bit(x, s) != 0

	up, o, ok := rounding.Decide(m, inexact, half, odd)
	if !ok {
		return 0, rounding.Equal, false
	}
	n = ShiftRight(z, x, s)
	if up {
		c := AddVW(z[:n], z[:n], 1)
		if c != 0 {
			z[n] = c
			n++
		}
	}
	return n, o, true
}

// DivRoundW sets z = x / d rounded per m for a single-limb divisor and
// returns the normalized length of z and the ordering. ok is false when m
// is Exact and d does not divide x. len(z) must be at least len(x); z may
// equal x. d must be non-zero.
func DivRoundW(z, x []Limb, d Limb, m rounding.Mode) (n int, o rounding.Ordering, ok bool) {
	if d == 0 {
		apperrors.Precondition("DivRoundW", "zero divisor")
	}
	x = Norm(x)
	if len(z) < len(x) {
		panic(apperrors.LengthError{Op: "DivRoundW", Want: len(x), Got: len(z)})
	}
	var r Limb
	if len(x) > 0 {
		r = DivW(z[:len(x)], x, d)
	}
	clear(z[len(x):])
	half := rounding.Equal
	switch rest := d - r; {
	case r < rest:
		half = rounding.Less
	case r > rest:
		half = rounding.Greater
	}
	odd := len(x) > 0 && z[0]&1 == 1
	up, o, ok := rounding.Decide(m, r != 0, half, odd)
	if !ok {
		return 0, rounding.Equal, false
	}
	if up {
		// q+1 <= x because d >= 2 whenever a remainder exists.
		AddVW(z[:len(x)], z[:len(x)], 1)
	}
	return len(Norm(z[:len(x)])), o, true
}
