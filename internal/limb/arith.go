// This file provides the portable vector primitives every algorithm in the
// kernel is written against. Unless stated otherwise z may equal x (same
// slice, same offset) but must not partially overlap any input.

package limb

import apperrors "github.com/agbru/bignum/internal/errors"

// Max is the largest Limb value.
const Max Limb = ^Limb(0)

// PerUint64 is the number of limbs needed to hold a uint64.
const PerUint64 = 64 / Width

// ─────────────────────────────────────────────────────────────────────────────
// Addition and subtraction
// ─────────────────────────────────────────────────────────────────────────────

// AddVV sets z = x + y for vectors of equal length and returns the carry.
func AddVV(z, x, y []Limb) (c Limb) {
	apperrors.CheckLen("AddVV", len(x), len(z))
	apperrors.CheckLen("AddVV", len(y), len(z))
	for i := range z {
		z[i], c = AddWW(x[i], y[i], c)
	}
	return c
}

// SubVV sets z = x - y for vectors of equal length and returns the borrow.
func SubVV(z, x, y []Limb) (b Limb) {
	apperrors.CheckLen("SubVV", len(x), len(z))
	apperrors.CheckLen("SubVV", len(y), len(z))
	for i := range z {
		z[i], b = SubWW(x[i], y[i], b)
	}
	return b
}

// AddVW sets z = x + y and returns the carry.
func AddVW(z, x []Limb, y Limb) (c Limb) {
	apperrors.CheckLen("AddVW", len(x), len(z))
	c = y
	for i := range z {
		if c == 0 {
			copy(z[i:], x[i:])
			return 0
		}
		z[i], c = AddWW(x[i], c, 0)
	}
	return c
}

// SubVW sets z = x - y and returns the borrow.
func SubVW(z, x []Limb, y Limb) (b Limb) {
	apperrors.CheckLen("SubVW", len(x), len(z))
	b = y
	for i := range z {
		if b == 0 {
			copy(z[i:], x[i:])
			return 0
		}
		z[i], b = SubWW(x[i], b, 0)
	}
	return b
}

// Add sets z = x + y where len(z) == len(x) >= len(y), and returns the carry.
func Add(z, x, y []Limb) Limb {
	if len(y) > len(x) {
		apperrors.Precondition("Add", "len(y)=%d exceeds len(x)=%d", len(y), len(x))
	}
	apperrors.CheckLen("Add", len(z), len(x))
	n := len(y)
	c := AddVV(z[:n], x[:n], y)
	return AddVW(z[n:], x[n:], c)
}

// Sub sets z = x - y where len(z) == len(x) >= len(y), and returns the borrow.
func Sub(z, x, y []Limb) Limb {
	if len(y) > len(x) {
		apperrors.Precondition("Sub", "len(y)=%d exceeds len(x)=%d", len(y), len(x))
	}
	apperrors.CheckLen("Sub", len(z), len(x))
	n := len(y)
	b := SubVV(z[:n], x[:n], y)
	return SubVW(z[n:], x[n:], b)
}

// AddTo adds x into z starting at limb offset off and propagates the
// carry through the rest of z. Limbs of x beyond the end of z must be
// zero, as must the final carry: callers use it to accumulate partial
// products whose exact sum is known to fit in z.
func AddTo(z, x []Limb, off int) {
	x = Norm(x)
	if off+len(x) > len(z) {
		apperrors.Precondition("AddTo", "addend of %d limbs at offset %d overflows %d limbs", len(x), off, len(z))
	}
	end := off + len(x)
	c := AddVV(z[off:end], z[off:end], x)
	if c != 0 && AddVW(z[end:], z[end:], c) != 0 {
		apperrors.Precondition("AddTo", "carry out of %d limbs", len(z))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Shifts
// ─────────────────────────────────────────────────────────────────────────────

// ShlVU sets z = x << s for 0 <= s < Width and returns the bits shifted
// out of the top limb.
func ShlVU(z, x []Limb, s uint) (c Limb) {
	apperrors.CheckLen("ShlVU", len(x), len(z))
	n := len(z)
	if n == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	ŝ := Width - s
	c = x[n-1] >> ŝ
	for i := n - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return c
}

// ShrVU sets z = x >> s for 0 <= s < Width and returns the bits shifted
// out of the bottom limb, left aligned.
func ShrVU(z, x []Limb, s uint) (c Limb) {
	apperrors.CheckLen("ShrVU", len(x), len(z))
	n := len(z)
	if n == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	ŝ := Width - s
	c = x[0] << ŝ
	for i := 0; i < n-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[n-1] = x[n-1] >> s
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Multiplication by a single limb
// ─────────────────────────────────────────────────────────────────────────────

// MulAddVWW sets z = x*y + r and returns the high limb.
func MulAddVWW(z, x []Limb, y, r Limb) (c Limb) {
	apperrors.CheckLen("MulAddVWW", len(x), len(z))
	c = r
	for i := range z {
		hi, lo := MulWW(x[i], y)
		var cc Limb
		z[i], cc = AddWW(lo, c, 0)
		c = hi + cc
	}
	return c
}

// AddMulVVW sets z += x*y and returns the high limb.
func AddMulVVW(z, x []Limb, y Limb) (c Limb) {
	apperrors.CheckLen("AddMulVVW", len(x), len(z))
	for i := range z {
		hi, lo := MulWW(x[i], y)
		var cc Limb
		lo, cc = AddWW(lo, z[i], 0)
		hi += cc
		z[i], cc = AddWW(lo, c, 0)
		c = hi + cc
	}
	return c
}

// SubMulVVW sets z -= x*y and returns the limb still to be subtracted
// from the position just above z.
func SubMulVVW(z, x []Limb, y Limb) (c Limb) {
	apperrors.CheckLen("SubMulVVW", len(x), len(z))
	for i := range z {
		hi, lo := MulWW(x[i], y)
		var cc Limb
		lo, cc = AddWW(lo, c, 0)
		hi += cc
		z[i], cc = SubWW(z[i], lo, 0)
		c = hi + cc
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Normalization and comparison
// ─────────────────────────────────────────────────────────────────────────────

// Norm returns x without its most significant zero limbs.
func Norm(x []Limb) []Limb {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

// IsZero reports whether every limb of x is zero.
func IsZero(x []Limb) bool {
	for _, v := range x {
		if v != 0 {
			return false
		}
	}
	return true
}

// CmpVV compares two vectors of equal length as numbers.
func CmpVV(x, y []Limb) int {
	apperrors.CheckLen("CmpVV", len(y), len(x))
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp compares x and y as numbers. Neither needs to be normalized.
func Cmp(x, y []Limb) int {
	x, y = Norm(x), Norm(y)
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return CmpVV(x, y)
}

// BitLen returns the bit length of the number held in x.
func BitLen(x []Limb) int {
	x = Norm(x)
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*Width + Len(x[len(x)-1])
}

// Bit returns bit i of x, counting from the least significant.
func Bit(x []Limb, i uint) Limb {
	w := i / Width
	if w >= uint(len(x)) {
		return 0
	}
	return x[w] >> (i % Width) & 1
}

// AnyBitBelow reports whether any bit of x below position i is set.
func AnyBitBelow(x []Limb, i uint) bool {
	w := i / Width
	if w > uint(len(x)) {
		w = uint(len(x))
	}
	for j := uint(0); j < w; j++ {
		if x[j] != 0 {
			return true
		}
	}
	if w < uint(len(x)) {
		if b := i % Width; b > 0 && x[w]<<(Width-b) != 0 {
			return true
		}
	}
	return false
}

// TrailingZeroBits returns the number of trailing zero bits of x, or 0
// when x is zero.
func TrailingZeroBits(x []Limb) uint {
	for i, v := range x {
		if v != 0 {
			return uint(i)*Width + TrailingZeros(v)
		}
	}
	return 0
}

// ShiftLeft sets z = x << s for any s and returns z's used length.
// len(z) must be at least len(x) + s/Width + 1. z must not alias x.
func ShiftLeft(z, x []Limb, s uint) int {
	ws, bs := int(s/Width), s%Width
	n := len(x) + ws + 1
	if len(z) < n {
		panic(apperrors.LengthError{Op: "ShiftLeft", Want: n, Got: len(z)})
	}
	clear(z[:ws])
	z[ws+len(x)] = ShlVU(z[ws:ws+len(x)], x, bs)
	clear(z[n:])
	return len(Norm(z[:n]))
}

// ShiftRight sets z = x >> s for any s and returns z's used length.
// len(z) must be at least len(x) - s/Width when that is positive. z may
// equal x.
func ShiftRight(z, x []Limb, s uint) int {
	ws, bs := int(s/Width), s%Width
	if ws >= len(x) {
		clear(z)
		return 0
	}
	n := len(x) - ws
	if len(z) < n {
		panic(apperrors.LengthError{Op: "ShiftRight", Want: n, Got: len(z)})
	}
	if bs == 0 {
		copy(z[:n], x[ws:])
	} else {
		ShrVU(z[:n], x[ws:], bs)
	}
	clear(z[n:])
	return len(Norm(z[:n]))
}
