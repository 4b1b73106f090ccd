// Package natural provides arbitrary-precision non-negative integers on
// top of the limb kernel.
//
// A Natural is an immutable value. Values below one limb are held inline;
// larger values keep a normalized limb slice that is never written after
// construction, so copies may share it freely. The zero value is 0.
package natural

import (
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Errors returned by arithmetic operations. Match them with errors.Is.
var (
	ErrDivisionByZero = apperrors.ErrDivisionByZero
	ErrInexact        = apperrors.ErrInexact
	ErrOverflow       = apperrors.ErrOverflow
	ErrNegativeResult = apperrors.ErrNegativeResult
	ErrNegativeRoot   = apperrors.ErrNegativeRoot
)

// Natural is an arbitrary-precision non-negative integer.
type Natural struct {
	small limb.Limb
	// large is nil for the inline form and otherwise normalized with at
	// least two limbs.
	large []limb.Limb
}

// fromLimbs takes ownership of x and returns its canonical form.
func fromLimbs(x []limb.Limb) Natural {
	x = limb.Norm(x)
	switch len(x) {
	case 0:
		return Natural{}
	case 1:
		return Natural{small: x[0]}
	}
	return Natural{large: x[:len(x):len(x)]}
}

// limbs returns the normalized limbs of x. The result must not be
// modified.
func (x Natural) limbs() []limb.Limb {
	if x.large != nil {
		return x.large
	}
	if x.small == 0 {
		return nil
	}
	return []limb.Limb{x.small}
}

// FromUint64 returns v as a Natural.
func FromUint64(v uint64) Natural {
	w := limb.FromUint64(v)
	return fromLimbs(append([]limb.Limb(nil), w[:]...))
}

// FromUint32 returns v as a Natural.
func FromUint32(v uint32) Natural { return Natural{small: limb.Limb(v)} }

// Uint64 returns x as a uint64, or ErrOverflow if it does not fit.
func (x Natural) Uint64() (uint64, error) {
	if x.BitLen() > 64 {
		return 0, apperrors.NewArithmeticError("Uint64", apperrors.Overflow)
	}
	var v uint64
	for i, w := range x.limbs() {
		v |= uint64(w) << (uint(i) * limb.Width)
	}
	return v, nil
}

// Uint32 returns x as a uint32, or ErrOverflow if it does not fit.
func (x Natural) Uint32() (uint32, error) {
	if x.BitLen() > 32 {
		return 0, apperrors.NewArithmeticError("Uint32", apperrors.Overflow)
	}
	return uint32(x.small), nil
}

// IsZero reports whether x == 0.
func (x Natural) IsZero() bool { return x.large == nil && x.small == 0 }

// IsInline reports whether x is held in the inline single-limb form.
func (x Natural) IsInline() bool { return x.large == nil }

// LimbLen returns the number of limbs of x; 0 for zero.
func (x Natural) LimbLen() int { return len(x.limbs()) }

// BitLen returns the length of x in bits; 0 for zero.
func (x Natural) BitLen() int { return limb.BitLen(x.limbs()) }

// Bit returns bit i of x.
func (x Natural) Bit(i uint) uint { return uint(limb.Bit(x.limbs(), i)) }

// TrailingZeroBits returns the number of consecutive low zero bits of x.
// It is 0 for zero.
func (x Natural) TrailingZeroBits() uint { return limb.TrailingZeroBits(x.limbs()) }

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x Natural) Cmp(y Natural) int {
	if x.large == nil && y.large == nil {
		switch {
		case x.small < y.small:
			return -1
		case x.small > y.small:
			return 1
		}
		return 0
	}
	return limb.Cmp(x.limbs(), y.limbs())
}

// Equal reports whether x == y.
func (x Natural) Equal(y Natural) bool { return x.Cmp(y) == 0 }

// PadLimbsLow returns x·B^k, inserting k zero limbs at the low end.
func (x Natural) PadLimbsLow(k int) Natural {
	if k < 0 {
		apperrors.Precondition("PadLimbsLow", "negative limb count %d", k)
	}
	xl := x.limbs()
	if k == 0 || len(xl) == 0 {
		return x
	}
	z := make([]limb.Limb, k+len(xl))
	copy(z[k:], xl)
	return fromLimbs(z)
}

// DeleteLimbsLow returns x / B^k, dropping the k low limbs.
func (x Natural) DeleteLimbsLow(k int) Natural {
	if k < 0 {
		apperrors.Precondition("DeleteLimbsLow", "negative limb count %d", k)
	}
	xl := x.limbs()
	if k >= len(xl) {
		return Natural{}
	}
	return fromLimbs(append([]limb.Limb(nil), xl[k:]...))
}
