//go:build !limb32

package limb

import "math/bits"

// Limb is one base-2^64 digit of a magnitude.
type Limb = uint64

// Width is the number of bits in a Limb.
const Width = 64

// AddWW returns x + y + c and the carry out. c must be 0 or 1.
func AddWW(x, y, c Limb) (sum, carry Limb) { return bits.Add64(x, y, c) }

// SubWW returns x - y - b and the borrow out. b must be 0 or 1.
func SubWW(x, y, b Limb) (diff, borrow Limb) { return bits.Sub64(x, y, b) }

// MulWW returns the double-width product x*y.
func MulWW(x, y Limb) (hi, lo Limb) { return bits.Mul64(x, y) }

// DivWW divides hi:lo by y. hi must be less than y.
func DivWW(hi, lo, y Limb) (q, r Limb) { return bits.Div64(hi, lo, y) }

// LeadingZeros returns the number of leading zero bits in x.
func LeadingZeros(x Limb) uint { return uint(bits.LeadingZeros64(x)) }

// TrailingZeros returns the number of trailing zero bits in x.
func TrailingZeros(x Limb) uint { return uint(bits.TrailingZeros64(x)) }

// Len returns the minimum number of bits needed to represent x.
func Len(x Limb) int { return bits.Len64(x) }

// FromUint64 splits v into limbs, least significant first, without trimming.
func FromUint64(v uint64) [1]Limb { return [1]Limb{v} }
