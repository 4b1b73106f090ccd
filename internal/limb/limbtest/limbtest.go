// Package limbtest converts between limb vectors and math/big values and
// generates operands for tests that use math/big as an oracle.
package limbtest

import (
	"math/big"
	"math/rand/v2"

	"github.com/agbru/bignum/internal/limb"
)

// ToBig returns x as a big.Int.
func ToBig(x []limb.Limb) *big.Int {
	z := new(big.Int)
	t := new(big.Int)
	for i := len(x) - 1; i >= 0; i-- {
		z.Lsh(z, limb.Width)
		z.Or(z, t.SetUint64(uint64(x[i])))
	}
	return z
}

// FromBig returns the normalized limbs of a non-negative x.
func FromBig(x *big.Int) []limb.Limb {
	var out []limb.Limb
	t := new(big.Int).Set(x)
	mask := new(big.Int).SetUint64(uint64(limb.Max))
	w := new(big.Int)
	for t.Sign() > 0 {
		w.And(t, mask)
		out = append(out, limb.Limb(w.Uint64()))
		t.Rsh(t, limb.Width)
	}
	return out
}

// FromBigLen returns x in exactly n limbs, zero-padded.
func FromBigLen(x *big.Int, n int) []limb.Limb {
	out := make([]limb.Limb, n)
	copy(out, FromBig(x))
	return out
}

// Random returns n random limbs. Patterns vary between dense random
// limbs, all-ones runs and sparse values so carry chains get exercised.
func Random(rng *rand.Rand, n int) []limb.Limb {
	x := make([]limb.Limb, n)
	switch rng.IntN(4) {
	case 0:
		for i := range x {
			x[i] = limb.Max
		}
	case 1:
		for i := range x {
			if rng.IntN(4) == 0 {
				x[i] = limb.Limb(rng.Uint64())
			}
		}
	default:
		for i := range x {
			x[i] = limb.Limb(rng.Uint64())
		}
	}
	return x
}

// RandomNonZeroTop is Random with a non-zero most significant limb.
func RandomNonZeroTop(rng *rand.Rand, n int) []limb.Limb {
	x := Random(rng, n)
	if n > 0 && x[n-1] == 0 {
		x[n-1] = limb.Limb(rng.Uint64()) | 1
	}
	return x
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
