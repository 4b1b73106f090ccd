package bigfft

import (
	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/limb"
)

// fermat is a residue modulo 2^N+1, N = n·Width, stored in n+1 limbs.
// Normalized values are at most 2^N, so the top limb is 0 or 1 and is 1
// only for 2^N itself (that is, -1).
type fermat []limb.Limb

// norm folds the top limb back into range: c·2^N ≡ -c.
func (z fermat) norm() {
	n := len(z) - 1
	c := z[n]
	if c == 0 {
		return
	}
	z[n] = 0
	if limb.SubVW(z[:n], z[:n], c) != 0 {
		// The low part wrapped by 2^N ≡ -1; add it back.
		z[n] = limb.AddVW(z[:n], z[:n], 1)
	}
}

// Add sets z = x + y. x and y must be normalized.
func (z fermat) Add(x, y fermat) fermat {
	limb.AddVV(z, x, y)
	z.norm()
	return z
}

// Sub sets z = x - y. x and y must be normalized.
func (z fermat) Sub(x, y fermat) fermat {
	n := len(x) - 1
	if limb.SubVV(z, x, y) != 0 {
		// z[:n] holds x-y+2^N; add 1 to turn 2^N into -1.
		z[n] = limb.AddVW(z[:n], z[:n], 1)
	}
	z.norm()
	return z
}

// neg sets z = -x. x must be normalized; z may equal x.
func (z fermat) neg(x fermat) {
	n := len(x) - 1
	switch {
	case limb.IsZero(x):
		clear(z)
	case x[n] != 0:
		clear(z)
		z[0] = 1
	default:
		for i := range n {
			z[i] = ^x[i]
		}
		z[n] = limb.AddVW(z[:n], z[:n], 2)
	}
}

// setMod sets z = t mod 2^N+1 for t of any length, using B^n ≡ -1.
func (z fermat) setMod(t []limb.Limb) {
	n := len(z) - 1
	clear(z)
	d := 0
	for j, off := 0, 0; off < len(t); j, off = j+1, off+n {
		c := t[off:min(off+n, len(t))]
		if j%2 == 0 {
			d -= int(limb.Add(z[:n], z[:n], c))
		} else {
			d += int(limb.Sub(z[:n], z[:n], c))
		}
	}
	if d >= 0 {
		z[n] = limb.AddVW(z[:n], z[:n], limb.Limb(d))
	} else {
		z[n] = limb.Limb(-d)
	}
	z.norm()
}

// Shift sets z = x·2^s for any signed s. tmp needs 2n+2 limbs; z may
// equal x.
func (z fermat) Shift(x fermat, s int, tmp []limb.Limb) {
	n := len(x) - 1
	bits := n * limb.Width
	s %= 2 * bits
	if s < 0 {
		s += 2 * bits
	}
	neg := s >= bits
	if neg {
		s -= bits
	}
	t := tmp[:2*n+2]
	limb.ShiftLeft(t, x, uint(s))
	z.setMod(t)
	if neg {
		z.neg(z)
	}
}

// Mul sets z = x·y. buf needs 2n limbs and holds the full product, which
// is formed by mul. z may equal x or y.
func (z fermat) Mul(x, y fermat, buf []limb.Limb, mul Multiplier, a *arena.Arena) {
	n := len(x) - 1
	switch {
	case x[n] != 0:
		z.neg(y)
	case y[n] != 0:
		z.neg(x)
	default:
		t := buf[:2*n]
		mul.MulInto(t, x[:n], y[:n], a)
		z.setMod(t)
	}
}

// Sqr sets z = x·x. z may equal x.
func (z fermat) Sqr(x fermat, buf []limb.Limb, mul Multiplier, a *arena.Arena) {
	n := len(x) - 1
	if x[n] != 0 {
		clear(z)
		z[0] = 1
		return
	}
	t := buf[:2*n]
	mul.SqrInto(t, x[:n], a)
	z.setMod(t)
}

// ModBnp1 sets z = t mod B^rn+1 with rn = len(z)-1. The result is
// normalized: at most B^rn.
func ModBnp1(z, t []limb.Limb) { fermat(z).setMod(t) }

// NegBnp1 sets z = -x mod B^rn+1 for a normalized x.
func NegBnp1(z, x []limb.Limb) { fermat(z).neg(x) }

// SubBnp1 sets z = x - y mod B^rn+1 for normalized x and y.
func SubBnp1(z, x, y []limb.Limb) { fermat(z).Sub(x, y) }

// FoldBnm1 sets z = t mod B^rn-1 with rn = len(z), for t of any length.
// A zero residue may come out as either 0 or B^rn-1.
func FoldBnm1(z, t []limb.Limb) {
	clear(z)
	var c limb.Limb
	for off := 0; off < len(t); off += len(z) {
		c += limb.Add(z, z, t[off:min(off+len(z), len(t))])
	}
	for c != 0 {
		c = limb.AddVW(z, z, c)
	}
}
