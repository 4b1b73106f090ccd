package mul

import (
	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/bigfft"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Products modulo B^rn-1 split recursively along
//
//	B^rn - 1 = (B^h - 1)(B^h + 1),  h = rn/2,
//
// and recombine the two residues with the CRT. Residues modulo B^rn-1
// are semi-normalized: zero may come out as 0 or as B^rn-1. Residues
// modulo B^rn+1 take rn+1 limbs and are normalized (at most B^rn).

type modPath uint8

const (
	modFull modPath = iota
	modSplit
	modTransform
)

func (s *Selector) transformThreshold(sqr bool) int {
	if sqr {
		return s.t.SqrTransform
	}
	return s.t.Transform
}

func (s *Selector) bnm1Path(rn int, sqr bool) (modPath, bigfft.Plan) {
	if rn >= s.transformThreshold(sqr) {
		if p, ok := bigfft.PlanModulus(rn); ok {
			return modTransform, p
		}
	}
	if rn%2 == 0 && rn >= bigfft.MinLen {
		return modSplit, bigfft.Plan{}
	}
	return modFull, bigfft.Plan{}
}

func (s *Selector) bnp1Path(rn int, sqr bool) (modPath, bigfft.Plan) {
	if rn >= s.transformThreshold(sqr) {
		if p, ok := bigfft.PlanModulus(rn); ok {
			return modTransform, p
		}
	}
	return modFull, bigfft.Plan{}
}

// full sets z = x*y, or x*x when sqr, for len(z) == len(x)+len(y).
func (s *Selector) full(z, x, y []limb.Limb, sqr bool, a *arena.Arena) {
	if sqr {
		s.sqrFull(z, x, a)
		return
	}
	s.MulInto(z, x, y, a)
}

func (s *Selector) fullScratch(n, m int, sqr bool) int {
	if sqr {
		return s.sqrFullScratch(n)
	}
	return s.MulScratch(n, m)
}

// mulModBnm1 sets z = x*y mod B^rn-1 with rn = len(z). len(x) and len(y)
// must not exceed rn; y is ignored when sqr.
func (s *Selector) mulModBnm1(z, x, y []limb.Limb, sqr bool, a *arena.Arena) {
	rn := len(z)
	if sqr {
		y = x
	}
	path, p := s.bnm1Path(rn, sqr)
	switch path {
	case modTransform:
		if sqr {
			bigfft.SqrCyclic(z, x, p, s, a)
		} else {
			bigfft.MulCyclic(z, x, y, p, s, a)
		}
	case modSplit:
		s.bnm1Split(z, x, y, sqr, a)
	default:
		mark := a.Mark()
		defer a.Release(mark)
		t := a.Alloc(len(x) + len(y))
		s.full(t, x, y, sqr, a)
		bigfft.FoldBnm1(z, t)
	}
}

func bnm1SplitLocal(h int, sqr bool) int {
	if sqr {
		return 2*h + 2*(h+1)
	}
	return 3*h + 3*(h+1)
}

func (s *Selector) bnm1Scratch(rn, n, m int, sqr bool) int {
	path, p := s.bnm1Path(rn, sqr)
	switch path {
	case modTransform:
		return bigfft.Scratch(p, s, sqr, false)
	case modSplit:
		h := rn / 2
		return bnm1SplitLocal(h, sqr) + max(s.bnm1Scratch(h, h, h, sqr), s.bnp1Scratch(h, sqr))
	}
	return n + m + s.fullScratch(n, m, sqr)
}

// bnm1Split computes the residues modulo B^h-1 and B^h+1 and recombines
// them as z = zp + (B^h+1)·k with k = (zm - zp)/2 mod B^h-1, since
// B^h+1 ≡ 2 modulo B^h-1.
func (s *Selector) bnm1Split(z, x, y []limb.Limb, sqr bool, a *arena.Arena) {
	rn := len(z)
	h := rn / 2

	mark := a.Mark()
	defer a.Release(mark)
	buf := a.Alloc(bnm1SplitLocal(h, sqr))
	take := func(n int) []limb.Limb {
		t := buf[:n:n]
		buf = buf[n:]
		return t
	}
	xm, xp := take(h), take(h+1)
	zm, zp := take(h), take(h+1)
	ym, yp := xm, xp
	if !sqr {
		ym, yp = take(h), take(h+1)
	}

	bigfft.FoldBnm1(xm, x)
	bigfft.ModBnp1(xp, x)
	if !sqr {
		bigfft.FoldBnm1(ym, y)
		bigfft.ModBnp1(yp, y)
	}
	s.mulModBnm1(zm, xm, ym, sqr, a)
	s.mulModBnp1(zp, xp, yp, sqr, a)

	lo := z[:h]
	bigfft.FoldBnm1(lo, zp)
	if limb.SubVV(lo, zm, lo) != 0 {
		limb.SubVW(lo, lo, 1)
	}
	// Halving modulo B^h-1 is a one-bit rotation.
	c := limb.ShrVU(lo, lo, 1)
	lo[h-1] |= c

	copy(z[h:], lo)
	c = limb.Add(z, z, zp)
	for c != 0 {
		c = limb.AddVW(z, z, c)
	}
}

// mulModBnp1 sets z = x*y mod B^rn+1 with rn = len(z)-1. x and y have
// rn+1 limbs and are normalized; y is ignored when sqr.
func (s *Selector) mulModBnp1(z, x, y []limb.Limb, sqr bool, a *arena.Arena) {
	rn := len(z) - 1
	if sqr {
		y = x
	}
	switch {
	case x[rn] != 0 && sqr:
		clear(z)
		z[0] = 1
		return
	case x[rn] != 0:
		bigfft.NegBnp1(z, y)
		return
	case y[rn] != 0:
		bigfft.NegBnp1(z, x)
		return
	}

	path, p := s.bnp1Path(rn, sqr)
	if path == modTransform {
		if sqr {
			bigfft.SqrNegacyclic(z, x[:rn], p, s, a)
		} else {
			bigfft.MulNegacyclic(z, x[:rn], y[:rn], p, s, a)
		}
		return
	}
	mark := a.Mark()
	defer a.Release(mark)
	t := a.Alloc(2 * rn)
	s.full(t, x[:rn], y[:rn], sqr, a)
	bigfft.ModBnp1(z, t)
}

func (s *Selector) bnp1Scratch(rn int, sqr bool) int {
	path, p := s.bnp1Path(rn, sqr)
	if path == modTransform {
		return bigfft.Scratch(p, s, sqr, true)
	}
	return 2*rn + s.fullScratch(rn, rn, sqr)
}

// sqrViaMod squares x through a residue modulo B^rn-1 with rn >= 2n, a
// multiple of 32 so the CRT recursion splits several times.
func (s *Selector) sqrViaMod(z, x []limb.Limb, a *arena.Arena) {
	if limb.IsZero(x) {
		clear(z)
		return
	}
	rn := sqrModLen(len(x))
	mark := a.Mark()
	defer a.Release(mark)
	t := a.Alloc(rn)
	s.mulModBnm1(t, x, nil, true, a)
	copy(z, t)
}

func sqrModLen(n int) int { return (2*n + 31) &^ 31 }

func (s *Selector) sqrViaModScratch(n int) int {
	rn := sqrModLen(n)
	return rn + s.bnm1Scratch(rn, n, n, true)
}

// MulModBnm1 sets z = x*y mod B^rn-1 with rn = len(z) >= 1. len(x) and
// len(y) must not exceed rn. A zero residue may be returned as B^rn-1.
func (s *Selector) MulModBnm1(z, x, y []limb.Limb) {
	rn := len(z)
	if rn == 0 || len(x) > rn || len(y) > rn {
		apperrors.Precondition("MulModBnm1", "operands of %d and %d limbs for modulus length %d", len(x), len(y), rn)
	}
	checkOutput("MulModBnm1", z, x, y)
	a := arena.New(s.bnm1Scratch(rn, len(x), len(y), false))
	defer a.Free()
	s.mulModBnm1(z, x, y, false, a)
}

// SqrModBnm1 sets z = x*x mod B^rn-1 with rn = len(z) >= len(x).
func (s *Selector) SqrModBnm1(z, x []limb.Limb) {
	rn := len(z)
	if rn == 0 || len(x) > rn {
		apperrors.Precondition("SqrModBnm1", "operand of %d limbs for modulus length %d", len(x), rn)
	}
	checkOutput("SqrModBnm1", z, x)
	a := arena.New(s.bnm1Scratch(rn, len(x), len(x), true))
	defer a.Free()
	s.mulModBnm1(z, x, nil, true, a)
}

// MulModBnp1 sets z = x*y mod B^rn+1 with rn = len(z)-1 >= 1. x and y may
// have any length up to 2rn; they are reduced first. The result is
// normalized.
func (s *Selector) MulModBnp1(z, x, y []limb.Limb) {
	rn := len(z) - 1
	if rn < 1 || len(x) > 2*rn || len(y) > 2*rn {
		apperrors.Precondition("MulModBnp1", "operands of %d and %d limbs for modulus length %d", len(x), len(y), rn)
	}
	checkOutput("MulModBnp1", z, x, y)
	a := arena.New(2*(rn+1) + s.bnp1Scratch(rn, false))
	defer a.Free()
	xr, yr := a.Alloc(rn+1), a.Alloc(rn+1)
	bigfft.ModBnp1(xr, x)
	bigfft.ModBnp1(yr, y)
	s.mulModBnp1(z, xr, yr, false, a)
}

// SqrModBnp1 sets z = x*x mod B^rn+1 with rn = len(z)-1 >= 1.
func (s *Selector) SqrModBnp1(z, x []limb.Limb) {
	rn := len(z) - 1
	if rn < 1 || len(x) > 2*rn {
		apperrors.Precondition("SqrModBnp1", "operand of %d limbs for modulus length %d", len(x), rn)
	}
	checkOutput("SqrModBnp1", z, x)
	a := arena.New(rn + 1 + s.bnp1Scratch(rn, true))
	defer a.Free()
	xr := a.Alloc(rn + 1)
	bigfft.ModBnp1(xr, x)
	s.mulModBnp1(z, xr, nil, true, a)
}
