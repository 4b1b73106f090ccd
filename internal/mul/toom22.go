package mul

import (
	"github.com/agbru/bignum/internal/arena"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// absDiff sets z = |x - y| and reports whether x < y. len(z) == len(x) >=
// len(y).
func absDiff(z, x, y []limb.Limb) bool {
	if limb.Cmp(x, y) >= 0 {
		limb.Sub(z, x, y)
		return false
	}
	copy(z, y)
	clear(z[len(y):])
	limb.Sub(z, z, x)
	return true
}

// toom22 sets z = x*y with the subtractive Karatsuba identity
//
//	x0*y1 + x1*y0 = x0*y0 + x1*y1 - (x0-x1)*(y0-y1)
//
// splitting both operands at h = ⌈n/2⌉ limbs. Requires n >= m > h.
func (s *Selector) toom22(z, x, y []limb.Limb, a *arena.Arena) {
	n, m := len(x), len(y)
	h := (n + 1) / 2

	mark := a.Mark()
	defer a.Release(mark)
	buf := a.Alloc(6*h + 1)
	dx, dy := buf[:h], buf[h:2*h]
	zm := buf[2*h : 4*h]
	mid := buf[4*h:]

	x0, x1 := x[:h], x[h:]
	y0, y1 := y[:h], y[h:m]
	sx := absDiff(dx, x0, x1)
	sy := absDiff(dy, y0, y1)

	s.MulInto(z[:2*h], x0, y0, a)
	s.MulInto(z[2*h:], x1, y1, a)
	s.MulInto(zm, dx, dy, a)

	copy(mid, z[:2*h])
	mid[2*h] = limb.Add(mid[:2*h], mid[:2*h], z[2*h:])
	var c limb.Limb
	if sx == sy {
		c = limb.Sub(mid, mid, zm)
	} else {
		c = limb.Add(mid, mid, zm)
	}
	if c != 0 {
		apperrors.Precondition("toom22", "middle coefficient out of range")
	}
	limb.AddTo(z, mid, h)
}

func (s *Selector) toom22Scratch(n, m int) int {
	h := (n + 1) / 2
	return 6*h + 1 + max(s.MulScratch(h, h), s.MulScratch(n-h, m-h))
}

// sqrToom22 sets z = x*x, computing the middle term as
// x0² + x1² - (x0-x1)². Requires len(x) >= 2.
func (s *Selector) sqrToom22(z, x []limb.Limb, a *arena.Arena) {
	n := len(x)
	h := (n + 1) / 2

	mark := a.Mark()
	defer a.Release(mark)
	buf := a.Alloc(5*h + 1)
	dx := buf[:h]
	zm := buf[h : 3*h]
	mid := buf[3*h:]

	x0, x1 := x[:h], x[h:]
	absDiff(dx, x0, x1)

	s.SqrInto(z[:2*h], x0, a)
	s.SqrInto(z[2*h:], x1, a)
	s.SqrInto(zm, dx, a)

	copy(mid, z[:2*h])
	mid[2*h] = limb.Add(mid[:2*h], mid[:2*h], z[2*h:])
	if limb.Sub(mid, mid, zm) != 0 {
		apperrors.Precondition("sqrToom22", "middle coefficient out of range")
	}
	limb.AddTo(z, mid, h)
}

func (s *Selector) sqrToom22Scratch(n int) int {
	h := (n + 1) / 2
	return 5*h + 1 + max(s.SqrScratch(h), s.SqrScratch(n-h))
}
