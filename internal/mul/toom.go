package mul

import (
	"github.com/agbru/bignum/internal/arena"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
	"github.com/agbru/bignum/rounding"
)

// Toom-k for k = 3, 4, 6, 8 runs on one engine:
//
//   - split x and y into pieces of s = ⌈n/k⌉ limbs (px and py pieces),
//   - evaluate both at the first px+py-1 homogeneous points, using only
//     shifts and additions,
//   - multiply the (s+1)-limb values through the Selector,
//   - interpolate each product coefficient with an integer row
//     combination and one exact division, adding it in at offset i·s.

// MinLen returns the shortest first operand toom-k accepts.
func MinLen(k int) int {
	if k == 2 {
		return 2
	}
	return 3 * k
}

type toomShape struct {
	s, px, py, npts int
}

func newToomShape(k, n, m int) toomShape {
	s := rounding.CeilDiv(n, k)
	px := rounding.CeilDiv(n, s)
	py := rounding.CeilDiv(m, s)
	return toomShape{s: s, px: px, py: py, npts: px + py - 1}
}

// toomFits reports whether an n×m product can use toom-k.
func toomFits(k, n, m int) bool {
	if n < MinLen(k) {
		return false
	}
	return m > newToomShape(k, n, m).s
}

// piece returns the i-th s-limb piece of x; the last one may be shorter.
func piece(x []limb.Limb, i, s int) []limb.Limb {
	return x[i*s : min((i+1)*s, len(x))]
}

// toomBuffers carves one arena block into the engine's working storage.
type toomBuffers struct {
	vx, vy    []limb.Limb // evaluations, npts × (s+1)
	e, o, t   []limb.Limb // even part, odd part, shifted piece
	w         []limb.Limb // products, npts × 2(s+1)
	pos, neg  []limb.Limb // coefficient accumulators
	q         []limb.Limb
	term      []limb.Limb
	r, divBuf []limb.Limb // long division by a multi-limb denominator
}

func toomAccLen(sh toomShape, tb *interpTable) int {
	return 2*(sh.s+1) + tb.coefLimbs + 1
}

func toomLocal(sh toomShape, tb *interpTable, sqr bool) int {
	sl := sh.s + 1
	acc := toomAccLen(sh, tb)
	n := sh.npts*sl + 3*sl + sh.npts*2*sl + 3*acc + 2*sl + tb.coefLimbs
	if !sqr {
		n += sh.npts * sl
	}
	if tb.denLimbs > 1 {
		n += tb.denLimbs + limb.DivRemScratchLen(acc, tb.denLimbs)
	}
	return n
}

func allocToom(sh toomShape, tb *interpTable, sqr bool, a *arena.Arena) toomBuffers {
	buf := a.Alloc(toomLocal(sh, tb, sqr))
	take := func(n int) []limb.Limb {
		s := buf[:n:n]
		buf = buf[n:]
		return s
	}
	sl := sh.s + 1
	acc := toomAccLen(sh, tb)
	var b toomBuffers
	b.vx = take(sh.npts * sl)
	b.vy = b.vx
	if !sqr {
		b.vy = take(sh.npts * sl)
	}
	b.e, b.o, b.t = take(sl), take(sl), take(sl)
	b.w = take(sh.npts * 2 * sl)
	b.pos, b.neg, b.q = take(acc), take(acc), take(acc)
	b.term = take(2*sl + tb.coefLimbs)
	if tb.denLimbs > 1 {
		b.r = take(tb.denLimbs)
		b.divBuf = take(limb.DivRemScratchLen(acc, tb.denLimbs))
	}
	return b
}

// toom sets z = x*y (or x*x when sqr) with toom-k. Requires toomFits.
func (s *Selector) toom(z, x, y []limb.Limb, k int, sqr bool, a *arena.Arena) {
	sh := newToomShape(k, len(x), len(y))
	tb := table(sh.npts)
	sl := sh.s + 1

	mark := a.Mark()
	defer a.Release(mark)
	b := allocToom(sh, tb, sqr, a)

	var negX, negY, negW [maxPoints]bool
	evaluate(b.vx, &negX, x, sh.s, sh.px, sh.npts, b)
	if !sqr {
		evaluate(b.vy, &negY, y, sh.s, sh.py, sh.npts, b)
	}
	for j := 0; j < sh.npts; j++ {
		wj := b.w[j*2*sl : (j+1)*2*sl]
		vx := b.vx[j*sl : (j+1)*sl]
		if sqr {
			s.SqrInto(wj, vx, a)
			continue
		}
		s.MulInto(wj, vx, b.vy[j*sl:(j+1)*sl], a)
		negW[j] = negX[j] != negY[j]
	}
	interpolate(z, &negW, tb, sh, b)
}

func (s *Selector) toomScratch(k, n, m int, sqr bool) int {
	sh := newToomShape(k, n, m)
	child := s.MulScratch(sh.s+1, sh.s+1)
	if sqr {
		child = s.SqrScratch(sh.s + 1)
	}
	return toomLocal(sh, table(sh.npts), sqr) + child
}

// evaluate writes the value of the pieces-term polynomial x at the first
// npts points into v, s+1 limbs per point, with the signs in neg.
func evaluate(v []limb.Limb, neg *[maxPoints]bool, x []limb.Limb, s, pieces, npts int, b toomBuffers) {
	sl := s + 1
	d := pieces - 1
	for j, p := range points[:npts] {
		vj := v[j*sl : (j+1)*sl]
		switch {
		case p.zero:
			copy(vj, piece(x, 0, s))
		case p.inf:
			copy(vj, piece(x, d, s))
		case p.neg:
			neg[j] = absDiff(vj, b.e, b.o)
		default:
			evalHalves(b.e, b.o, b.t, x, s, d, p.alpha, p.beta)
			if limb.AddVV(vj, b.e, b.o) != 0 {
				apperrors.Precondition("toom", "evaluation overflow")
			}
		}
	}
}

// evalHalves sets e and o to the even- and odd-indexed terms of
// Σ x_i·2^(alpha·i + beta·(d-i)).
func evalHalves(e, o, t, x []limb.Limb, s, d int, alpha, beta uint) {
	clear(e)
	clear(o)
	for i := 0; i <= d; i++ {
		xi := piece(x, i, s)
		clear(t)
		t[len(xi)] = limb.ShlVU(t[:len(xi)], xi, alpha*uint(i)+beta*uint(d-i))
		acc := e
		if i%2 == 1 {
			acc = o
		}
		if limb.AddVV(acc, acc, t) != 0 {
			apperrors.Precondition("toom", "evaluation overflow")
		}
	}
}

// interpolate recovers every product coefficient from the point products
// in b.w and adds coefficient i into z at limb offset i·s.
func interpolate(z []limb.Limb, negW *[maxPoints]bool, tb *interpTable, sh toomShape, b toomBuffers) {
	wl := 2 * (sh.s + 1)
	clear(z)
	for i, row := range tb.rows {
		clear(b.pos)
		clear(b.neg)
		for j, c := range row.coef {
			if len(c.mag) == 0 {
				continue
			}
			term := b.term[:wl+len(c.mag)]
			MulBasecase(term, b.w[j*wl:(j+1)*wl], c.mag)
			if c.neg != negW[j] {
				limb.AddTo(b.neg, term, 0)
			} else {
				limb.AddTo(b.pos, term, 0)
			}
		}
		if limb.Sub(b.pos, b.pos, b.neg) != 0 {
			apperrors.Precondition("toom", "negative coefficient %d", i)
		}
		limb.AddTo(z, exactDiv(b.pos, row.den, b), i*sh.s)
	}
}

// exactDiv returns u / den, which must leave no remainder.
func exactDiv(u, den []limb.Limb, b toomBuffers) []limb.Limb {
	if len(den) == 1 {
		q := b.q[:len(u)]
		if limb.DivW(q, u, den[0]) != 0 {
			apperrors.Precondition("toom", "inexact interpolation")
		}
		return q
	}
	q := b.q[:len(u)-len(den)+1]
	r := b.r[:len(den)]
	limb.DivRem(q, r, u, den, b.divBuf)
	if !limb.IsZero(r) {
		apperrors.Precondition("toom", "inexact interpolation")
	}
	return q
}
