// Package hgcd implements the half-GCD reduction: for a ≥ b and a bit
// target s it finds the longest prefix of the Euclidean remainder
// sequence of (a, b) whose last pair (α, β) still satisfies β ≥ 2^s and
// α - β ≥ 2^s, together with the matrix M such that (a; b) = M·(α; β).
//
// Every buffer comes from a caller-supplied arena sized by the matching
// Scratch function.
package hgcd

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

import (
	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/config"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
	"github.com/agbru/bignum/internal/mul"
)

// Multiplier computes z = x*y for normalized non-empty operands with
// len(z) == len(x)+len(y), taking scratch from a. *mul.Selector
// satisfies it.
type Multiplier interface {
	MulInto(z, x, y []limb.Limb, a *arena.Arena)
	MulScratch(n, m int) int
}

// Engine drives half-GCD reductions and GCD computations.
type Engine struct {
	// Mul performs every matrix and lift product.
	Mul Multiplier
	// Threshold is the excess, in limbs, of bitlen(α) over s below which
	// the reduction takes single Euclidean steps instead of recursing.
	Threshold int
	// GCDThreshold is the divisor length in limbs below which GCD runs
	// plain Euclid.
	GCDThreshold int
}

// NewEngine returns an engine using mul and the half-GCD thresholds of t.
func NewEngine(mul Multiplier, t config.Thresholds) *Engine {
	return &Engine{Mul: mul, Threshold: max(t.HalfGCD, 1), GCDThreshold: max(t.GCD, 1)}
}

// Default returns an engine backed by the default multiplication selector.
func Default() *Engine {
	s := mul.Default()
	return NewEngine(s, s.Thresholds())
}

// Result is a reduction (a; b) = M·(Alpha; Beta) after Steps Euclidean
// steps. Steps == 0 means M is the identity and (Alpha, Beta) = (a, b).
type Result struct {
	M     *Matrix
	Alpha []limb.Limb
	Beta  []limb.Limb
	Steps int
}

// Reduce runs the half-GCD reduction of (a, b) with target s. It panics
// with a PreconditionError if a < b or s < 0. Inputs are not modified.
//
// The result is carved from ar; size ar with ReduceScratch to avoid heap
// fallbacks.
func (e *Engine) Reduce(a, b []limb.Limb, s int, ar *arena.Arena) Result {
	a, b = limb.Norm(a), limb.Norm(b)
	if s < 0 {
		apperrors.Precondition("hgcd.Reduce", "negative target %d", s)
	}
	if limb.Cmp(a, b) < 0 {
		apperrors.Precondition("hgcd.Reduce", "a < b")
	}
	return e.reduce(a, b, s, ar)
}

// ReduceScratch bounds the arena limbs Reduce needs for an a of n limbs
// and target s, including the result.
func (e *Engine) ReduceScratch(n, s int) int {
	return e.reduceScratch(n*limb.Width, max(s, 0))
}

// reduceScratch mirrors reduce for an a of nb bits: the matrix and pair,
// then the larger of a single step and a recursive lift.
func (e *Engine) reduceScratch(nb, s int) int {
	const w = limb.Width
	n := max((nb+w-1)/w, 1)
	c := max(nb-s, 0)/w + 2
	// quotient, division scratch, then the matrix step product
	work := 4*n + 1 + c + e.Mul.MulScratch(n, c)
	if nb-s >= e.Threshold*w {
		p := max(nb/2, 2*s-nb)
		t := nb - p
		s1 := (t+1)/2 + 1
		sn := (t+w-1)/w + 1
		c1 := max(t-s1, 0)/w + 2
		lift := 2*sn + e.reduceScratch(t, s1) +
			max(applyInverseScratch(e.Mul, n, c1), 4*(n+c1)+n, 4*(n+c1)+matrixMulScratch(e.Mul, c, c1))
		work = max(work, lift)
	}
	return 4*c + 4*n + work
}

// matrixCap bounds the entries of any reduction matrix of a with target
// s: every entry is at most a/2^s.
func matrixCap(a []limb.Limb, s int) int {
	return max(limb.BitLen(a)-s, 0)/limb.Width + 2
}

func (e *Engine) reduce(a, b []limb.Limb, s int, ar *arena.Arena) Result {
	m := NewMatrix(matrixCap(a, s), ar)
	p := newPair(a, b, ar)
	res := Result{M: m, Alpha: p.alpha, Beta: p.beta}
	if !reduced(a, b, s, ar) {
		return res
	}
	for {
		if limb.BitLen(p.alpha)-s >= e.Threshold*limb.Width {
			if k := e.recurse(m, &p, s, ar); k > 0 {
				res.Steps += k
				continue
			}
		}
		if !e.step(m, &p, s, ar) {
			break
		}
		res.Steps++
	}
	res.Alpha, res.Beta = p.alpha, p.beta
	return res
}

// recurse reduces the top half of (α, β), lifts the resulting matrix back
// to the full pair and composes it into m. It returns the number of steps
// taken, zero when the top-half matrix makes no progress or does not
// lift to a valid prefix.
func (e *Engine) recurse(m *Matrix, p *pair, s int, ar *arena.Arena) int {
	mark := ar.Mark()
	defer ar.Release(mark)

	n := limb.BitLen(p.alpha)
	shift := max(n/2, 2*s-n)
	t := n - shift
	s1 := (t+1)/2 + 1

	sub := e.reduce(shr(p.alpha, shift, ar), shr(p.beta, shift, ar), s1, ar)
	if sub.Steps == 0 {
		return 0
	}
	alpha, beta, ok := sub.M.applyInverse(p.alpha, p.beta, e.Mul, ar)
	if !ok || !reduced(alpha, beta, s, ar) {
		return 0
	}
	m.Mul(sub.M, e.Mul, ar)
	p.set(alpha, beta)
	return sub.Steps
}

// step takes one Euclidean step when its remainder pair still satisfies
// the reduction condition.
func (e *Engine) step(m *Matrix, p *pair, s int, ar *arena.Arena) bool {
	if len(p.beta) == 0 {
		return false
	}
	mark := ar.Mark()
	defer ar.Release(mark)

	q := ar.Alloc(len(p.alpha))
	quo, rem := p.divide(q, ar.Alloc(limb.DivRemScratchLen(len(p.alpha), len(p.beta))))
	if !reduced(p.beta, rem, s, ar) {
		return false
	}
	m.step(quo, e.Mul, ar)
	p.advance(rem)
	return true
}

// reduced reports whether β ≥ 2^s and α - β ≥ 2^s.
func reduced(alpha, beta []limb.Limb, s int, ar *arena.Arena) bool {
	if limb.BitLen(beta) <= s || limb.Cmp(alpha, beta) < 0 {
		return false
	}
	mark := ar.Mark()
	defer ar.Release(mark)
	d := ar.Alloc(len(alpha))
	limb.Sub(d, alpha, beta)
	return limb.BitLen(d) > s
}

// shr returns x >> s in a buffer from ar.
func shr(x []limb.Limb, s int, ar *arena.Arena) []limb.Limb {
	if s <= 0 {
		return x
	}
	if s >= limb.BitLen(x) {
		return nil
	}
	z := ar.Alloc(len(x) - s/limb.Width)
	return z[:limb.ShiftRight(z, x, uint(s))]
}

// GCD returns gcd(a, b) as a freshly allocated normalized slice.
// gcd(0, 0) is 0.
func (e *Engine) GCD(a, b []limb.Limb) []limb.Limb {
	a, b = limb.Norm(a), limb.Norm(b)
	if limb.Cmp(a, b) < 0 {
		a, b = b, a
	}
	if len(b) == 0 {
		return append([]limb.Limb(nil), a...)
	}
	ar := arena.New(e.GCDScratch(len(a)))
	defer ar.Free()
	return append([]limb.Limb(nil), e.gcd(a, b, ar)...)
}

// GCDScratch bounds the arena limbs GCD needs for operands of at most n
// limbs.
func (e *Engine) GCDScratch(n int) int {
	nb := n * limb.Width
	return 4*n + n + limb.DivRemScratchLen(n, n) + e.reduceScratch(nb, nb/2)
}

// gcd reduces (a, b), a ≥ b > 0, by half-GCD while the divisor is long
// and by division steps below GCDThreshold, then finishes a one-limb
// divisor with the binary algorithm. The result lives in ar.
func (e *Engine) gcd(a, b []limb.Limb, ar *arena.Arena) []limb.Limb {
	p := newPair(a, b, ar)
	q := ar.Alloc(len(a))
	div := ar.Alloc(limb.DivRemScratchLen(len(a), len(a)))
	for len(p.beta) > 1 {
		if len(p.beta) >= e.GCDThreshold {
			mark := ar.Mark()
			if res := e.reduce(p.alpha, p.beta, limb.BitLen(p.alpha)/2, ar); res.Steps > 0 {
				p.set(res.Alpha, res.Beta)
			}
			ar.Release(mark)
		}
		_, rem := p.divide(q, div)
		p.advance(rem)
	}
	if len(p.beta) == 0 {
		return p.alpha
	}
	g := p.buf[2][:1]
	g[0] = binaryGCD(p.beta[0], limb.ModW(p.alpha, p.beta[0]))
	return g
}

// ExtendedGCD returns g = gcd(a, b) for a ≥ b together with the matrix M
// of the whole Euclidean sequence, so that (a; b) = M·(g; 0). With
// det M = ±1 this gives g = ±(m11·a - m01·b). Both results live in ar;
// size it with ExtendedGCDScratch.
func (e *Engine) ExtendedGCD(a, b []limb.Limb, ar *arena.Arena) ([]limb.Limb, *Matrix) {
	a, b = limb.Norm(a), limb.Norm(b)
	if limb.Cmp(a, b) < 0 {
		apperrors.Precondition("hgcd.ExtendedGCD", "a < b")
	}
	m := NewMatrix(matrixCap(a, 0), ar)
	p := newPair(a, b, ar)
	q := ar.Alloc(len(a))
	div := ar.Alloc(limb.DivRemScratchLen(len(a), len(a)))
	for len(p.beta) > 0 {
		if len(p.beta) >= e.GCDThreshold {
			mark := ar.Mark()
			if res := e.reduce(p.alpha, p.beta, limb.BitLen(p.alpha)/2, ar); res.Steps > 0 {
				m.Mul(res.M, e.Mul, ar)
				p.set(res.Alpha, res.Beta)
			}
			ar.Release(mark)
		}
		quo, rem := p.divide(q, div)
		m.step(quo, e.Mul, ar)
		p.advance(rem)
	}
	return p.alpha, m
}

// ExtendedGCDScratch bounds the arena limbs ExtendedGCD needs for an a of
// n limbs, including the results.
func (e *Engine) ExtendedGCDScratch(n int) int {
	nb := n * limb.Width
	c := n + 2
	cr := (nb-nb/2)/limb.Width + 2
	work := max(
		e.reduceScratch(nb, nb/2)+matrixMulScratch(e.Mul, c, cr),
		n+c+e.Mul.MulScratch(n, c),
	)
	return 4*c + 4*n + n + limb.DivRemScratchLen(n, n) + work
}

func binaryGCD(u, v limb.Limb) limb.Limb {
	if u == 0 {
		return v
	}
	if v == 0 {
		return u
	}
	shift := limb.TrailingZeros(u | v)
	u >>= limb.TrailingZeros(u)
	for {
		v >>= limb.TrailingZeros(v)
		if u > v {
			u, v = v, u
		}
		v -= u
		if v == 0 {
			return u << shift
		}
	}
}
