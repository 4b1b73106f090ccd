package hgcd

import (
	"github.com/agbru/bignum/internal/arena"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Matrix is a 2×2 matrix of naturals with determinant ±1. The four
// entries live in equal-capacity regions of one allocation and share one
// occupied length: every limb of a region at or above Len is zero.
//
// A Matrix is the product of the elementary steps [[q, 1], [1, 0]] taken
// so far, so that (a; b) = M·(α; β) for the current remainder pair.
type Matrix struct {
	buf []limb.Limb
	e   [2][2][]limb.Limb
	cap int
	n   int
	neg bool
}

// NewMatrix returns the identity with room for entries of capacity limbs.
// The entries are carved from a and live as long as that allocation.
func NewMatrix(capacity int, a *arena.Arena) *Matrix {
	capacity = max(capacity, 1)
	m := &Matrix{buf: a.Alloc(4 * capacity), cap: capacity, n: 1}
	for i := range 2 {
		for j := range 2 {
			k := 2*i + j
			m.e[i][j] = m.buf[k*capacity : (k+1)*capacity : (k+1)*capacity]
		}
	}
	m.e[0][0][0] = 1
	m.e[1][1][0] = 1
	return m
}

// Entry returns entry (i, j) normalized. The slice aliases the matrix and
// is only valid until the next update.
func (m *Matrix) Entry(i, j int) []limb.Limb { return limb.Norm(m.e[i][j][:m.n]) }

// Len returns the occupied length shared by the entries.
func (m *Matrix) Len() int { return m.n }

// Capacity returns the per-entry capacity in limbs.
func (m *Matrix) Capacity() int { return m.cap }

// Det returns the determinant, 1 or -1.
func (m *Matrix) Det() int {
	if m.neg {
		return -1
	}
	return 1
}

// IsIdentity reports whether no step has been composed into m.
func (m *Matrix) IsIdentity() bool {
	return !m.neg && m.n == 1 &&
		m.e[0][0][0] == 1 && m.e[0][1][0] == 0 && m.e[1][0][0] == 0 && m.e[1][1][0] == 1
}

func (m *Matrix) grow(n int) {
	if n > m.cap {
		apperrors.Precondition("hgcd.Matrix", "entry of %d limbs exceeds capacity %d", n, m.cap)
	}
	m.n = max(m.n, n)
}

// trim lowers the shared length past leading limbs that are zero in all
// four entries.
func (m *Matrix) trim() {
	for m.n > 1 && m.e[0][0][m.n-1]|m.e[0][1][m.n-1]|m.e[1][0][m.n-1]|m.e[1][1][m.n-1] == 0 {
		m.n--
	}
}

// step composes one Euclidean step with quotient q: M = M·[[q, 1], [1, 0]].
// Column 1 becomes q·col0 + col1 and is then swapped with column 0.
func (m *Matrix) step(q []limb.Limb, mul Multiplier, a *arena.Arena) {
	q = limb.Norm(q)
	if len(q) == 1 {
		carried := false
		for i := range 2 {
			c0, c1 := m.e[i][0], m.e[i][1]
			if c := limb.AddMulVVW(c1[:m.n], c0[:m.n], q[0]); c != 0 {
				if m.n >= m.cap {
					apperrors.Precondition("hgcd.Matrix", "entry exceeds capacity %d", m.cap)
				}
				c1[m.n] = c
				carried = true
			}
		}
		if carried {
			m.n++
		}
	} else {
		mark := a.Mark()
		t := a.Alloc(len(q) + m.n)
		for i := range 2 {
			c0 := limb.Norm(m.e[i][0][:m.n])
			if len(c0) == 0 {
				continue
			}
			p := t[:len(q)+len(c0)]
			mul.MulInto(p, q, c0, a)
			p = limb.Norm(p)
			m.grow(len(p))
			limb.AddTo(m.e[i][1], p, 0)
		}
		m.grow(max(len(limb.Norm(m.e[0][1])), len(limb.Norm(m.e[1][1]))))
		a.Release(mark)
	}
	for i := range 2 {
		m.e[i][0], m.e[i][1] = m.e[i][1], m.e[i][0]
	}
	m.neg = !m.neg
}

// Mul sets m = m·r with temporaries from a. Products go through mul; the
// sums may carry a few leading zero limbs, which are trimmed from the
// shared length.
func (m *Matrix) Mul(r *Matrix, mul Multiplier, a *arena.Arena) {
	if r.IsIdentity() {
		return
	}
	mark := a.Mark()
	defer a.Release(mark)
	w := m.n + r.n + 1
	tmp := a.Alloc(4 * w)
	prod := a.Alloc(m.n + r.n)
	var out [2][2][]limb.Limb
	for i := range 2 {
		for j := range 2 {
			k := 2*i + j
			sum := tmp[k*w : (k+1)*w]
			for l := range 2 {
				x, y := limb.Norm(m.e[i][l][:m.n]), limb.Norm(r.e[l][j][:r.n])
				if len(x) == 0 || len(y) == 0 {
					continue
				}
				p := prod[:len(x)+len(y)]
				mul.MulInto(p, x, y, a)
				limb.AddTo(sum, p, 0)
			}
			out[i][j] = limb.Norm(sum)
		}
	}
	n := 1
	for i := range 2 {
		for j := range 2 {
			n = max(n, len(out[i][j]))
		}
	}
	if n > m.cap {
		apperrors.Precondition("hgcd.Matrix", "entry of %d limbs exceeds capacity %d", n, m.cap)
	}
	for i := range 2 {
		for j := range 2 {
			clear(m.e[i][j][:max(m.n, n)])
			copy(m.e[i][j], out[i][j])
		}
	}
	m.n = n
	m.trim()
	m.neg = m.neg != r.neg
}

// matrixMulScratch bounds the arena limbs Mul needs when m and r have
// shared lengths of at most n and k limbs.
func matrixMulScratch(mul Multiplier, n, k int) int {
	return 4*(n+k+1) + n + k + mul.MulScratch(n, k)
}

// applyInverse returns (α; β) = M⁻¹·(a; b), or ok = false when either
// component would be negative, meaning M is not a prefix of the Euclidean
// sequence of (a, b). The results are carved from ar and stay there until
// the caller releases them.
//
// With det M = ±1, M⁻¹ = ±[[m11, -m01], [-m10, m00]].
func (m *Matrix) applyInverse(a, b []limb.Limb, mul Multiplier, ar *arena.Arena) (alpha, beta []limb.Limb, ok bool) {
	m00, m01 := m.Entry(0, 0), m.Entry(0, 1)
	m10, m11 := m.Entry(1, 0), m.Entry(1, 1)
	p1 := mulNat(mul, m11, a, ar)
	p2 := mulNat(mul, m01, b, ar)
	p3 := mulNat(mul, m00, b, ar)
	p4 := mulNat(mul, m10, a, ar)
	if m.neg {
		p1, p2 = p2, p1
		p3, p4 = p4, p3
	}
	if alpha, ok = subNat(p1, p2); !ok {
		return nil, nil, false
	}
	if beta, ok = subNat(p3, p4); !ok {
		return nil, nil, false
	}
	return alpha, beta, true
}

// applyInverseScratch bounds the arena limbs applyInverse needs for an
// operand of n limbs and a matrix of shared length k.
func applyInverseScratch(mul Multiplier, n, k int) int {
	return 4*(n+k) + mul.MulScratch(n, k)
}

// mulNat returns the normalized product of two normalized naturals in a
// buffer from ar.
func mulNat(mul Multiplier, x, y []limb.Limb, ar *arena.Arena) []limb.Limb {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := ar.Alloc(len(x) + len(y))
	mul.MulInto(z, x, y, ar)
	return limb.Norm(z)
}

// subNat sets x = x - y in place for normalized naturals, or reports
// false if y > x.
func subNat(x, y []limb.Limb) ([]limb.Limb, bool) {
	if limb.Cmp(x, y) < 0 {
		return nil, false
	}
	limb.Sub(x, x, y)
	return limb.Norm(x), true
}
