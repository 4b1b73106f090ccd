package mul

import (
	"math/big"
	"sync"

	"github.com/agbru/bignum/internal/limb"
)

// point is a homogeneous evaluation point (±2^alpha : 2^beta). zero and
// inf stand for (0 : 1) and (1 : 0).
type point struct {
	neg         bool
	alpha, beta uint
	zero, inf   bool
}

// points is the fixed evaluation order; an N-point product uses the first
// N entries. Every negative point directly follows its positive twin, so
// the even and odd halves of the evaluation are shared between them.
var points = [...]point{
	{zero: true},
	{inf: true},
	{},
	{neg: true},
	{alpha: 1},
	{neg: true, alpha: 1},
	{beta: 1},
	{neg: true, beta: 1},
	{alpha: 2},
	{neg: true, alpha: 2},
	{beta: 2},
	{neg: true, beta: 2},
	{alpha: 3},
	{neg: true, alpha: 3},
	{beta: 3},
}

const maxPoints = len(points)

// weight returns a^i * b^(d-i) for the point (a : b).
func (p point) weight(i, d int) *big.Int {
	switch {
	case p.zero:
		return big.NewInt(int64(b2i(i == 0)))
	case p.inf:
		return big.NewInt(int64(b2i(i == d)))
	}
	w := new(big.Int).Lsh(big.NewInt(1), p.alpha*uint(i)+p.beta*uint(d-i))
	if p.neg && i%2 == 1 {
		w.Neg(w)
	}
	return w
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// coef is one integer interpolation coefficient.
type coef struct {
	mag []limb.Limb
	neg bool
}

// interpRow recovers one product coefficient as (Σ_j coef[j]·w_j) / den,
// where w_j is the product at point j. The division is exact.
type interpRow struct {
	coef []coef
	den  []limb.Limb
}

type interpTable struct {
	rows []interpRow
	// coefLimbs and denLimbs are the longest magnitudes in the table.
	coefLimbs int
	denLimbs  int
}

var tables [maxPoints + 1]struct {
	once sync.Once
	t    *interpTable
}

// table returns the interpolation table for npts points, building it on
// first use.
func table(npts int) *interpTable {
	e := &tables[npts]
	e.once.Do(func() { e.t = buildTable(npts) })
	return e.t
}

// buildTable inverts the npts×npts evaluation matrix over the rationals
// and scales each row of the inverse by the lcm of its denominators.
func buildTable(npts int) *interpTable {
	d := npts - 1
	m := make([][]*big.Rat, npts)
	for j := range m {
		m[j] = make([]*big.Rat, 2*npts)
		for i := 0; i < npts; i++ {
			m[j][i] = new(big.Rat).SetInt(points[j].weight(i, d))
			m[j][npts+i] = new(big.Rat)
		}
		m[j][npts+j].SetInt64(1)
	}

	for c := 0; c < npts; c++ {
		p := c
		for m[p][c].Sign() == 0 {
			p++
		}
		m[c], m[p] = m[p], m[c]
		inv := new(big.Rat).Inv(m[c][c])
		for i := range m[c] {
			m[c][i].Mul(m[c][i], inv)
		}
		for r := range m {
			if r == c || m[r][c].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(m[r][c])
			t := new(big.Rat)
			for i := range m[r] {
				m[r][i].Sub(m[r][i], t.Mul(f, m[c][i]))
			}
		}
	}

	tb := &interpTable{rows: make([]interpRow, npts)}
	for i := range tb.rows {
		inv := m[i][npts:]
		den := big.NewInt(1)
		g := new(big.Int)
		for _, v := range inv {
			q := v.Denom()
			g.GCD(nil, nil, den, q)
			den.Mul(den, new(big.Int).Quo(q, g))
		}
		row := interpRow{coef: make([]coef, npts), den: bigToLimbs(den)}
		for j, v := range inv {
			num := new(big.Int).Mul(v.Num(), new(big.Int).Quo(den, v.Denom()))
			row.coef[j] = coef{mag: bigToLimbs(num), neg: num.Sign() < 0}
			tb.coefLimbs = max(tb.coefLimbs, len(row.coef[j].mag))
		}
		tb.denLimbs = max(tb.denLimbs, len(row.den))
		tb.rows[i] = row
	}
	return tb
}

// bigToLimbs returns |x| as normalized limbs.
func bigToLimbs(x *big.Int) []limb.Limb {
	t := new(big.Int).Abs(x)
	mask := new(big.Int).SetUint64(uint64(limb.Max))
	var out []limb.Limb
	for w := new(big.Int); t.Sign() > 0; t.Rsh(t, limb.Width) {
		out = append(out, limb.Limb(w.And(t, mask).Uint64()))
	}
	return out
}
