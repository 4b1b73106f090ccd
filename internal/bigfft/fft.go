package bigfft

import (
	"github.com/agbru/bignum/internal/arena"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Multiplier forms the full products of the pointwise ring multiplications.
// The algorithm selector implements it, so pointwise products go back
// through the whole cascade (and possibly another transform).
type Multiplier interface {
	// MulInto sets z = x*y with len(z) == len(x)+len(y).
	MulInto(z, x, y []limb.Limb, a *arena.Arena)
	// SqrInto sets z = x*x with len(z) == 2*len(x).
	SqrInto(z, x []limb.Limb, a *arena.Arena)
	// MulScratch and SqrScratch return the arena limbs MulInto and SqrInto
	// need for the given operand lengths.
	MulScratch(n, m int) int
	SqrScratch(n int) int
}

// MinLen is the shortest operand the transform multiplier accepts.
const MinLen = 16

// Plan describes a transform over 1<<K coefficients of M limbs each,
// computed in the ring Z/(2^(N·Width)+1).
type Plan struct {
	K uint
	M int
	N int
}

// Len returns the length in limbs covered by the plan's coefficients.
func (p Plan) Len() int { return p.M << p.K }

// fftSizeThreshold[k] is the product size in bits above which 1<<k
// coefficients are used.
var fftSizeThreshold = [...]int64{0, 0, 0,
	4 << 10, 8 << 10, 16 << 10, // 5
	32 << 10, 64 << 10, 256 << 10, 1 << 20, 3 << 20, // 10
	8 << 20, 30 << 20, 100 << 20, 300 << 20, 600 << 20,
}

// fftSize returns log2 of the coefficient count for a product of words limbs.
func fftSize(words int) uint {
	bits := int64(words) * limb.Width
	for i, t := range fftSizeThreshold {
		if t > bits {
			return uint(i)
		}
	}
	return uint(len(fftSizeThreshold))
}

// valueSize returns the ring length in limbs for 1<<k coefficients of m
// limbs. Coefficients of a product are below 2^k·B^(2m) in magnitude and
// must stay below 2^(N-2) so the sign of a negacyclic coefficient can be
// read off its top bit; N is also a multiple of 1<<k so that the
// 2^(k+1)-th roots of unity are powers of two.
func valueSize(k uint, m int) int {
	bits := 2*m*limb.Width + int(k) + 2
	unit := max(int(1)<<k, limb.Width)
	bits = (bits + unit - 1) / unit * unit
	return bits / limb.Width
}

// PlanProduct returns a plan whose coefficients cover a full product of
// words limbs, so that the cyclic product does not wrap.
func PlanProduct(words int) Plan {
	k := fftSize(words)
	m := words>>k + 1
	return Plan{K: k, M: m, N: valueSize(k, m)}
}

// PlanModulus returns a plan covering exactly rn limbs, for products
// modulo B^rn±1. It fails when rn has fewer than two factors of two or
// when the ring would not be shorter than rn.
func PlanModulus(rn int) (Plan, bool) {
	if rn < MinLen {
		return Plan{}, false
	}
	k := fftSize(2 * rn)
	for k > 0 && rn%(1<<k) != 0 {
		k--
	}
	if k < 2 {
		return Plan{}, false
	}
	m := rn >> k
	p := Plan{K: k, M: m, N: valueSize(k, m)}
	if p.N >= rn {
		return Plan{}, false
	}
	return p, true
}

func localLen(p Plan, sqr, negacyclic bool) int {
	K, n := 1<<p.K, p.N
	vecs := 3
	if sqr {
		vecs = 2
	}
	l := vecs*K*(n+1) + (n + 1) + (2*n + 2) + 2*n
	acc := (K-1)*p.M + n + 1
	if negacyclic {
		return l + 2*acc + p.Len() + 1
	}
	return l + acc
}

// Scratch returns the arena limbs one transform product needs.
func Scratch(p Plan, mul Multiplier, sqr, negacyclic bool) int {
	child := mul.MulScratch(p.N, p.N)
	if sqr {
		child = mul.SqrScratch(p.N)
	}
	return localLen(p, sqr, negacyclic) + child
}

// MulCyclic sets z = x*y mod B^L-1 with L = p.Len() = len(z). len(x) and
// len(y) must not exceed L.
func MulCyclic(z, x, y []limb.Limb, p Plan, mul Multiplier, a *arena.Arena) {
	apperrors.CheckLen("MulCyclic", len(z), p.Len())
	transform(z, x, y, p, mul, a, false, false)
}

// SqrCyclic sets z = x*x mod B^L-1.
func SqrCyclic(z, x []limb.Limb, p Plan, mul Multiplier, a *arena.Arena) {
	apperrors.CheckLen("SqrCyclic", len(z), p.Len())
	transform(z, x, nil, p, mul, a, true, false)
}

// MulNegacyclic sets z = x*y mod B^L+1 with L = p.Len() and len(z) = L+1.
// len(x) and len(y) must not exceed L; the result is normalized.
func MulNegacyclic(z, x, y []limb.Limb, p Plan, mul Multiplier, a *arena.Arena) {
	apperrors.CheckLen("MulNegacyclic", len(z), p.Len()+1)
	transform(z, x, y, p, mul, a, false, true)
}

// SqrNegacyclic sets z = x*x mod B^L+1.
func SqrNegacyclic(z, x []limb.Limb, p Plan, mul Multiplier, a *arena.Arena) {
	apperrors.CheckLen("SqrNegacyclic", len(z), p.Len()+1)
	transform(z, x, nil, p, mul, a, true, true)
}

func fermats(buf []limb.Limb, count, n int) []fermat {
	v := make([]fermat, count)
	for i := range v {
		v[i] = fermat(buf[i*(n+1) : (i+1)*(n+1) : (i+1)*(n+1)])
	}
	return v
}

// transform multiplies x by y (by itself when sqr) as polynomials in
// B^M modulo X^K-1, or modulo X^K+1 when negacyclic. The negacyclic
// product twists coefficient i by θ^i with θ = 2^(N/K), a 2K-th root of
// unity, and untwists afterwards.
func transform(z, x, y []limb.Limb, p Plan, mul Multiplier, a *arena.Arena, sqr, negacyclic bool) {
	K, n := 1<<p.K, p.N
	if len(x) > p.Len() || len(y) > p.Len() {
		apperrors.Precondition("transform", "operand longer than %d limbs", p.Len())
	}

	mark := a.Mark()
	defer a.Release(mark)
	buf := a.Alloc(localLen(p, sqr, negacyclic))
	take := func(l int) []limb.Limb {
		s := buf[:l:l]
		buf = buf[l:]
		return s
	}
	in := fermats(take(K*(n+1)), K, n)
	xv := fermats(take(K*(n+1)), K, n)
	yv := xv
	if !sqr {
		yv = fermats(take(K*(n+1)), K, n)
	}
	tmp := fermat(take(n + 1))
	shbuf := take(2*n + 2)
	prod := take(2 * n)

	θ := 0
	if negacyclic {
		θ = n * limb.Width >> p.K
	}

	load(in, x, p.M, θ, shbuf)
	fourier(xv, in, false, n, p.K, tmp, shbuf)
	if !sqr {
		load(in, y, p.M, θ, shbuf)
		fourier(yv, in, false, n, p.K, tmp, shbuf)
	}
	for i := range xv {
		if sqr {
			xv[i].Sqr(xv[i], prod, mul, a)
		} else {
			xv[i].Mul(xv[i], yv[i], prod, mul, a)
		}
	}
	fourier(in, xv, true, n, p.K, tmp, shbuf)
	for i, c := range in {
		c.Shift(c, -int(p.K)-i*θ, shbuf)
	}

	accLen := (K-1)*p.M + n + 1
	if !negacyclic {
		acc := take(accLen)
		for i, c := range in {
			limb.AddTo(acc, c[:n], i*p.M)
		}
		FoldBnm1(z, acc)
		return
	}

	pos, neg := take(accLen), take(accLen)
	outer := fermat(take(p.Len() + 1))
	half := uint(n*limb.Width - 1)
	for i, c := range in {
		if c[n] != 0 || limb.Bit(c[:n], half) != 0 {
			tmp.neg(c)
			limb.AddTo(neg, tmp[:n], i*p.M)
		} else {
			limb.AddTo(pos, c[:n], i*p.M)
		}
	}
	fermat(z).setMod(pos)
	outer.setMod(neg)
	fermat(z).Sub(z, outer)
}

// load splits x into m-limb coefficients, twisted by θ^i when θ != 0.
func load(in []fermat, x []limb.Limb, m, θ int, shbuf []limb.Limb) {
	for i, f := range in {
		clear(f)
		lo := i * m
		if lo >= len(x) {
			continue
		}
		copy(f, x[lo:min(lo+m, len(x))])
		if θ != 0 && i > 0 {
			f.Shift(f, i*θ, shbuf)
		}
	}
}

// fourier performs an unnormalized Fourier transform of src, a length
// 1<<k vector of numbers modulo 2^(n·Width)+1. The root of unity for a
// sub-transform of length 1<<size is 2^((2N)>>size); backward uses its
// inverse. tmp holds n+1 limbs and shbuf 2n+2.
func fourier(dst, src []fermat, backward bool, n int, k uint, tmp fermat, shbuf []limb.Limb) {
	var rec func(dst, src []fermat, size uint)
	rec = func(dst, src []fermat, size uint) {
		idxShift := k - size
		ωshift := (2 * n * limb.Width) >> size
		if backward {
			ωshift = -ωshift
		}
		switch size {
		case 0:
			copy(dst[0], src[0])
			return
		case 1:
			dst[0].Add(src[0], src[1<<idxShift])
			dst[1].Sub(src[0], src[1<<idxShift])
			return
		}

		// P(x) = Q1(x²) + x·Q2(x²): transform both halves into the two
		// halves of dst, then combine with dst[i] ± ω^i·dst2[i].
		dst1 := dst[:1<<(size-1)]
		dst2 := dst[1<<(size-1):]
		rec(dst1, src, size-1)
		rec(dst2, src[1<<idxShift:], size-1)
		for i := range dst1 {
			tmp.Shift(dst2[i], i*ωshift, shbuf)
			dst2[i].Sub(dst1[i], tmp)
			dst1[i].Add(dst1[i], tmp)
		}
	}
	rec(dst, src, k)
}
