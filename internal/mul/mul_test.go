package mul

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/config"
	"github.com/agbru/bignum/internal/limb"
	"github.com/agbru/bignum/internal/limb/limbtest"
)

func bigMul(x, y []limb.Limb) *big.Int {
	return new(big.Int).Mul(limbtest.ToBig(x), limbtest.ToBig(y))
}

func TestMulBasecase(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(1)
	for _, n := range []int{0, 1, 2, 5, 17} {
		for _, m := range []int{0, 1, 3, 17} {
			x, y := limbtest.Random(rng, n), limbtest.Random(rng, m)
			z := make([]limb.Limb, n+m)
			MulBasecase(z, x, y)
			if got := limbtest.ToBig(z); got.Cmp(bigMul(x, y)) != 0 {
				t.Fatalf("%d×%d: got %x", n, m, got)
			}
		}
	}
}

func TestSqrBasecase(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(2)
	for _, n := range []int{0, 1, 2, 3, 8, 31} {
		for range 10 {
			x := limbtest.Random(rng, n)
			z := make([]limb.Limb, 2*n)
			SqrBasecase(z, x)
			if got := limbtest.ToBig(z); got.Cmp(bigMul(x, x)) != 0 {
				t.Fatalf("n=%d: got %x", n, got)
			}
		}
	}
}

// forceMul runs one algorithm at the top level, with an arena sized by
// its own scratch function, and returns the product and arena stats.
func forceMul(s *Selector, alg Algorithm, x, y []limb.Limb) ([]limb.Limb, arena.Stats) {
	z := make([]limb.Limb, len(x)+len(y))
	a := arena.New(s.mulScratch(alg, len(x), len(y)))
	defer a.Free()
	s.mulInto(z, x, y, alg, a)
	return z, a.Stats()
}

func forceSqr(s *Selector, alg Algorithm, x []limb.Limb) ([]limb.Limb, arena.Stats) {
	z := make([]limb.Limb, 2*len(x))
	a := arena.New(s.sqrScratch(alg, len(x)))
	defer a.Free()
	s.sqrInto(z, x, alg, a)
	return z, a.Stats()
}

func TestCrossAlgorithmAgreement(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(4)
	for _, th := range []config.Thresholds{tinyThresholds(), config.DefaultThresholds()} {
		s := newSelector(t, th)
		algs := []Algorithm{Basecase, Toom22, Toom33, Toom44, Toom6H, Toom8H, Transform}
		shapes := [][2]int{{2, 2}, {9, 7}, {12, 12}, {18, 11}, {24, 24}, {31, 17}, {64, 64}, {97, 60}, {150, 149}}
		for _, alg := range algs {
			for _, sh := range shapes {
				n, m := sh[0], sh[1]
				if !fits(alg, n, m, false) {
					continue
				}
				t.Run(fmt.Sprintf("%s/%dx%d", alg, n, m), func(t *testing.T) {
					x, y := limbtest.Random(rng, n), limbtest.Random(rng, m)
					z, st := forceMul(s, alg, x, y)
					if got, want := limbtest.ToBig(z), bigMul(x, y); got.Cmp(want) != 0 {
						t.Fatalf("got %x\nwant %x", got, want)
					}
					if st.Overflows != 0 {
						t.Fatalf("scratch estimate too small: %d overflows", st.Overflows)
					}
				})
			}
		}
	}
}

func TestSquareAgreesWithMultiply(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(5)
	s := newSelector(t, tinyThresholds())
	algs := []Algorithm{Basecase, Toom22, Toom33, Toom44, Toom6H, Toom8H, ModBnm1, Transform}
	for _, alg := range algs {
		for _, n := range []int{2, 9, 16, 25, 40, 64, 100} {
			if !fits(alg, n, n, true) {
				continue
			}
			x := limbtest.Random(rng, n)
			sq, st := forceSqr(s, alg, x)
			if got, want := limbtest.ToBig(sq), bigMul(x, x); got.Cmp(want) != 0 {
				t.Fatalf("%s n=%d: got %x want %x", alg, n, got, want)
			}
			if st.Overflows != 0 {
				t.Fatalf("%s n=%d: %d arena overflows", alg, n, st.Overflows)
			}
			prod := make([]limb.Limb, 2*n)
			s.Mul(prod, x, append([]limb.Limb(nil), x...))
			if diff := cmp.Diff(prod, sq); diff != "" {
				t.Fatalf("%s n=%d: square != multiply:\n%s", alg, n, diff)
			}
		}
	}
}

func TestSqrViaMod_SplitPath(t *testing.T) {
	t.Parallel()
	// A transform threshold out of reach forces the CRT recursion all
	// the way down to full products.
	th := tinyThresholds()
	th.SqrTransform = 1 << 20
	th.Transform = 1 << 20
	s := newSelector(t, th)
	rng := limbtest.NewRand(6)
	for _, n := range []int{32, 33, 47, 70} {
		x := limbtest.Random(rng, n)
		z, st := forceSqr(s, ModBnm1, x)
		if got, want := limbtest.ToBig(z), bigMul(x, x); got.Cmp(want) != 0 {
			t.Fatalf("n=%d: got %x want %x", n, got, want)
		}
		if st.Overflows != 0 {
			t.Fatalf("n=%d: %d arena overflows", n, st.Overflows)
		}
	}
}

func TestMul_EdgeOperands(t *testing.T) {
	t.Parallel()
	s := newSelector(t, tinyThresholds())
	ones := func(n int) []limb.Limb {
		x := make([]limb.Limb, n)
		for i := range x {
			x[i] = limb.Max
		}
		return x
	}
	pow := func(n int) []limb.Limb {
		x := make([]limb.Limb, n)
		x[n-1] = 1
		return x
	}
	for _, n := range []int{1, 2, 9, 24, 40, 65} {
		for _, pair := range [][2][]limb.Limb{
			{ones(n), ones(n)},
			{pow(n), ones(n)},
			{make([]limb.Limb, n), ones(n)},
			{ones(n), []limb.Limb{1}},
		} {
			x, y := pair[0], pair[1]
			z := make([]limb.Limb, len(x)+len(y))
			l := s.Mul(z, x, y)
			want := bigMul(x, y)
			if got := limbtest.ToBig(z); got.Cmp(want) != 0 {
				t.Fatalf("n=%d: got %x want %x", n, got, want)
			}
			if l != len(limbtest.FromBig(want)) {
				t.Fatalf("n=%d: normalized length %d", n, l)
			}
		}
	}
}

func TestMul_IdentityAndUnbalanced(t *testing.T) {
	t.Parallel()
	s := newSelector(t, tinyThresholds())
	rng := limbtest.NewRand(7)
	for _, n := range []int{3, 50, 301} {
		x := limbtest.RandomNonZeroTop(rng, n)
		z := make([]limb.Limb, n+1)
		if l := s.Mul(z, x, []limb.Limb{1}); l != n {
			t.Fatalf("x·1 length %d, want %d", l, n)
		}
		if diff := cmp.Diff(x, z[:n]); diff != "" {
			t.Fatalf("x·1 != x:\n%s", diff)
		}
	}
	for _, sh := range [][2]int{{100, 3}, {101, 50}, {250, 41}, {400, 120}} {
		x, y := limbtest.Random(rng, sh[0]), limbtest.Random(rng, sh[1])
		z, st := forceMul(s, Unbalanced, x, y)
		if got := limbtest.ToBig(z); got.Cmp(bigMul(x, y)) != 0 {
			t.Fatalf("unbalanced %v: mismatch", sh)
		}
		if st.Overflows != 0 {
			t.Fatalf("unbalanced %v: %d overflows", sh, st.Overflows)
		}
	}
}

func TestThresholdsDoNotChangeProducts(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(8)
	alt := tinyThresholds()
	alt.Toom33, alt.Toom44, alt.Toom6H, alt.Toom8H, alt.Transform = 30, 30, 30, 30, 30
	selectors := []*Selector{
		newSelector(t, tinyThresholds()),
		newSelector(t, alt),
		newSelector(t, config.DefaultThresholds()),
	}
	for range 20 {
		n := 1 + rng.IntN(200)
		m := 1 + rng.IntN(n)
		x, y := limbtest.Random(rng, n), limbtest.Random(rng, m)
		var first []limb.Limb
		for i, s := range selectors {
			z := make([]limb.Limb, n+m)
			s.Mul(z, x, y)
			if i == 0 {
				first = z
				continue
			}
			if diff := cmp.Diff(first, z); diff != "" {
				t.Fatalf("%d×%d: selector %d disagrees:\n%s", n, m, i, diff)
			}
		}
	}
}

func TestMulProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)
	s := newSelector(t, tinyThresholds())

	limbs := gen.SliceOfN(90, gen.UInt64()).Map(func(v []uint64) []limb.Limb {
		out := make([]limb.Limb, len(v))
		for i, w := range v {
			out[i] = limb.Limb(w)
		}
		return out
	})
	lengths := gen.IntRange(0, 90)

	properties.Property("product matches math/big", prop.ForAll(
		func(xs, ys []limb.Limb, n, m int) bool {
			x, y := xs[:min(n, len(xs))], ys[:min(m, len(ys))]
			n, m = len(x), len(y)
			z := make([]limb.Limb, n+m)
			s.Mul(z, x, y)
			return limbtest.ToBig(z).Cmp(bigMul(x, y)) == 0
		},
		limbs, limbs, lengths, lengths,
	))

	properties.Property("multiplication commutes", prop.ForAll(
		func(xs, ys []limb.Limb, n, m int) bool {
			x, y := xs[:min(n, len(xs))], ys[:min(m, len(ys))]
			n, m = len(x), len(y)
			z1 := make([]limb.Limb, n+m)
			z2 := make([]limb.Limb, n+m)
			s.Mul(z1, x, y)
			s.Mul(z2, y, x)
			return cmp.Equal(z1, z2)
		},
		limbs, limbs, lengths, lengths,
	))

	properties.Property("square equals multiply", prop.ForAll(
		func(xs []limb.Limb, n int) bool {
			x := xs[:min(n, len(xs))]
			n = len(x)
			sq := make([]limb.Limb, 2*n)
			s.Sqr(sq, x)
			return limbtest.ToBig(sq).Cmp(bigMul(x, x)) == 0
		},
		limbs, lengths,
	))

	properties.TestingRun(t)
}

func TestMul_ConcurrentCalls(t *testing.T) {
	t.Parallel()
	s := newSelector(t, tinyThresholds())
	var g errgroup.Group
	for w := range 8 {
		g.Go(func() error {
			rng := limbtest.NewRand(uint64(100 + w))
			for range 20 {
				n := 1 + rng.IntN(120)
				x, y := limbtest.Random(rng, n), limbtest.Random(rng, 1+rng.IntN(n))
				z := make([]limb.Limb, len(x)+len(y))
				s.Mul(z, x, y)
				if limbtest.ToBig(z).Cmp(bigMul(x, y)) != 0 {
					return fmt.Errorf("worker %d: %d×%d mismatch", w, len(x), len(y))
				}
				sq := make([]limb.Limb, 2*n)
				s.Sqr(sq, x)
				if limbtest.ToBig(sq).Cmp(bigMul(x, x)) != 0 {
					return fmt.Errorf("worker %d: square of %d limbs mismatch", w, n)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func BenchmarkMul(b *testing.B) {
	rng := limbtest.NewRand(9)
	s := Default()
	for _, n := range []int{16, 256, 4096} {
		x, y := limbtest.Random(rng, n), limbtest.Random(rng, n)
		z := make([]limb.Limb, 2*n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for b.Loop() {
				s.Mul(z, x, y)
			}
		})
	}
}
