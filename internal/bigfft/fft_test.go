package bigfft

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/limb"
	"github.com/agbru/bignum/internal/limb/limbtest"
)

func bnm1Modulus(rn int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(rn*limb.Width))
	return m.Sub(m, big.NewInt(1))
}

func TestFFTSize(t *testing.T) {
	t.Parallel()
	if k := fftSize(1); k != 3 {
		t.Errorf("fftSize(1) = %d, want 3", k)
	}
	prev := uint(0)
	for words := 1; words < 1<<20; words *= 3 {
		k := fftSize(words)
		if k < prev {
			t.Fatalf("fftSize not monotone at %d words", words)
		}
		prev = k
	}
}

func TestValueSize(t *testing.T) {
	t.Parallel()
	for k := uint(2); k < 12; k++ {
		for _, m := range []int{1, 2, 7, 64, 1000} {
			n := valueSize(k, m)
			bits := n * limb.Width
			if bits < 2*m*limb.Width+int(k)+2 {
				t.Fatalf("valueSize(%d, %d) = %d limbs is too small", k, m, n)
			}
			if bits%(1<<k) != 0 {
				t.Fatalf("valueSize(%d, %d) = %d bits is not a multiple of %d", k, m, bits, 1<<k)
			}
		}
	}
}

func TestPlanModulus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rn int
		ok bool
	}{
		{8, false},
		{15, false},
		{16, true},
		{17, false},
		{18, false},
		{64, true},
		{96, true},
		{1024, true},
	}
	for _, tt := range tests {
		p, ok := PlanModulus(tt.rn)
		if ok != tt.ok {
			t.Errorf("PlanModulus(%d) ok = %v, want %v", tt.rn, ok, tt.ok)
			continue
		}
		if ok && (p.Len() != tt.rn || p.N >= tt.rn || p.K < 2) {
			t.Errorf("PlanModulus(%d) = %+v", tt.rn, p)
		}
	}
}

func TestPlanProductCovers(t *testing.T) {
	t.Parallel()
	for _, words := range []int{16, 17, 100, 1000, 12345} {
		p := PlanProduct(words)
		if p.Len() <= words {
			t.Errorf("PlanProduct(%d).Len() = %d does not cover the product", words, p.Len())
		}
	}
}

func TestMulCyclic_FullProduct(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(21)
	for _, sz := range [][2]int{{16, 16}, {20, 17}, {40, 33}, {100, 100}, {257, 130}} {
		x := limbtest.RandomNonZeroTop(rng, sz[0])
		y := limbtest.RandomNonZeroTop(rng, sz[1])
		p := PlanProduct(sz[0] + sz[1])

		a := arena.New(p.Len() + Scratch(p, bigMultiplier{}, false, false))
		z := a.Alloc(p.Len())
		MulCyclic(z, x, y, p, bigMultiplier{}, a)
		st := a.Stats()
		a.Free()

		want := new(big.Int).Mul(limbtest.ToBig(x), limbtest.ToBig(y))
		if got := limbtest.ToBig(z); got.Cmp(want) != 0 {
			t.Fatalf("%d×%d: got %x want %x", sz[0], sz[1], got, want)
		}
		if st.Overflows != 0 {
			t.Fatalf("%d×%d: %d arena overflows", sz[0], sz[1], st.Overflows)
		}
	}
}

func TestSqrCyclic_MatchesMul(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(22)
	for _, n := range []int{16, 31, 64, 200} {
		x := limbtest.Random(rng, n)
		p := PlanProduct(2 * n)
		sq := make([]limb.Limb, p.Len())
		SqrCyclic(sq, x, p, bigMultiplier{}, nil)
		mul := make([]limb.Limb, p.Len())
		MulCyclic(mul, x, x, p, bigMultiplier{}, nil)
		if diff := cmp.Diff(mul, sq); diff != "" {
			t.Fatalf("n=%d: SqrCyclic != MulCyclic:\n%s", n, diff)
		}
	}
}

func TestMulCyclic_WrapsModBnm1(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(23)
	for _, rn := range []int{16, 32, 64, 96, 256} {
		p, ok := PlanModulus(rn)
		if !ok {
			t.Fatalf("no plan for %d", rn)
		}
		mod := bnm1Modulus(rn)
		for range 5 {
			x, y := limbtest.Random(rng, rn), limbtest.Random(rng, rn)
			z := make([]limb.Limb, rn)
			MulCyclic(z, x, y, p, bigMultiplier{}, nil)

			want := new(big.Int).Mul(limbtest.ToBig(x), limbtest.ToBig(y))
			want.Mod(want, mod)
			got := limbtest.ToBig(z)
			if got.Mod(got, mod).Cmp(want) != 0 {
				t.Fatalf("rn=%d: got %x want %x", rn, got, want)
			}
		}
	}
}

func TestMulNegacyclic_ModBnp1(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(24)
	for _, rn := range []int{16, 32, 64, 96, 256} {
		p, ok := PlanModulus(rn)
		if !ok {
			t.Fatalf("no plan for %d", rn)
		}
		mod := fermatModulus(rn)
		for range 5 {
			x, y := limbtest.Random(rng, rn), limbtest.Random(rng, rn)

			a := arena.New(Scratch(p, bigMultiplier{}, false, true))
			z := make([]limb.Limb, rn+1)
			MulNegacyclic(z, x, y, p, bigMultiplier{}, a)
			overflows := a.Stats().Overflows
			a.Free()

			want := new(big.Int).Mul(limbtest.ToBig(x), limbtest.ToBig(y))
			want.Mod(want, mod)
			if got := limbtest.ToBig(z); !normalized(z) || got.Cmp(want) != 0 {
				t.Fatalf("rn=%d: got %x want %x", rn, got, want)
			}
			if overflows != 0 {
				t.Fatalf("rn=%d: %d arena overflows", rn, overflows)
			}

			sq := make([]limb.Limb, rn+1)
			SqrNegacyclic(sq, x, p, bigMultiplier{}, nil)
			want.Mul(limbtest.ToBig(x), limbtest.ToBig(x))
			want.Mod(want, mod)
			if got := limbtest.ToBig(sq); got.Cmp(want) != 0 {
				t.Fatalf("rn=%d square: got %x want %x", rn, got, want)
			}
		}
	}
}

func TestMulCyclic_ZeroOperand(t *testing.T) {
	t.Parallel()
	p := PlanProduct(40)
	z := make([]limb.Limb, p.Len())
	z[0] = 7
	MulCyclic(z, nil, limbtest.RandomNonZeroTop(limbtest.NewRand(25), 20), p, bigMultiplier{}, nil)
	if !limb.IsZero(z) {
		t.Fatalf("0·y = %v", z)
	}
}

func FuzzMulCyclicVsBig(f *testing.F) {
	for _, size := range []int{8, 128, 512, 2048} {
		f.Add(make([]byte, 2*size))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		half := len(data) / 2
		if half > 1<<14 {
			return
		}
		x := new(big.Int).SetBytes(data[:half])
		y := new(big.Int).SetBytes(data[half:])
		xl, yl := limbtest.FromBig(x), limbtest.FromBig(y)

		p := PlanProduct(len(xl) + len(yl))
		z := make([]limb.Limb, p.Len())
		MulCyclic(z, xl, yl, p, bigMultiplier{}, nil)
		if got, want := limbtest.ToBig(z), new(big.Int).Mul(x, y); got.Cmp(want) != 0 {
			t.Fatalf("%d×%d limbs: mismatch", len(xl), len(yl))
		}
	})
}
