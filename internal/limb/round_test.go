package limb_test

import (
	"math/big"
	"testing"

	"github.com/agbru/bignum/internal/limb"
	"github.com/agbru/bignum/internal/limb/limbtest"
	"github.com/agbru/bignum/rounding"
)

// roundOracle rounds num/den (den > 0) per m using big.Int arithmetic.
func roundOracle(num, den *big.Int, m rounding.Mode) (*big.Int, rounding.Ordering, bool) {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() == 0 {
		return q, rounding.Equal, true
	}
	twice := new(big.Int).Lsh(r, 1)
	up := false
	switch m {
	case rounding.Down, rounding.Floor:
	case rounding.Up, rounding.Ceiling:
		up = true
	case rounding.Nearest:
		c := twice.Cmp(den)
		up = c > 0 || (c == 0 && q.Bit(0) == 1)
	case rounding.Exact:
		return nil, rounding.Equal, false
	}
	if up {
		return q.Add(q, big.NewInt(1)), rounding.Greater, true
	}
	return q, rounding.Less, true
}

func TestShrRound_MatchOracle(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(21)
	for range 40 {
		x := limbtest.Random(rng, 4)
		for _, s := range []uint{0, 1, 2, 7, limb.Width - 1, limb.Width, limb.Width + 1, 3 * limb.Width, 5 * limb.Width} {
			for _, m := range rounding.Modes {
				z := make([]limb.Limb, limb.ShrRoundLen(len(x), s))
				n, o, ok := limb.ShrRound(z, x, s, m)
				want, wo, wok := roundOracle(limbtest.ToBig(x), new(big.Int).Lsh(big.NewInt(1), s), m)
				if ok != wok {
					t.Fatalf("ShrRound(s=%d, %v) ok=%v want %v", s, m, ok, wok)
				}
				if !ok {
					continue
				}
				if limbtest.ToBig(z[:n]).Cmp(want) != 0 || o != wo {
					t.Fatalf("ShrRound(%x, %d, %v) = (%x, %v), want (%x, %v)",
						limbtest.ToBig(x), s, m, limbtest.ToBig(z[:n]), o, want, wo)
				}
			}
		}
	}
}

func TestShrRound_Scenario(t *testing.T) {
	t.Parallel()
	z := make([]limb.Limb, 2)
	n, o, ok := limb.ShrRound(z, []limb.Limb{999}, 3, rounding.Floor)
	if !ok || n != 1 || z[0] != 124 || o != rounding.Less {
		t.Fatalf("ShrRound(999, 3, Floor) = (%v, %v, %v)", z[:n], o, ok)
	}
}

func TestShrRound_CarryIntoNewLimb(t *testing.T) {
	t.Parallel()
	x := []limb.Limb{1, limb.Max}
	z := make([]limb.Limb, limb.ShrRoundLen(len(x), limb.Width))
	// x >> Width = Max with remainder 1: Ceiling carries into a new limb.
	n, o, ok := limb.ShrRound(z, x, limb.Width, rounding.Ceiling)
	if !ok || n != 2 || z[0] != 0 || z[1] != 1 || o != rounding.Greater {
		t.Fatalf("got (%v, %v, %v)", z[:n], o, ok)
	}
}

func TestDivRoundW_MatchOracle(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(22)
	for range 60 {
		x := limbtest.Random(rng, 3)
		d := limbtest.Random(rng, 1)[0]%97 + 1
		for _, m := range rounding.Modes {
			z := make([]limb.Limb, len(x))
			n, o, ok := limb.DivRoundW(z, x, d, m)
			want, wo, wok := roundOracle(limbtest.ToBig(x), new(big.Int).SetUint64(uint64(d)), m)
			if ok != wok {
				t.Fatalf("DivRoundW ok=%v want %v", ok, wok)
			}
			if ok && (limbtest.ToBig(z[:n]).Cmp(want) != 0 || o != wo) {
				t.Fatalf("DivRoundW(%x, %d, %v) = (%x, %v), want (%x, %v)",
					limbtest.ToBig(x), d, m, limbtest.ToBig(z[:n]), o, want, wo)
			}
		}
	}
}

func TestDivRoundW_Scenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x    limb.Limb
		m    rounding.Mode
		want limb.Limb
		o    rounding.Ordering
	}{
		{23, rounding.Nearest, 2, rounding.Less},
		{25, rounding.Nearest, 2, rounding.Less},
		{35, rounding.Nearest, 4, rounding.Greater},
		{20, rounding.Exact, 2, rounding.Equal},
		{21, rounding.Up, 3, rounding.Greater},
	}
	for _, tt := range tests {
		z := make([]limb.Limb, 1)
		n, o, ok := limb.DivRoundW(z, []limb.Limb{tt.x}, 10, tt.m)
		if !ok || n != 1 || z[0] != tt.want || o != tt.o {
			t.Errorf("DivRoundW(%d, 10, %v) = (%v, %v, %v), want (%d, %v)", tt.x, tt.m, z[:n], o, ok, tt.want, tt.o)
		}
	}
	z := make([]limb.Limb, 1)
	if _, _, ok := limb.DivRoundW(z, []limb.Limb{21}, 10, rounding.Exact); ok {
		t.Error("Exact on 21/10 should fail")
	}
}
