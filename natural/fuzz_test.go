package natural

import (
	"math/big"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"

	"github.com/agbru/bignum/rounding"
)

// operands decodes two magnitudes, a rounding mode and a shift amount
// from fuzzer input.
func operands(data []byte) (x, y *big.Int, m rounding.Mode, s uint, ok bool) {
	c := fuzz.NewConsumer(data)
	xb, err := c.GetBytes()
	if err != nil {
		return nil, nil, 0, 0, false
	}
	yb, err := c.GetBytes()
	if err != nil {
		return nil, nil, 0, 0, false
	}
	mode, err := c.GetInt()
	if err != nil {
		return nil, nil, 0, 0, false
	}
	shift, err := c.GetUint64()
	if err != nil {
		return nil, nil, 0, 0, false
	}
	if len(xb) > 1<<13 || len(yb) > 1<<13 {
		return nil, nil, 0, 0, false
	}
	m = rounding.Modes[uint(mode)%uint(len(rounding.Modes))]
	return new(big.Int).SetBytes(xb), new(big.Int).SetBytes(yb), m, uint(shift % 4096), true
}

func FuzzArithmetic(f *testing.F) {
	f.Add([]byte("\x00\x00\x00\x02\x17\x00\x00\x00\x00\x01\x0a"))
	f.Add(make([]byte, 64))
	f.Fuzz(func(t *testing.T, data []byte) {
		bx, by, _, s, ok := operands(data)
		if !ok {
			return
		}
		x, y := fromBig(bx), fromBig(by)
		if got := toBig(x.Mul(y)); got.Cmp(new(big.Int).Mul(bx, by)) != 0 {
			t.Fatalf("product mismatch for %d×%d limbs", x.LimbLen(), y.LimbLen())
		}
		if got := toBig(x.Square()); got.Cmp(new(big.Int).Mul(bx, bx)) != 0 {
			t.Fatal("square mismatch")
		}
		if got := toBig(x.GCD(y)); got.Cmp(new(big.Int).GCD(nil, nil, bx, by)) != 0 {
			t.Fatal("gcd mismatch")
		}
		if got := toBig(x.Shl(s).Shr(s)); got.Cmp(bx) != 0 {
			t.Fatal("shift round trip mismatch")
		}
		if !y.IsZero() {
			q, r, err := x.DivMod(y)
			wq, wr := new(big.Int).QuoRem(bx, by, new(big.Int))
			if err != nil || toBig(q).Cmp(wq) != 0 || toBig(r).Cmp(wr) != 0 {
				t.Fatal("division mismatch")
			}
		}
	})
}

func FuzzRounding(f *testing.F) {
	f.Add([]byte("\x00\x00\x00\x01\x19\x00\x00\x00\x01\x0a\x00\x00\x00\x04"))
	f.Fuzz(func(t *testing.T, data []byte) {
		bx, by, m, s, ok := operands(data)
		if !ok || m == rounding.Exact {
			return
		}
		x, y := fromBig(bx), fromBig(by)
		a, oa, err := x.ShrRound(s, m)
		if err != nil {
			t.Fatalf("ShrRound: %v", err)
		}
		b, ob, err := x.DivRound(Natural{small: 1}.Shl(s), m)
		if err != nil || !a.Equal(b) || oa != ob {
			t.Fatalf("ShrRound(%d, %s) disagrees with DivRound", s, m)
		}
		if y.IsZero() {
			return
		}
		q, o, err := x.DivRound(y, m)
		if err != nil {
			t.Fatalf("DivRound: %v", err)
		}
		if c := new(big.Int).Mul(toBig(q), by).Cmp(bx); rounding.Ordering(c) != o {
			t.Fatalf("ordering %s but q·d vs x is %d", o, c)
		}
		down, _, _ := x.DivRound(y, rounding.Down)
		up, _, _ := x.DivRound(y, rounding.Up)
		if diff, err := up.Sub(down); err != nil || diff.Cmp(FromUint64(1)) > 0 {
			t.Fatal("Up and Down differ by more than one")
		}
	})
}
