package natural

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/bignum/internal/limb/limbtest"
	"github.com/agbru/bignum/rounding"
)

func TestDivRound_Scenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, d uint64
		m    rounding.Mode
		want uint64
		o    rounding.Ordering
	}{
		{23, 10, rounding.Nearest, 2, rounding.Less},
		{25, 10, rounding.Nearest, 2, rounding.Less},
		{35, 10, rounding.Nearest, 4, rounding.Greater},
		{26, 10, rounding.Nearest, 3, rounding.Greater},
		{23, 10, rounding.Down, 2, rounding.Less},
		{23, 10, rounding.Up, 3, rounding.Greater},
		{23, 10, rounding.Floor, 2, rounding.Less},
		{23, 10, rounding.Ceiling, 3, rounding.Greater},
		{30, 10, rounding.Exact, 3, rounding.Equal},
		{0, 7, rounding.Up, 0, rounding.Equal},
	}
	for _, tt := range tests {
		q, o, err := FromUint64(tt.x).DivRound(FromUint64(tt.d), tt.m)
		require.NoError(t, err)
		got, _ := q.Uint64()
		assert.Equal(t, tt.want, got, "%d/%d %s", tt.x, tt.d, tt.m)
		assert.Equal(t, tt.o, o, "%d/%d %s", tt.x, tt.d, tt.m)
	}
}

func TestShrRound_Scenario(t *testing.T) {
	t.Parallel()
	q, o, err := FromUint64(999).ShrRound(3, rounding.Floor)
	require.NoError(t, err)
	assert.Equal(t, "124", q.String())
	assert.Equal(t, rounding.Less, o)

	_, _, err = FromUint64(999).ShrRound(3, rounding.Exact)
	assert.True(t, errors.Is(err, ErrInexact))
}

func TestDivRound_Errors(t *testing.T) {
	t.Parallel()
	_, _, err := FromUint64(5).DivRound(Natural{}, rounding.Down)
	assert.True(t, errors.Is(err, ErrDivisionByZero))

	big1 := MustParse("340282366920938463463374607431768211457", 10) // 2^128 + 1
	_, _, err = big1.DivRound(MustParse("18446744073709551616", 10), rounding.Exact)
	assert.True(t, errors.Is(err, ErrInexact))
}

// TestDivRound_Laws checks Down ≤ x/d ≤ Up, Floor ≤ Nearest ≤ Ceiling and
// that Exact succeeds iff d divides x, for single and multi-limb divisors.
func TestDivRound_Laws(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(111)
	for _, n := range []int{0, 1, 3, 12} {
		for _, m := range []int{1, 2, 5} {
			if m > n && n > 0 {
				continue
			}
			x, d := randNatural(rng, n), randNatural(rng, m)
			if d.IsZero() {
				continue
			}
			for _, xx := range []Natural{x, x.Mul(d)} {
				bx, bd := toBig(xx), toBig(d)
				trunc, rem := new(big.Int).QuoRem(bx, bd, new(big.Int))

				results := map[rounding.Mode]*big.Int{}
				for _, mode := range []rounding.Mode{rounding.Down, rounding.Up, rounding.Floor, rounding.Ceiling, rounding.Nearest} {
					q, o, err := xx.DivRound(d, mode)
					require.NoError(t, err)
					results[mode] = toBig(q)
					// o compares q·d with x.
					want := new(big.Int).Mul(toBig(q), bd).Cmp(bx)
					assert.Equal(t, rounding.Ordering(want), o, "ordering for %s", mode)
				}
				assert.Zero(t, results[rounding.Down].Cmp(trunc))
				assert.LessOrEqual(t, results[rounding.Floor].Cmp(results[rounding.Nearest]), 0)
				assert.LessOrEqual(t, results[rounding.Nearest].Cmp(results[rounding.Ceiling]), 0)

				// Nearest against an independent computation with ties to even.
				twice := new(big.Int).Lsh(rem, 1)
				nearest := new(big.Int).Set(trunc)
				if c := twice.Cmp(bd); c > 0 || (c == 0 && trunc.Bit(0) == 1) {
					nearest.Add(nearest, big.NewInt(1))
				}
				assert.Zero(t, results[rounding.Nearest].Cmp(nearest))

				_, _, err := xx.DivRound(d, rounding.Exact)
				assert.Equal(t, rem.Sign() != 0, errors.Is(err, ErrInexact))
			}
		}
	}
}

func TestShrRound_ShiftByZeroIsIdentity(t *testing.T) {
	t.Parallel()
	x := randNatural(limbtest.NewRand(112), 4)
	for _, m := range rounding.Modes {
		q, o, err := x.ShrRound(0, m)
		require.NoError(t, err)
		assert.True(t, q.Equal(x), "mode %s", m)
		assert.Equal(t, rounding.Equal, o)
	}
}

func TestShrRound_MatchesDivRound(t *testing.T) {
	t.Parallel()
	rng := limbtest.NewRand(113)
	x := randNatural(rng, 6)
	for _, s := range []uint{1, 7, 64, 65, 130, 500} {
		for _, m := range []rounding.Mode{rounding.Down, rounding.Up, rounding.Nearest} {
			a, oa, err := x.ShrRound(s, m)
			require.NoError(t, err)
			b, ob, err := x.DivRound(Natural{small: 1}.Shl(s), m)
			require.NoError(t, err)
			assert.True(t, a.Equal(b), "s=%d %s", s, m)
			assert.Equal(t, ob, oa)
		}
	}
}

func TestAssignLeavesValueOnFailure(t *testing.T) {
	t.Parallel()
	x := FromUint64(999)
	_, err := x.ShrRoundAssign(3, rounding.Exact)
	require.Error(t, err)
	assert.Equal(t, "999", x.String())

	_, err = x.DivRoundAssign(Natural{}, rounding.Down)
	require.Error(t, err)
	assert.Equal(t, "999", x.String())

	o, err := x.DivRoundAssign(FromUint64(10), rounding.Nearest)
	require.NoError(t, err)
	assert.Equal(t, "100", x.String())
	assert.Equal(t, rounding.Greater, o)

	o, err = x.ShrRoundAssign(2, rounding.Down)
	require.NoError(t, err)
	assert.Equal(t, "25", x.String())
	assert.Equal(t, rounding.Equal, o)
}

func TestDivRoundSigned(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x     int64
		d     int64
		m     rounding.Mode
		want  int64
		order rounding.Ordering
	}{
		{-23, 10, rounding.Floor, -3, rounding.Less},
		{-23, 10, rounding.Ceiling, -2, rounding.Greater},
		{-23, 10, rounding.Down, -2, rounding.Greater},
		{-23, 10, rounding.Up, -3, rounding.Less},
		{-25, 10, rounding.Nearest, -2, rounding.Greater},
		{23, -10, rounding.Floor, -3, rounding.Less},
		{-23, -10, rounding.Floor, 2, rounding.Less},
		{-1, 3, rounding.Ceiling, 0, rounding.Greater},
		{0, -3, rounding.Floor, 0, rounding.Equal},
	}
	for _, tt := range tests {
		x, xn := magnitude(tt.x)
		d, dn := magnitude(tt.d)
		q, neg, o, err := DivRoundSigned(x, xn, d, dn, tt.m)
		require.NoError(t, err)
		assert.Equal(t, tt.want, signedValue(q, neg), "%d/%d %s", tt.x, tt.d, tt.m)
		assert.Equal(t, tt.order, o, "%d/%d %s", tt.x, tt.d, tt.m)

		native, no, err := rounding.DivRoundInt64(tt.x, tt.d, tt.m)
		require.NoError(t, err)
		assert.Equal(t, native, tt.want, "native %d/%d %s", tt.x, tt.d, tt.m)
		assert.Equal(t, no, o)
	}
}

func TestShrRoundSigned(t *testing.T) {
	t.Parallel()
	for _, x := range []int64{-999, -8, -1, 0, 1, 999} {
		for _, s := range []int{-3, 0, 1, 3, 70} {
			for _, m := range []rounding.Mode{rounding.Down, rounding.Up, rounding.Floor, rounding.Ceiling, rounding.Nearest} {
				mag, neg := magnitude(x)
				q, qn, o, err := ShrRoundSigned(mag, neg, s, m)
				require.NoError(t, err)
				want, wo, err := rounding.ShrRoundInt64(x, s, m)
				require.NoError(t, err)
				assert.Equal(t, want, signedValue(q, qn), "%d >> %d %s", x, s, m)
				assert.Equal(t, wo, o, "%d >> %d %s", x, s, m)
			}
		}
	}
}

func magnitude(v int64) (Natural, bool) {
	if v < 0 {
		return FromUint64(uint64(-v)), true
	}
	return FromUint64(uint64(v)), false
}

func signedValue(x Natural, neg bool) int64 {
	v, _ := x.Uint64()
	if neg {
		return -int64(v)
	}
	return int64(v)
}

func TestRoundToMultiple(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, d uint64
		m    rounding.Mode
		want uint64
	}{
		{23, 10, rounding.Down, 20},
		{23, 10, rounding.Up, 30},
		{25, 10, rounding.Nearest, 20},
		{35, 10, rounding.Nearest, 40},
		{30, 10, rounding.Exact, 30},
	}
	for _, tt := range tests {
		got, _, err := FromUint64(tt.x).RoundToMultiple(FromUint64(tt.d), tt.m)
		require.NoError(t, err)
		v, _ := got.Uint64()
		assert.Equal(t, tt.want, v, "%d to multiple of %d %s", tt.x, tt.d, tt.m)
	}

	z, _, err := Natural{}.RoundToMultiple(Natural{}, rounding.Exact)
	require.NoError(t, err)
	assert.True(t, z.IsZero())
	_, _, err = FromUint64(1).RoundToMultiple(Natural{}, rounding.Down)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
}

func TestRoundToMultipleOfPowerOf2(t *testing.T) {
	t.Parallel()
	got, o, err := FromUint64(999).RoundToMultipleOfPowerOf2(3, rounding.Floor)
	require.NoError(t, err)
	assert.Equal(t, "992", got.String())
	assert.Equal(t, rounding.Less, o)

	got, o, err = FromUint64(999).RoundToMultipleOfPowerOf2(3, rounding.Ceiling)
	require.NoError(t, err)
	assert.Equal(t, "1000", got.String())
	assert.Equal(t, rounding.Greater, o)

	_, _, err = FromUint64(999).RoundToMultipleOfPowerOf2(3, rounding.Exact)
	assert.True(t, errors.Is(err, ErrInexact))
}
