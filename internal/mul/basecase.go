package mul

import (
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// MulBasecase sets z = x*y by long multiplication. len(z) must be
// len(x)+len(y) and z must not alias x or y. Either operand may be empty.
func MulBasecase(z, x, y []limb.Limb) {
	n, m := len(x), len(y)
	apperrors.CheckLen("MulBasecase", len(z), n+m)
	if n == 0 || m == 0 {
		clear(z)
		return
	}
	z[n] = limb.MulAddVWW(z[:n], x, y[0], 0)
	for i := 1; i < m; i++ {
		z[n+i] = limb.AddMulVVW(z[i:n+i], x, y[i])
	}
}

// SqrBasecase sets z = x*x. len(z) must be 2*len(x) and z must not alias x.
//
// Each cross product x[i]*x[j] (i < j) is formed once, the sum is doubled
// by a one-bit shift, and the squares of the limbs are added last.
func SqrBasecase(z, x []limb.Limb) {
	n := len(x)
	apperrors.CheckLen("SqrBasecase", len(z), 2*n)
	clear(z)
	if n == 0 {
		return
	}
	for i := 0; i < n-1; i++ {
		z[n+i] = limb.AddMulVVW(z[2*i+1:n+i], x[i+1:], x[i])
	}
	limb.ShlVU(z, z, 1)

	var c limb.Limb
	for i, v := range x {
		hi, lo := limb.MulWW(v, v)
		z[2*i], c = limb.AddWW(z[2*i], lo, c)
		z[2*i+1], c = limb.AddWW(z[2*i+1], hi, c)
	}
}
