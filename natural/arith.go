package natural

import (
	"math/bits"

	"github.com/agbru/bignum/internal/arena"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Add returns x + y.
func (x Natural) Add(y Natural) Natural {
	if x.large == nil && y.large == nil {
		sum, c := limb.AddWW(x.small, y.small, 0)
		if c == 0 {
			return Natural{small: sum}
		}
		return Natural{large: []limb.Limb{sum, c}}
	}
	xl, yl := x.limbs(), y.limbs()
	if len(xl) < len(yl) {
		xl, yl = yl, xl
	}
	z := make([]limb.Limb, len(xl)+1)
	z[len(xl)] = limb.Add(z[:len(xl)], xl, yl)
	return fromLimbs(z)
}

// Sub returns x - y, or ErrNegativeResult when y > x.
func (x Natural) Sub(y Natural) (Natural, error) {
	if x.Cmp(y) < 0 {
		return Natural{}, apperrors.NewArithmeticError("Sub", apperrors.NegativeResult)
	}
	if x.large == nil {
		return Natural{small: x.small - y.small}, nil
	}
	xl := x.limbs()
	z := make([]limb.Limb, len(xl))
	limb.Sub(z, xl, y.limbs())
	return fromLimbs(z), nil
}

// Mul returns x * y.
func (x Natural) Mul(y Natural) Natural {
	if x.IsZero() || y.IsZero() {
		return Natural{}
	}
	if x.large == nil && y.large == nil {
		hi, lo := limb.MulWW(x.small, y.small)
		return fromLimbs([]limb.Limb{lo, hi})
	}
	xl, yl := x.limbs(), y.limbs()
	z := make([]limb.Limb, len(xl)+len(yl))
	return fromLimbs(z[:active().sel.Mul(z, xl, yl)])
}

// Square returns x * x.
func (x Natural) Square() Natural {
	if x.large == nil {
		hi, lo := limb.MulWW(x.small, x.small)
		return fromLimbs([]limb.Limb{lo, hi})
	}
	z := make([]limb.Limb, 2*len(x.large))
	return fromLimbs(z[:active().sel.Sqr(z, x.large)])
}

// Pow returns x^e. Pow(0) is 1 for every x, including zero.
func (x Natural) Pow(e uint64) Natural {
	switch {
	case e == 0:
		return Natural{small: 1}
	case x.IsZero() || e == 1:
		return x
	}
	if x.large == nil && x.small&(x.small-1) == 0 {
		// Powers of two are a shift.
		if n, ok := powerOfTwoShift(uint64(limb.TrailingZeros(x.small)), e); ok {
			return Natural{small: 1}.Shl(n)
		}
	}
	z := x
	for i := 62 - bits.LeadingZeros64(e); i >= 0; i-- {
		z = z.Square()
		if e>>uint(i)&1 == 1 {
			z = z.Mul(x)
		}
	}
	return z
}

// powerOfTwoShift returns s·e when the product neither wraps nor exceeds
// the largest shift Pow performs directly.
func powerOfTwoShift(s, e uint64) (uint, bool) {
	hi, lo := bits.Mul64(s, e)
	if hi != 0 || lo >= 1<<32 {
		return 0, false
	}
	return uint(lo), true
}

// DivMod returns the quotient and remainder of x / y, or
// ErrDivisionByZero when y == 0.
func (x Natural) DivMod(y Natural) (q, r Natural, err error) {
	if y.IsZero() {
		return Natural{}, Natural{}, apperrors.NewArithmeticError("DivMod", apperrors.DivisionByZero)
	}
	if x.large == nil && y.large == nil {
		return Natural{small: x.small / y.small}, Natural{small: x.small % y.small}, nil
	}
	if y.large == nil {
		xl := x.limbs()
		z := make([]limb.Limb, len(xl))
		rem := limb.DivW(z, xl, y.small)
		return fromLimbs(z), Natural{small: rem}, nil
	}
	ql, rl := limb.DivMod(x.limbs(), y.large)
	return fromLimbs(ql), fromLimbs(rl), nil
}

// Div returns the truncated quotient x / y.
func (x Natural) Div(y Natural) (Natural, error) {
	q, _, err := x.DivMod(y)
	if err != nil {
		return Natural{}, apperrors.WrapError(err, "Div")
	}
	return q, nil
}

// Mod returns x mod y.
func (x Natural) Mod(y Natural) (Natural, error) {
	if y.IsZero() {
		return Natural{}, apperrors.NewArithmeticError("Mod", apperrors.DivisionByZero)
	}
	if y.large == nil {
		return Natural{small: limb.ModW(x.limbs(), y.small)}, nil
	}
	_, r, err := x.DivMod(y)
	return r, err
}

// DivisibleBy reports whether y divides x. Zero divides only zero.
func (x Natural) DivisibleBy(y Natural) bool {
	if y.IsZero() {
		return x.IsZero()
	}
	r, _ := x.Mod(y)
	return r.IsZero()
}

// Shl returns x << s.
func (x Natural) Shl(s uint) Natural {
	xl := x.limbs()
	if len(xl) == 0 || s == 0 {
		return x
	}
	z := make([]limb.Limb, len(xl)+int(s/limb.Width)+1)
	return fromLimbs(z[:limb.ShiftLeft(z, xl, s)])
}

// Shr returns x >> s, discarding the shifted-out bits.
func (x Natural) Shr(s uint) Natural {
	if x.large == nil {
		if s >= limb.Width {
			return Natural{}
		}
		return Natural{small: x.small >> s}
	}
	n := len(x.large) - int(s/limb.Width)
	if n <= 0 {
		return Natural{}
	}
	z := make([]limb.Limb, n)
	return fromLimbs(z[:limb.ShiftRight(z, x.large, s)])
}

// GCD returns the greatest common divisor of x and y. GCD(0, 0) is 0.
func (x Natural) GCD(y Natural) Natural {
	return fromLimbs(active().gcd.GCD(x.limbs(), y.limbs()))
}

// Reduction is the result of HalfGCD: (a; b) = M·(Alpha; Beta) where M is
// the product of Steps Euclidean step matrices and Det is its determinant.
type Reduction struct {
	Alpha, Beta Natural
	M           [2][2]Natural
	Det         int
	Steps       int
}

// HalfGCD reduces (a, b) with a ≥ b along their Euclidean remainder
// sequence for as long as the pair (α, β) reached satisfies β ≥ 2^s and
// α - β ≥ 2^s.
func HalfGCD(a, b Natural, s uint) (Reduction, error) {
	if a.Cmp(b) < 0 {
		return Reduction{}, apperrors.ValidationError{Field: "b", Message: "must not exceed a"}
	}
	al, bl := a.limbs(), b.limbs()
	g := active().gcd
	ar := arena.New(g.ReduceScratch(len(al), int(s)))
	defer ar.Free()
	res := g.Reduce(al, bl, int(s), ar)
	out := Reduction{
		Alpha: fromLimbs(append([]limb.Limb(nil), res.Alpha...)),
		Beta:  fromLimbs(append([]limb.Limb(nil), res.Beta...)),
		Det:   res.M.Det(),
		Steps: res.Steps,
	}
	for i := range 2 {
		for j := range 2 {
			out.M[i][j] = fromLimbs(append([]limb.Limb(nil), res.M.Entry(i, j)...))
		}
	}
	return out, nil
}
