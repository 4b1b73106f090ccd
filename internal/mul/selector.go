package mul

import (
	"sync"

	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/bigfft"
	"github.com/agbru/bignum/internal/config"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Algorithm identifies one multiplication or squaring strategy.
type Algorithm uint8

const (
	Basecase Algorithm = iota
	// Unbalanced multiplies a long operand by a short one in chunks of
	// the short operand's length.
	Unbalanced
	Toom22
	Toom33
	Toom44
	Toom6H
	Toom8H
	// ModBnm1 squares through x² mod B^rn-1 with rn >= 2n. Squaring only.
	ModBnm1
	Transform
)

var algorithmNames = [...]string{
	Basecase:   "basecase",
	Unbalanced: "unbalanced",
	Toom22:     "toom22",
	Toom33:     "toom33",
	Toom44:     "toom44",
	Toom6H:     "toom6h",
	Toom8H:     "toom8h",
	ModBnm1:    "mod_bnm1",
	Transform:  "transform",
}

func (a Algorithm) String() string {
	if int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return "unknown"
}

// ways returns the split count of a Toom variant.
func (a Algorithm) ways() int {
	switch a {
	case Toom22:
		return 2
	case Toom33:
		return 3
	case Toom44:
		return 4
	case Toom6H:
		return 6
	case Toom8H:
		return 8
	}
	return 0
}

// smaller returns the next algorithm down the cascade.
func (a Algorithm) smaller(sqr bool) Algorithm {
	switch a {
	case Transform:
		if sqr {
			return ModBnm1
		}
		return Toom8H
	case ModBnm1:
		return Toom8H
	case Toom8H, Toom6H, Toom44, Toom33, Toom22:
		return a - 1
	}
	return Basecase
}

// Observer receives one event per top-level Mul or Sqr call with the
// algorithm chosen at the top and the arena usage of the whole call tree.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveMul(alg Algorithm, n, m int, st arena.Stats)
	ObserveSqr(alg Algorithm, n int, st arena.Stats)
}

// Observers forwards every event to each of its elements in order.
type Observers []Observer

// ObserveMul implements Observer.
func (o Observers) ObserveMul(alg Algorithm, n, m int, st arena.Stats) {
	for _, x := range o {
		x.ObserveMul(alg, n, m, st)
	}
}

// ObserveSqr implements Observer.
func (o Observers) ObserveSqr(alg Algorithm, n int, st arena.Stats) {
	for _, x := range o {
		x.ObserveSqr(alg, n, st)
	}
}

// Join returns an Observer reporting to both a and b, either of which may
// be nil.
func Join(a, b Observer) Observer {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return Observers{a, b}
}

// Selector chooses and runs multiplication algorithms by operand length.
// A Selector is immutable and safe for concurrent use.
type Selector struct {
	t   config.Thresholds
	obs Observer
}

// New returns a Selector for the given thresholds. obs may be nil.
func New(t config.Thresholds, obs Observer) (*Selector, error) {
	if err := t.Validate(); err != nil {
		return nil, apperrors.WrapError(err, "mul: invalid thresholds")
	}
	return &Selector{t: t, obs: obs}, nil
}

var defaultSelector = sync.OnceValue(func() *Selector {
	return &Selector{t: config.Default()}
})

// Default returns the process-wide Selector built from config.Default.
func Default() *Selector { return defaultSelector() }

// Thresholds returns the table s was built with.
func (s *Selector) Thresholds() config.Thresholds { return s.t }

// Choose returns the algorithm used for an n×m product.
func (s *Selector) Choose(n, m int) Algorithm {
	if n < m {
		n, m = m, n
	}
	if m < max(s.t.Toom22, 2) {
		return Basecase
	}
	if m <= (n+1)/2 {
		return Unbalanced
	}
	var alg Algorithm
	switch {
	case m >= s.t.Transform:
		alg = Transform
	case m >= s.t.Toom8H:
		alg = Toom8H
	case m >= s.t.Toom6H:
		alg = Toom6H
	case m >= s.t.Toom44:
		alg = Toom44
	case m >= s.t.Toom33:
		alg = Toom33
	default:
		alg = Toom22
	}
	return s.fit(alg, n, m, false)
}

// ChooseSqr returns the algorithm used to square an n-limb operand.
func (s *Selector) ChooseSqr(n int) Algorithm {
	if n < max(s.t.SqrToom2, 2) {
		return Basecase
	}
	var alg Algorithm
	switch {
	case n >= s.t.SqrTransform:
		alg = Transform
	case n >= s.t.SqrMod:
		alg = ModBnm1
	case n >= s.t.SqrToom8:
		alg = Toom8H
	case n >= s.t.SqrToom6:
		alg = Toom6H
	case n >= s.t.SqrToom4:
		alg = Toom44
	case n >= s.t.SqrToom3:
		alg = Toom33
	default:
		alg = Toom22
	}
	return s.fit(alg, n, n, true)
}

// fit walks down the cascade until alg accepts the operand shape.
func (s *Selector) fit(alg Algorithm, n, m int, sqr bool) Algorithm {
	for !fits(alg, n, m, sqr) {
		alg = alg.smaller(sqr)
	}
	return alg
}

func fits(alg Algorithm, n, m int, sqr bool) bool {
	switch alg {
	case Basecase:
		return true
	case Unbalanced:
		return m >= 1 && m <= (n+1)/2
	case Toom22, Toom33, Toom44, Toom6H, Toom8H:
		return toomFits(alg.ways(), n, m)
	case ModBnm1:
		return sqr && n >= bigfft.MinLen
	case Transform:
		return m >= bigfft.MinLen
	}
	return false
}

// MulInto sets z = x*y using scratch from a. len(z) must be
// len(x)+len(y); z must not alias x or y.
func (s *Selector) MulInto(z, x, y []limb.Limb, a *arena.Arena) {
	if len(x) < len(y) {
		x, y = y, x
	}
	apperrors.CheckLen("MulInto", len(z), len(x)+len(y))
	s.mulInto(z, x, y, s.Choose(len(x), len(y)), a)
}

func (s *Selector) mulInto(z, x, y []limb.Limb, alg Algorithm, a *arena.Arena) {
	switch alg {
	case Basecase:
		MulBasecase(z, x, y)
	case Unbalanced:
		s.unbalanced(z, x, y, a)
	case Toom22:
		s.toom22(z, x, y, a)
	case Toom33, Toom44, Toom6H, Toom8H:
		s.toom(z, x, y, alg.ways(), false, a)
	case Transform:
		s.transform(z, x, y, false, a)
	default:
		apperrors.Precondition("MulInto", "algorithm %s cannot multiply", alg)
	}
}

// MulScratch returns the arena limbs MulInto needs for an n×m product.
func (s *Selector) MulScratch(n, m int) int {
	if n < m {
		n, m = m, n
	}
	return s.mulScratch(s.Choose(n, m), n, m)
}

func (s *Selector) mulScratch(alg Algorithm, n, m int) int {
	switch alg {
	case Unbalanced:
		return s.unbalancedScratch(n, m)
	case Toom22:
		return s.toom22Scratch(n, m)
	case Toom33, Toom44, Toom6H, Toom8H:
		return s.toomScratch(alg.ways(), n, m, false)
	case Transform:
		return s.transformScratch(n+m, false)
	}
	return 0
}

// SqrInto sets z = x*x using scratch from a. len(z) must be 2*len(x);
// z must not alias x.
func (s *Selector) SqrInto(z, x []limb.Limb, a *arena.Arena) {
	apperrors.CheckLen("SqrInto", len(z), 2*len(x))
	s.sqrInto(z, x, s.ChooseSqr(len(x)), a)
}

func (s *Selector) sqrInto(z, x []limb.Limb, alg Algorithm, a *arena.Arena) {
	switch alg {
	case Basecase:
		SqrBasecase(z, x)
	case Toom22:
		s.sqrToom22(z, x, a)
	case Toom33, Toom44, Toom6H, Toom8H:
		s.toom(z, x, x, alg.ways(), true, a)
	case ModBnm1:
		s.sqrViaMod(z, x, a)
	case Transform:
		s.transform(z, x, nil, true, a)
	default:
		apperrors.Precondition("SqrInto", "algorithm %s cannot square", alg)
	}
}

// SqrScratch returns the arena limbs SqrInto needs for an n-limb operand.
func (s *Selector) SqrScratch(n int) int {
	return s.sqrScratch(s.ChooseSqr(n), n)
}

func (s *Selector) sqrScratch(alg Algorithm, n int) int {
	switch alg {
	case Toom22:
		return s.sqrToom22Scratch(n)
	case Toom33, Toom44, Toom6H, Toom8H:
		return s.toomScratch(alg.ways(), n, n, true)
	case ModBnm1:
		return s.sqrViaModScratch(n)
	case Transform:
		return s.transformScratch(2*n, true)
	}
	return 0
}

// sqrFull squares without the ModBnm1 path, which the modular
// recursion itself uses for its full products.
func (s *Selector) sqrFull(z, x []limb.Limb, a *arena.Arena) {
	s.sqrInto(z, x, s.fullSqrAlgorithm(len(x)), a)
}

func (s *Selector) fullSqrAlgorithm(n int) Algorithm {
	alg := s.ChooseSqr(n)
	if alg == ModBnm1 {
		alg = s.fit(alg.smaller(true), n, n, true)
	}
	return alg
}

func (s *Selector) sqrFullScratch(n int) int {
	return s.sqrScratch(s.fullSqrAlgorithm(n), n)
}

// unbalanced sets z = x*y for len(y) <= ⌈len(x)/2⌉ by multiplying y with
// consecutive len(y)-limb chunks of x.
func (s *Selector) unbalanced(z, x, y []limb.Limb, a *arena.Arena) {
	m := len(y)
	mark := a.Mark()
	defer a.Release(mark)
	t := a.Alloc(2 * m)

	clear(z)
	for off := 0; off < len(x); off += m {
		p := x[off:min(off+m, len(x))]
		tp := t[:len(p)+m]
		s.MulInto(tp, p, y, a)
		limb.AddTo(z, tp, off)
	}
}

func (s *Selector) unbalancedScratch(n, m int) int {
	child := s.MulScratch(m, m)
	if r := n % m; r != 0 {
		child = max(child, s.MulScratch(m, r))
	}
	return 2*m + child
}

// checkOutput panics if z overlaps any input. A partial overlap would
// let the algorithms overwrite operand limbs before reading them.
func checkOutput(op string, z []limb.Limb, in ...[]limb.Limb) {
	for _, x := range in {
		if limb.Overlaps(z, x) {
			apperrors.Precondition(op, "output overlaps an input")
		}
	}
}

// Mul sets z = x*y and returns the normalized length of the product.
// len(z) must be len(x)+len(y) and z must not share storage with x or y.
// All scratch comes from one arena sized up front by MulScratch.
func (s *Selector) Mul(z, x, y []limb.Limb) int {
	if len(x) < len(y) {
		x, y = y, x
	}
	apperrors.CheckLen("Mul", len(z), len(x)+len(y))
	checkOutput("Mul", z, x, y)
	n, m := len(x), len(y)
	alg := s.Choose(n, m)
	a := arena.New(s.mulScratch(alg, n, m))
	defer a.Free()

	s.mulInto(z, x, y, alg, a)
	if s.obs != nil {
		s.obs.ObserveMul(alg, n, m, a.Stats())
	}
	return len(limb.Norm(z))
}

// Sqr sets z = x*x and returns the normalized length of the square.
// len(z) must be 2*len(x) and z must not share storage with x.
func (s *Selector) Sqr(z, x []limb.Limb) int {
	apperrors.CheckLen("Sqr", len(z), 2*len(x))
	checkOutput("Sqr", z, x)
	n := len(x)
	alg := s.ChooseSqr(n)
	a := arena.New(s.sqrScratch(alg, n))
	defer a.Free()

	s.sqrInto(z, x, alg, a)
	if s.obs != nil {
		s.obs.ObserveSqr(alg, n, a.Stats())
	}
	return len(limb.Norm(z))
}
