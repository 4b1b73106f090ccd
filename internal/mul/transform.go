package mul

import (
	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/bigfft"
	"github.com/agbru/bignum/internal/limb"
)

// transform sets z = x*y (x*x when sqr) with a cyclic transform long
// enough that the product does not wrap. Pointwise products recurse
// through s.
func (s *Selector) transform(z, x, y []limb.Limb, sqr bool, a *arena.Arena) {
	p := bigfft.PlanProduct(len(z))
	mark := a.Mark()
	defer a.Release(mark)
	t := a.Alloc(p.Len())
	if sqr {
		bigfft.SqrCyclic(t, x, p, s, a)
	} else {
		bigfft.MulCyclic(t, x, y, p, s, a)
	}
	copy(z, t)
}

func (s *Selector) transformScratch(words int, sqr bool) int {
	p := bigfft.PlanProduct(words)
	return p.Len() + bigfft.Scratch(p, s, sqr, false)
}
