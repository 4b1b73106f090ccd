package hgcd

import (
	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/limb"
)

// pair holds the current remainder pair (α, β) in two of four
// equal-capacity buffers. The other two receive the next pair, so a
// Euclidean step never allocates.
type pair struct {
	buf   [4][]limb.Limb
	alpha []limb.Limb
	beta  []limb.Limb
}

// newPair copies (a, b), a ≥ b, into buffers of len(a) limbs from ar.
func newPair(a, b []limb.Limb, ar *arena.Arena) pair {
	var p pair
	for i := range p.buf {
		p.buf[i] = ar.Alloc(max(len(a), 1))
	}
	p.alpha = p.buf[0][:copy(p.buf[0], a)]
	p.beta = p.buf[1][:copy(p.buf[1], b)]
	return p
}

// set makes (alpha, beta) the current pair. Neither may live in the
// spare buffers.
func (p *pair) set(alpha, beta []limb.Limb) {
	p.buf[0], p.buf[2] = p.buf[2], p.buf[0]
	p.buf[1], p.buf[3] = p.buf[3], p.buf[1]
	p.alpha = p.buf[0][:copy(p.buf[0], alpha)]
	p.beta = p.buf[1][:copy(p.buf[1], beta)]
}

// divide returns α / β in q and α mod β in a spare buffer. q needs
// len(α) limbs and scratch limb.DivRemScratchLen(len(α), len(β)).
func (p *pair) divide(q, scratch []limb.Limb) (quo, rem []limb.Limb) {
	qn, rn := limb.DivModTo(q, p.buf[2], p.alpha, p.beta, scratch)
	return q[:qn], p.buf[2][:rn]
}

// advance replaces (α, β) by (β, rem), where rem came from divide.
func (p *pair) advance(rem []limb.Limb) {
	p.buf[0], p.buf[1], p.buf[2] = p.buf[1], p.buf[2], p.buf[0]
	p.alpha, p.beta = p.beta, rem
}
