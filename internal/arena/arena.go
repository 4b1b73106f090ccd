package arena

import (
	"sync/atomic"

	"github.com/agbru/bignum/internal/limb"
)

// Arena pre-allocates one contiguous block of limbs for all scratch
// buffers of a single top-level call. Allocation bumps an offset; Mark and
// Release restore it, so nested algorithms carve scratch in stack order
// and give it back on return.
//
// When capacity is exhausted the arena falls back to the heap and counts
// the event. Callers size arenas with closed-form scratch functions, so
// an overflow indicates an undersized estimate, never a wrong result.
//
// An Arena is owned by one call tree and is not safe for concurrent use.
// A nil *Arena is valid and allocates every buffer from the heap.
type Arena struct {
	buf       []limb.Limb
	off       int
	peak      int
	overflows int
}

// Mark is a saved allocation offset.
type Mark int

var totalOverflows atomic.Uint64

// New creates an arena with room for capacity limbs. The backing block
// comes from a size-class pool and is returned by Free.
func New(capacity int) *Arena {
	if capacity <= 0 {
		return &Arena{}
	}
	return &Arena{buf: acquireBlock(capacity)}
}

// Alloc returns a zeroed slice of n limbs whose capacity is exactly n.
func (a *Arena) Alloc(n int) []limb.Limb {
	if n <= 0 {
		return nil
	}
	if a == nil {
		return make([]limb.Limb, n)
	}
	if a.off+n > len(a.buf) {
		a.overflows++
		totalOverflows.Add(1)
		return make([]limb.Limb, n)
	}
	s := a.buf[a.off : a.off+n : a.off+n]
	a.off += n
	if a.off > a.peak {
		a.peak = a.off
	}
	clear(s)
	return s
}

// Mark returns the current allocation offset.
func (a *Arena) Mark() Mark {
	if a == nil {
		return 0
	}
	return Mark(a.off)
}

// Release frees every allocation made after m. Slices obtained after m
// must not be used afterwards.
func (a *Arena) Release(m Mark) {
	if a == nil {
		return
	}
	a.off = int(m)
}

// Reset releases every allocation without returning the block.
func (a *Arena) Reset() { a.Release(0) }

// Free returns the backing block to its pool. The arena must not be used
// afterwards.
func (a *Arena) Free() {
	if a == nil {
		return
	}
	releaseBlock(a.buf)
	a.buf = nil
	a.off = 0
}

// Stats describes the usage of one arena.
type Stats struct {
	// Capacity is the size of the backing block in limbs.
	Capacity int
	// Used is the number of limbs currently allocated.
	Used int
	// Peak is the highest offset reached.
	Peak int
	// Overflows counts allocations served by the heap fallback.
	Overflows int
}

// Stats returns the usage counters of a.
func (a *Arena) Stats() Stats {
	if a == nil {
		return Stats{}
	}
	return Stats{Capacity: len(a.buf), Used: a.off, Peak: a.peak, Overflows: a.overflows}
}

// TotalOverflows returns the number of heap fallbacks across all arenas
// since process start.
func TotalOverflows() uint64 { return totalOverflows.Load() }
