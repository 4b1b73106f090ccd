// This file provides size-class pooling of arena backing blocks so that
// repeated top-level calls reuse memory instead of pressuring the GC.

package arena

import (
	"math/bits"
	"sync"

	"github.com/agbru/bignum/internal/limb"
)

// ─────────────────────────────────────────────────────────────────────────────
// Limb Block Pools
// ─────────────────────────────────────────────────────────────────────────────

// blockSizes defines the pooled size classes: powers of 4 from 4^3 = 64
// up to 4^12 = 16M limbs.
var blockSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304, 16777216}

var blockPools [len(blockSizes)]sync.Pool

func init() {
	for i, size := range blockSizes {
		blockPools[i].New = func() any { return make([]limb.Limb, size) }
	}
}

// blockPoolIndex returns the pool index for a block of the given size,
// or -1 if the size is too large for pooling.
//
// blockSizes are powers of 4 starting from 4^3, so bits.Len(size-1)
// maps directly to the index.
func blockPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > blockSizes[len(blockSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// blockPoolIndexLinear is the linear-search reference for blockPoolIndex.
func blockPoolIndexLinear(size int) int {
	for i, s := range blockSizes {
		if size <= s {
			return i
		}
	}
	return -1
}

// acquireBlock returns a block of at least size limbs. Contents are
// unspecified; the arena clears what it hands out.
//
//	b := acquireBlock(size)
//	defer releaseBlock(b)
func acquireBlock(size int) []limb.Limb {
	idx := blockPoolIndex(size)
	if idx < 0 {
		return make([]limb.Limb, size)
	}
	b := blockPools[idx].Get().([]limb.Limb)
	return b[:size]
}

// releaseBlock returns a block to its pool. Blocks that were allocated
// outside the size classes are left to the GC. Safe to call with nil.
func releaseBlock(b []limb.Limb) {
	if b == nil {
		return
	}
	c := cap(b)
	idx := blockPoolIndex(c)
	if idx >= 0 && blockSizes[idx] == c {
		blockPools[idx].Put(b[:c])
	}
}
