package malloc

// tcache buffers a single goroutine's recently freed small chunks for
// lock-free reuse, sitting in front of its bound arena. Bins are indexed
// by usable-byte count spaced every 16 bytes, each a LIFO stack capped at
// maxPerBin. Geometry comes from newTcache's arguments, which heap.go
// threads through from the "tcache.bins"/"tcache.max_per_bin" settings
// keys rather than baking TCacheBins/TCacheMaxPerBin in at compile time.
//
// A cached chunk may have been carved from a different goroutine's arena
// entirely (see the cross-arena-free handling in heap.go), so there is no
// single backing slice to thread an intra-payload pointer through the
// way a boundary-tag free list does. A plain slice-of-slices stack gets
// the same O(1) push/pop and leaves the chunk's FREE bit and neighbors'
// PREV-IN-USE bit untouched, since Go's own slice already carries the
// backing-array identity a raw offset would otherwise need to fake.
type tcache struct {
	bins      [][][]byte
	maxPerBin int
}

func newTcache(nbins, maxPerBin int64) *tcache {
	return &tcache{bins: make([][][]byte, nbins), maxPerBin: int(maxPerBin)}
}

// tcacheBin returns the bin index for a chunk with usable bytes u under a
// cache with nbins bins, or -1 if u falls outside the cacheable range
// (u < 16 or u beyond the last bin's reach, nbins*16).
func tcacheBin(u int64, nbins int64) int {
	if u < 16 || u > nbins*16 {
		return -1
	}
	return int(u/16) - 1
}

func (tc *tcache) pop(usable int64) ([]byte, bool) {
	bin := tcacheBin(usable, int64(len(tc.bins)))
	if bin < 0 {
		return nil, false
	}
	stack := tc.bins[bin]
	if len(stack) == 0 {
		return nil, false
	}
	block := stack[len(stack)-1]
	tc.bins[bin] = stack[:len(stack)-1]
	return block, true
}

// push caches block if its bin has room. Returns false (caller falls
// through to the arena path) if block's size is uncacheable or its bin is
// already at maxPerBin.
func (tc *tcache) push(block []byte) bool {
	bin := tcacheBin(int64(len(block)), int64(len(tc.bins)))
	if bin < 0 || len(tc.bins[bin]) >= tc.maxPerBin {
		return false
	}
	tc.bins[bin] = append(tc.bins[bin], block)
	return true
}
