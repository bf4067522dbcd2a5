package malloc

import (
	"runtime"
	"sync"

	"github.com/bnclabs/chunkheap/lib"
)

// Heap implements engine V1: N independent arenas plus a per-goroutine
// tcache sitting in front of whichever arena the calling goroutine is
// bound to.
type Heap struct {
	arenas   []*Arena
	bindings sync.Map // goroutine id (uint64) -> *binding

	tcacheBins      int64
	tcacheMaxPerBin int64
}

// NewHeap builds N arenas (N = runtime.GOMAXPROCS(0) clamped to
// [1, max.arenas]) sized per "region.size" and is ready to serve
// Allocate/Release immediately: arenas are reserved up front rather than
// lazily on first touch, since Go gives no cheaper way to defer the OS
// reservation without also deferring the mutex and free-list
// initialization NewArena always does eagerly.
//
// setts is mixed on top of Defaultsettings rather than read directly, so a
// caller only needs to supply the keys it wants to override (the way the
// tests here do: start from Defaultsettings() and mutate one or two keys).
func NewHeap(setts lib.Settings) *Heap {
	merged := Defaultsettings().Mixin(setts)

	maxArenas := merged.Int64("max.arenas")
	n := runtime.GOMAXPROCS(0)
	if int64(n) > maxArenas {
		n = int(maxArenas)
	}
	if n < 1 {
		n = 1
	}
	size := merged.Int64("region.size")
	h := &Heap{
		arenas:          make([]*Arena, n),
		tcacheBins:      merged.Int64("tcache.bins"),
		tcacheMaxPerBin: merged.Int64("tcache.max_per_bin"),
	}
	for i := range h.arenas {
		h.arenas[i] = NewArena(size)
	}
	return h
}

func (h *Heap) narenas() int { return len(h.arenas) }

// Allocate serves n bytes from the calling goroutine's bound arena,
// consulting its tcache first. The hit path acquires zero arena locks (the
// chunk was already in-use from the arena's perspective while it sat in
// the bin, so there's no header to rewrite); the miss path acquires the
// arena lock exactly once, inside a.Allocate.
func (h *Heap) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	b := h.bindingFor()
	a := h.arenas[b.arenaIdx]

	need := align16(wordSize + align16(int64(n)))
	usable := need - wordSize
	if block, ok := b.tc.pop(usable); ok {
		a.addTcacheHit()
		debugPoison(block)
		return block
	}
	a.addTcacheMiss()
	return a.Allocate(n)
}

// Release returns p to the calling goroutine's bound arena: its tcache if
// p's size fits a bin with room, otherwise that arena's free list, even
// when p was originally carved from a different arena's reservation. The
// common case (tcache hit, same-arena free) stays lock-free and
// coalescing-capable; a remote free is accepted but its chunk is, in
// practice, absorbed into the freeing goroutine's arena instead of
// returned to its origin.
func (h *Heap) Release(p []byte) {
	if p == nil {
		return
	}
	b := h.bindingFor()
	if b.tc.push(p) {
		return
	}
	a := h.arenas[b.arenaIdx]
	a.Release(p)
}

// Stats aggregates every arena's snapshot into one heap-wide total.
func (h *Heap) Stats() Stats {
	var total Stats
	for _, a := range h.arenas {
		total = total.Merge(a.Stats())
	}
	return total
}

// Close releases every arena's OS reservation; see Arena.Close.
func (h *Heap) Close() error {
	var err error
	for _, a := range h.arenas {
		if e := a.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
