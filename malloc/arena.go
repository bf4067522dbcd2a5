// Package malloc implements a general-purpose heap allocator over a
// process-provided virtual-memory reservation. Engine V0 is a single global
// Arena; engine V1 layers multiple Arenas and a per-goroutine tcache on top
// (see heap.go, tcache.go). Types and functions exported by this package
// are safe for concurrent use unless documented otherwise.
package malloc

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnclabs/chunkheap/lib"
)

// Arena owns one contiguous virtual reservation, partitioned on demand into
// boundary-tagged chunks. The region [base, bump) is explored and fully
// partitioned; [bump, end) is raw, unexplored, mapped memory.
type Arena struct {
	mu   sync.Mutex
	mem  []byte // keeps the reservation's backing array alive and unmapped
	base address
	bump address
	end  address
	head address // free-list head, noChunk when empty

	// tcacheHits/tcacheMisses are bumped from Heap.Allocate's hit/miss
	// paths without holding a.mu, so they're plain atomics rather than
	// mutex-guarded fields: the hit path in particular must stay
	// lock-free end to end.
	tcacheHits   uint64
	tcacheMisses uint64
}

func (a *Arena) addTcacheHit()  { atomic.AddUint64(&a.tcacheHits, 1) }
func (a *Arena) addTcacheMiss() { atomic.AddUint64(&a.tcacheMisses, 1) }

func (a *Arena) loadTcacheHit() uint64  { return atomic.LoadUint64(&a.tcacheHits) }
func (a *Arena) loadTcacheMiss() uint64 { return atomic.LoadUint64(&a.tcacheMisses) }

// NewArena reserves a region of the requested size (rounded up by reserve
// to a page multiple) and returns an empty Arena ready to serve Allocate calls.
// size must be positive; NewArena panics otherwise, the same way the
// teacher's NewArena panics on a malformed capacity.
func NewArena(size int64) *Arena {
	if size <= 0 {
		panic(fmt.Errorf("malloc: arena size must be positive, got %v", size))
	}
	mem, err := reserve(size)
	if err != nil {
		// Initialization failure: every subsequent Allocate on this arena
		// returns nil; internal state stays consistent (an arena with
		// base == bump == end simply never has a fit).
		logInitFailure(err)
		return &Arena{head: noChunk}
	}
	base := addrOf(mem)
	return &Arena{mem: mem, base: base, bump: base, end: base + address(len(mem)), head: noChunk}
}

// NewArenaFromSettings builds an Arena sized by the "region.size" key,
// mixed on top of DefaultsettingsV0 so a caller only needs to supply the
// keys it wants to override.
func NewArenaFromSettings(setts lib.Settings) *Arena {
	merged := DefaultsettingsV0().Mixin(setts)
	return NewArena(merged.Int64("region.size"))
}

// Allocate returns an uninitialized, 16-byte-aligned block of at least n
// usable bytes, or nil if n == 0 or no arena can satisfy the request.
func (a *Arena) Allocate(n int) []byte {
	if n <= 0 || a.mem == nil {
		return nil
	}
	need := align16(wordSize + align16(int64(n)))
	a.mu.Lock()
	addr, ok := arenaAllocate(a, need)
	a.mu.Unlock()
	if !ok {
		logExhaustion(int64(n))
		return nil
	}
	usable := sizeOf(addr) - wordSize
	block := bytesAt(payloadOf(addr), usable)
	debugPoison(block)
	return block
}

// Release returns a block previously returned by Allocate. Release(nil) is
// a no-op. Double-release or releasing a foreign slice is undefined
// behavior, per the allocator's narrow failure taxonomy, and is not
// defended against.
func (a *Arena) Release(p []byte) {
	if p == nil {
		return
	}
	addr := chunkOf(addrOf(p))
	a.mu.Lock()
	arenaRelease(a, addr)
	a.mu.Unlock()
	debugCheckOnRelease(a, p)
}

// Stats reports a point-in-time snapshot of the arena's accounting. Taken
// under the arena's own mutex; see stats.go.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return arenaStats(a)
}

// Close releases the arena's OS reservation. The allocator itself never
// unmaps a reservation mid-run; Close exists so tests that build many
// short-lived arenas don't leak address space across a long run.
func (a *Arena) Close() error {
	if a.mem == nil {
		return nil
	}
	return unreserve(a.mem)
}
