package malloc

import "github.com/bnclabs/chunkheap/lib"

// Stats reports a read-only snapshot of an arena's (or, aggregated, a
// heap's) bookkeeping: reservation size, explored region, live bytes, and
// free-list/tcache accounting.
type Stats struct {
	TotalSize      int64 // bytes reserved from the OS
	ExploredSize   int64 // bump - base
	InUseBytes     int64 // explored bytes not on the free list (live and tcached blocks, plus the alignment pad before the first chunk)
	FreeListBytes  int64
	FreeListChunks int64
	TCacheHits     uint64
	TCacheMisses   uint64
}

func arenaStats(a *Arena) Stats {
	st := Stats{
		TotalSize:    int64(a.end - a.base),
		ExploredSize: int64(a.bump - a.base),
		TCacheHits:   a.loadTcacheHit(),
		TCacheMisses: a.loadTcacheMiss(),
	}
	flWalk(a.head, func(c address) bool {
		st.FreeListChunks++
		st.FreeListBytes += sizeOf(c)
		return true
	})
	st.InUseBytes = st.ExploredSize - st.FreeListBytes
	return st
}

// Merge folds another Stats into st, summing every field. Used to produce
// a V1 heap-wide aggregate from its per-arena snapshots.
func (st Stats) Merge(other Stats) Stats {
	st.TotalSize += other.TotalSize
	st.ExploredSize += other.ExploredSize
	st.InUseBytes += other.InUseBytes
	st.FreeListBytes += other.FreeListBytes
	st.FreeListChunks += other.FreeListChunks
	st.TCacheHits += other.TCacheHits
	st.TCacheMisses += other.TCacheMisses
	return st
}

// String renders st as pretty-printed JSON, for logging and debugging.
func (st Stats) String() string {
	m := map[string]interface{}{
		"total_size":       st.TotalSize,
		"explored_size":    st.ExploredSize,
		"in_use_bytes":     st.InUseBytes,
		"free_list_bytes":  st.FreeListBytes,
		"free_list_chunks": st.FreeListChunks,
		"tcache_hits":      st.TCacheHits,
		"tcache_misses":    st.TCacheMisses,
	}
	return lib.Prettystats(m, true)
}
