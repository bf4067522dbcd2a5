package malloc

// arenaAllocate and arenaRelease implement first-fit placement, the split
// policy, bidirectional coalescing and frontier carve/retraction. Callers
// hold a.mu.

// arenaAllocate satisfies a request for need bytes (header included,
// already 16-byte aligned), trying the free list before the frontier.
func arenaAllocate(a *Arena, need int64) (address, bool) {
	if addr, ok := flFirstFit(a.head, need); ok {
		return splitFreeChunk(a, addr, need), true
	}
	return carveFromTop(a, need)
}

// splitFreeChunk applies the split policy to a free-list hit: if the
// leftover after carving out need bytes is at least minChunkSize, the
// remainder is relinked as a new free chunk; otherwise the whole chunk is
// handed out, accepting internal fragmentation up to minChunkSize-1 bytes.
func splitFreeChunk(a *Arena, addr address, need int64) address {
	csz := sizeOf(addr)

	if csz >= need+minChunkSize {
		flRemove(&a.head, addr)

		writeHeaderPreservingPrev(addr, need, false)

		rem := addr + address(need)
		setPrevInUse(rem, true)
		remSize := csz - need
		writeHeaderPreservingPrev(rem, remSize, true)
		writeFooter(rem, remSize)
		flPushFront(&a.head, rem)

		return addr
	}

	flRemove(&a.head, addr)
	writeHeaderPreservingPrev(addr, csz, false)
	setNextPrevInUse(addr, csz, a.bump, true)
	return addr
}

// carveFromTop extends the frontier by need bytes, choosing a header
// address so the payload lands 16-byte aligned. The carved chunk always
// inherits PREV-IN-USE = 1: by the frontier invariant, no free chunk is
// ever frontier-adjacent, so the chunk immediately below bump is always
// in-use.
func carveFromTop(a *Arena, need int64) (address, bool) {
	payload := address(align16(int64(a.bump) + wordSize))
	hdr := payload - wordSize
	if a.end-hdr < address(need) {
		return 0, false
	}
	writeHeaderPreservingPrev(hdr, need, false)
	setPrevInUse(hdr, true)
	a.bump = hdr + address(need)
	return hdr, true
}

// setNextPrevInUse sets the PREV-IN-USE bit of the chunk at addr+size, iff
// that address lies strictly below bump (i.e. it has actually been
// explored and partitioned).
func setNextPrevInUse(addr address, size int64, bump address, v bool) {
	next := addr + address(size)
	if next < bump {
		setPrevInUse(next, v)
	}
}

// arenaRelease returns the chunk at addr to the arena: marks it free,
// coalesces with free neighbors, and either retracts the frontier or
// pushes the (possibly merged) chunk onto the free list.
//
// addr need not lie within a's own reservation: a cross-arena free (see the
// V1 trade-off documented in heap.go) still runs this same logic against
// the chunk's own header bytes, scoping the bump/base comparisons to a
// even though the bytes physically live elsewhere. Coalescing and frontier
// retraction against that chunk are then meaningless for a and simply
// never fire, which is exactly the "absorbed into another arena" behavior
// this design accepts.
func arenaRelease(a *Arena, addr address) {
	csz := sizeOf(addr)

	writeHeaderPreservingPrev(addr, csz, true)
	writeFooter(addr, csz)

	merged := coalesce(a, addr)
	msz := sizeOf(merged)
	mergedEnd := merged + address(msz)

	setNextPrevInUse(merged, msz, a.bump, false)

	if mergedEnd == a.bump {
		a.bump = merged
		if merged == firstChunkOff(a) {
			// the alignment pad before the first chunk is unexplored again
			a.bump = a.base
		}
		return
	}
	flPushFront(&a.head, merged)
}

// coalesce merges a freshly-freed chunk with a free right neighbor and
// then a free left neighbor, in that order (matching the C source: merging
// right first keeps the left-merge's footer read valid).
func coalesce(a *Arena, addr address) address {
	csz := sizeOf(addr)

	if next, ok := nextChunk(addr, a.bump); ok && isFree(next) {
		nsz := sizeOf(next)
		flRemove(&a.head, next)
		csz += nsz
		writeHeaderPreservingPrev(addr, csz, true)
		writeFooter(addr, csz)
	}

	// The PREV-IN-USE bit alone gates this: the arena's first-ever chunk
	// always carries PREV-IN-USE = 1 (carveFromTop sets it unconditionally),
	// so prevIfFree is never reached with addr at the arena's base.
	if !prevInUse(addr) {
		if prev, ok := prevIfFree(addr); ok {
			flRemove(&a.head, prev)
			csz += sizeOf(prev)
			writeHeaderPreservingPrev(prev, csz, true)
			writeFooter(prev, csz)
			addr = prev
		}
	}

	return addr
}
