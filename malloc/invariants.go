package malloc

import "fmt"

// firstChunkOff returns the header address of an arena's first-ever chunk:
// the same align16(bump+wordSize) formula carveFromTop applies when bump
// still equals base.
func firstChunkOff(a *Arena) address {
	return address(align16(int64(a.base)+wordSize)) - wordSize
}

// checkInvariants walks an arena's explored region and its free list,
// verifying that the boundary tags partition the explored region exactly,
// that PREV-IN-USE bits agree with neighboring FREE bits, that no two
// adjacent chunks are both free, and that the free list only holds chunks
// actually marked FREE. Callers must hold a.mu. Used by the debug build's
// post-release hook and directly by tests.
func checkInvariants(a *Arena) error {
	if a.mem == nil || a.bump == a.base {
		return nil // nothing reserved, or nothing explored yet
	}
	first := firstChunkOff(a)

	free := make(map[address]bool)

	addr := first
	for addr < a.bump {
		size := sizeOf(addr)
		if size < minChunkSize || size%16 != 0 {
			return fmt.Errorf("malloc: chunk at %#x has invalid size %d", addr, size)
		}
		if isFree(addr) {
			free[addr] = true
			footerWord := sizeOf(addr + address(size) - wordSize)
			if footerWord != size || !isFree(addr+address(size)-wordSize) {
				return fmt.Errorf("malloc: chunk at %#x footer mismatches header", addr)
			}
		}
		next := addr + address(size)
		if next < a.bump && prevInUse(next) == isFree(addr) {
			return fmt.Errorf("malloc: chunk at %#x PREV-IN-USE disagrees with predecessor's FREE bit", next)
		}
		addr = next
	}
	if addr != a.bump {
		return fmt.Errorf("malloc: explored region not exactly partitioned, walked to %#x, bump=%#x", addr, a.bump)
	}

	var prevFree bool
	for o := first; o < a.bump; o += address(sizeOf(o)) {
		if isFree(o) {
			if prevFree {
				return fmt.Errorf("malloc: adjacent free chunks, one ending at %#x", o)
			}
			prevFree = true
		} else {
			prevFree = false
		}
	}

	reachable := make(map[address]bool)
	nonFree := noChunk
	flWalk(a.head, func(c address) bool {
		if !isFree(c) {
			nonFree = c
			return false
		}
		reachable[c] = true
		return true
	})
	if nonFree != noChunk {
		return fmt.Errorf("malloc: free list references non-free chunk at %#x", nonFree)
	}
	for c := range reachable {
		if !free[c] {
			return fmt.Errorf("malloc: free list references non-free or unexplored chunk at %#x", c)
		}
	}
	for c := range free {
		if c+address(sizeOf(c)) == a.bump {
			continue // frontier-adjacent free chunks are never listed
		}
		if !reachable[c] {
			return fmt.Errorf("malloc: free chunk at %#x not reachable from free list", c)
		}
	}
	return nil
}
