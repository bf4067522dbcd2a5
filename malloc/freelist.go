package malloc

// The free list is a doubly-linked LIFO threaded through free chunks'
// payloads: fd (forward) at payload+0, bk (back) at payload+8. Order
// carries no meaning beyond LIFO tie-breaking during first-fit; only set
// membership matters.

func flFd(addr address) address { return address(readWord(payloadOf(addr))) }
func flBk(addr address) address { return address(readWord(payloadOf(addr) + wordSize)) }

func flSetFd(addr, fd address) { writeWord(payloadOf(addr), uint64(fd)) }
func flSetBk(addr, bk address) { writeWord(payloadOf(addr)+wordSize, uint64(bk)) }

// flPushFront links addr at the head of the free list rooted at *head.
func flPushFront(head *address, addr address) {
	flSetFd(addr, *head)
	flSetBk(addr, noChunk)
	if *head != noChunk {
		flSetBk(*head, addr)
	}
	*head = addr
}

// flRemove unlinks addr from the free list rooted at *head. addr must
// currently be a member.
func flRemove(head *address, addr address) {
	fd, bk := flFd(addr), flBk(addr)
	if bk != noChunk {
		flSetFd(bk, fd)
	} else {
		*head = fd
	}
	if fd != noChunk {
		flSetBk(fd, bk)
	}
}

// flWalk calls visit for every chunk reachable from head, in list order,
// until visit returns false or the list is exhausted.
func flWalk(head address, visit func(addr address) bool) {
	for addr := head; addr != noChunk; addr = flFd(addr) {
		if !visit(addr) {
			return
		}
	}
}

// flFirstFit returns the first chunk in the free list whose size is >= need.
func flFirstFit(head address, need int64) (addr address, ok bool) {
	flWalk(head, func(c address) bool {
		if sizeOf(c) >= need {
			addr, ok = c, true
			return false
		}
		return true
	})
	return addr, ok
}
