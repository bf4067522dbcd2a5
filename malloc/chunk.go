package malloc

import (
	"encoding/binary"
	"unsafe"
)

// Chunks are addressed by absolute memory address (an address, the
// header's own uintptr) rather than an offset into a particular arena's
// backing slice. A freed chunk's header bytes never move and never get
// reclaimed by the OS mid-run, so an address recovered from a payload
// pointer handed back to Release stays meaningful regardless of which
// arena originally carved it, mirroring how a single flat process address
// space lets a C allocator address any chunk from any pointer, recovered
// here explicitly via unsafe.Pointer/uintptr arithmetic instead of a
// slice-relative offset.
type address = uintptr

// Header and footer words are 8 bytes, little-endian, encoding size in the
// high bits and two flags in the low bits:
//
//	bit 0 - FREE
//	bit 1 - PREV-IN-USE
//	bits 2-3 reserved, always zero
//	bits 4+ - chunk size, always a multiple of 16
const (
	wordSize = 8

	flagFree      uint64 = 1 << 0
	flagPrevInUse uint64 = 1 << 1
	sizeMask      uint64 = ^uint64(0xF)
)

// noChunk is the sentinel address for "no chunk", used as an empty
// free-list head/fd/bk. Address 0 is never a valid chunk (no arena
// reservation is ever mapped at the zero page), so it never collides.
const noChunk address = 0

// minChunkSize is the smallest chunk that can ever exist: header, the two
// free-list links that double as a free chunk's payload, and a footer,
// rounded up to 16 bytes. Derived here rather than hard-coded so a change
// to the link width or header width stays self-consistent.
var minChunkSize int64

func init() {
	minChunkSize = align16(int64(wordSize + 2*wordSize + wordSize))
}

// align16 rounds n up to the nearest multiple of 16.
func align16(n int64) int64 {
	return (n + 15) &^ 15
}

// bytesAt views n bytes starting at addr as a slice, bypassing whatever Go
// slice originally carried that memory. Valid because every address this
// package hands back out is, and remains for the process's lifetime, a
// live byte within some arena's mmap'd reservation.
func bytesAt(addr address, n int64) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

func addrOf(p []byte) address {
	return uintptr(unsafe.Pointer(&p[0]))
}

func readWord(addr address) uint64 {
	return binary.LittleEndian.Uint64(bytesAt(addr, wordSize))
}

func writeWord(addr address, word uint64) {
	binary.LittleEndian.PutUint64(bytesAt(addr, wordSize), word)
}

// sizeOf decodes the chunk size at addr, header or footer alike.
func sizeOf(addr address) int64 {
	return int64(readWord(addr) & sizeMask)
}

func isFree(addr address) bool {
	return readWord(addr)&flagFree != 0
}

func prevInUse(addr address) bool {
	return readWord(addr)&flagPrevInUse != 0
}

// payloadOf returns the payload address for the chunk header at addr.
func payloadOf(addr address) address { return addr + wordSize }

// chunkOf returns the chunk header address for a payload at addr.
func chunkOf(addr address) address { return addr - wordSize }

// nextChunk walks to the chunk immediately following addr. ok is false if
// the successor would lie at or beyond bump (not yet explored).
func nextChunk(addr, bump address) (next address, ok bool) {
	n := addr + address(sizeOf(addr))
	if n >= bump {
		return 0, false
	}
	return n, true
}

// prevIfFree reads the word immediately before addr as a prospective
// footer. Iff its FREE bit is set, returns the predecessor's header
// address. Must never be called when addr is the arena's first chunk.
func prevIfFree(addr address) (prev address, ok bool) {
	footer := readWord(addr - wordSize)
	if footer&flagFree == 0 {
		return 0, false
	}
	return addr - address(footer&sizeMask), true
}

// writeHeaderPreservingPrev rewrites size and the FREE bit, leaving
// PREV-IN-USE untouched.
func writeHeaderPreservingPrev(addr address, size int64, free bool) {
	word := uint64(size) | (readWord(addr) & flagPrevInUse)
	if free {
		word |= flagFree
	}
	writeWord(addr, word)
}

func setPrevInUse(addr address, v bool) {
	word := readWord(addr)
	if v {
		word |= flagPrevInUse
	} else {
		word &^= flagPrevInUse
	}
	writeWord(addr, word)
}

// writeFooter mirrors the chunk's current header word at chunk+size-8.
func writeFooter(addr address, size int64) {
	writeWord(addr+address(size)-wordSize, readWord(addr))
}
