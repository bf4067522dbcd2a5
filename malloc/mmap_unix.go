//go:build unix

package malloc

import "golang.org/x/sys/unix"

// reserve acquires an anonymous, private, read/write mapping of at least n
// bytes from the OS, rounded up to a multiple of the page size: no backing
// file, residency expanding lazily as pages are first touched. This is a
// raw OS reservation rather than a libc-heap allocation (cgo's C.malloc
// would draw from the process's own malloc arena, not a fresh mapping).
//
// unix.Mmap's returned slice is bounded to exactly the byte count it's
// asked for, not whatever the kernel rounded the mapping up to internally,
// so the rounding has to happen on the way in.
func reserve(n int64) ([]byte, error) {
	page := int64(unix.Getpagesize())
	rounded := (n + page - 1) / page * page
	return unix.Mmap(-1, 0, int(rounded), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// unreserve releases a mapping obtained from reserve. The allocator itself
// never calls this mid-run; it exists for tests that create many
// short-lived arenas and would otherwise exhaust address space across a
// long test run.
func unreserve(mem []byte) error {
	return unix.Munmap(mem)
}
