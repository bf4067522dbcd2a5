package malloc

import (
	"bytes"
	"runtime"
	"strconv"
)

// binding is what a goroutine caches for the rest of its lifetime once it
// first touches a Heap: which arena it is bound to, and its own tcache.
type binding struct {
	arenaIdx int
	tc       *tcache
}

// goroutineID derives a stable per-goroutine integer from the "goroutine
// NNN [...]" header of a stack trace of just the calling goroutine. Go
// exposes no public goroutine-id API and goroutines migrate across OS
// threads, so there is no literal equivalent of pthread_self()/
// _Thread_local; this is the closest structural analogue, the same trick
// several goroutine-aware libraries in the wild use to emulate
// thread-local state.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

// bindingFor returns the calling goroutine's binding to this heap,
// creating and memoizing one on first use. Keyed per-Heap (not globally) so
// that two independent Heaps in the same process -- common in tests -- never
// cross-bind a goroutine's cached arena index or tcache.
func (h *Heap) bindingFor() *binding {
	gid := goroutineID()
	if v, ok := h.bindings.Load(gid); ok {
		return v.(*binding)
	}
	b := &binding{
		arenaIdx: int(gid % uint64(h.narenas())),
		tc:       newTcache(h.tcacheBins, h.tcacheMaxPerBin),
	}
	actual, _ := h.bindings.LoadOrStore(gid, b)
	return actual.(*binding)
}
