package malloc

import "sync"

// Engine is the allocator surface both V0 (*Arena) and V1 (*Heap) satisfy.
type Engine interface {
	Allocate(n int) []byte
	Release(p []byte)
}

var (
	defaultMu     sync.Mutex
	defaultEngine Engine
)

// Init installs engine as the process-wide default, replacing whatever
// Allocate/Release below dispatch to. Init(nil) clears it, so the next
// Allocate or Release lazily builds a fresh V1 heap. Tests and callers
// that want more than one independent heap in a process should use
// NewArena/NewHeap directly instead; Init is for the common
// single-engine-per-process case.
func Init(engine Engine) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEngine = engine
}

// defaultHeap returns the process-wide engine, lazily constructing a V1
// heap from Defaultsettings the first time Allocate or Release is called
// without an explicit Init.
func defaultHeap() Engine {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine == nil {
		defaultEngine = NewHeap(Defaultsettings())
	}
	return defaultEngine
}

// Allocate returns an uninitialized, 16-byte-aligned block of at least n
// usable bytes from the process-wide default engine, or nil if n == 0 or
// the engine is exhausted.
func Allocate(n int) []byte {
	return defaultHeap().Allocate(n)
}

// Release returns p, previously obtained from Allocate, to the process-wide
// default engine. Release(nil) is a no-op.
func Release(p []byte) {
	defaultHeap().Release(p)
}
