package malloc

import (
	"runtime/debug"

	"github.com/bnclabs/chunkheap/lib"
	"github.com/bnclabs/chunkheap/xlog"
)

// logInitFailure and logExhaustion are the allocator's only two log sites,
// both operator-facing side channels emitted after the arena lock is
// released, never sitting between lock acquisition and the nil return a
// caller's hot path depends on.

func logInitFailure(err error) {
	xlog.Warnf("malloc: arena reservation failed: %v", err)
}

func logExhaustion(n int64) {
	xlog.Verbosef(
		"malloc: exhausted servicing a %d-byte request\n%s",
		n, lib.GetStacktrace(2, debug.Stack()),
	)
}
