//go:build !debug

package malloc

// Production builds carry no canary fill and no post-release invariant
// walk. The split is a build-tag boundary rather than a runtime flag, so
// release binaries pay nothing for either check.

func debugPoison(block []byte) {}

func debugCheckOnRelease(a *Arena, p []byte) {}
