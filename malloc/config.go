package malloc

import "github.com/bnclabs/chunkheap/lib"

// RegionSizeV0 is the default V0 arena reservation: one global arena.
const RegionSizeV0 = int64(1024 * 1024 * 1024) // 1 GiB

// RegionSizeV1 is the default per-arena reservation under V1.
const RegionSizeV1 = int64(64 * 1024 * 1024) // 64 MiB

// MaxArenas bounds how many arenas V1 will ever create.
const MaxArenas = 64

// TCacheBins is the number of size-class bins per goroutine tcache.
const TCacheBins = 64

// TCacheMaxPerBin caps how many chunks a single tcache bin holds before
// pushes fall through to the arena.
const TCacheMaxPerBin = 32

// Defaultsettings returns the settings a freshly constructed engine uses
// absent overrides; callers mix their own overrides on top via
// Settings.Mixin.
func Defaultsettings() lib.Settings {
	return lib.Settings{
		"region.size":        RegionSizeV1,
		"max.arenas":         int64(MaxArenas),
		"tcache.bins":        int64(TCacheBins),
		"tcache.max_per_bin": int64(TCacheMaxPerBin),
	}
}

// DefaultsettingsV0 returns settings sized for a single global arena.
func DefaultsettingsV0() lib.Settings {
	setts := Defaultsettings()
	setts["region.size"] = RegionSizeV0
	setts["max.arenas"] = int64(1)
	return setts
}
