package lib

import "fmt"

// Settings is a flat bag of allocator configuration keys (region sizes,
// arena counts, tcache geometry). Every value the allocator stores here is
// a count or a byte size, so unlike the teacher's config map this one
// doesn't carry Bool/String/Section/Trim/Filter accessors for nested
// component namespaces -- there's nothing nested to namespace.
type Settings map[string]interface{}

// Mixin overlays settings onto setts, last writer wins, and returns setts.
// NewHeap and NewArenaFromSettings mix a caller's overrides on top of
// their package defaults so a caller only has to name the keys it wants
// to change.
func (setts Settings) Mixin(settings ...interface{}) Settings {
	update := func(arg map[string]interface{}) {
		for key, value := range arg {
			setts[key] = value
		}
	}
	for _, arg := range settings {
		switch cnf := arg.(type) {
		case Settings:
			update(map[string]interface{}(cnf))
		case map[string]interface{}:
			update(cnf)
		}
	}
	return setts
}

// Int64 returns the int64 value for key, converting from whatever numeric
// type it was stored as (literal Settings maps in Go source default to
// int, while values round-tripped through JSON arrive as float64).
func (setts Settings) Int64(key string) int64 {
	value, ok := setts[key]
	if !ok {
		panicerr("missing settings %q", key)
	}
	switch val := value.(type) {
	case float64:
		return int64(val)
	case float32:
		return int64(val)
	case uint:
		return int64(val)
	case uint64:
		return int64(val)
	case uint32:
		return int64(val)
	case uint16:
		return int64(val)
	case uint8:
		return int64(val)
	case int:
		return int64(val)
	case int64:
		return int64(val)
	case int32:
		return int64(val)
	case int16:
		return int64(val)
	case int8:
		return int64(val)
	}
	panicerr("settings %v not a number: %T", key, value)
	return 0
}

// panicerr formats and panics. Settings access errors are programmer
// errors (a missing or mistyped config key), never runtime conditions, so
// they panic instead of returning an error.
func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
