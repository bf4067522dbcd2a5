package lib

import "reflect"
import "testing"

func TestSettingsMixin(t *testing.T) {
	setts := make(Settings).Mixin(
		Settings{"region.size": 10},
		map[string]interface{}{"max.arenas": 4},
		Settings{"region.size": 20}, // later arg overrides earlier one
	)
	ref := Settings{"region.size": 20, "max.arenas": 4}
	if !reflect.DeepEqual(ref, setts) {
		t.Fatalf("expected %v, got %v", ref, setts)
	}
}

func TestSettingsMixinOverridesDefaults(t *testing.T) {
	defaults := Settings{"region.size": int64(1024), "max.arenas": int64(8)}
	overrides := Settings{"max.arenas": int64(2)}
	merged := defaults.Mixin(overrides)
	if merged.Int64("region.size") != 1024 {
		t.Errorf("expected untouched key to survive the mixin")
	}
	if merged.Int64("max.arenas") != 2 {
		t.Errorf("expected override to win over the default")
	}
}

func TestSettingsInt64(t *testing.T) {
	setts := Settings{
		"float64": float64(10), "float32": float32(10),
		"uint": uint(10), "uint64": uint64(10), "uint32": uint32(10),
		"uint16": uint16(10), "uint8": uint8(10),
		"int": int(10), "int64": int64(10), "int32": int32(10),
		"int16": int16(10), "int8": int8(10),
	}
	ref := int64(10)
	for key := range setts {
		if v := setts.Int64(key); v != ref {
			t.Fatalf("for key %v, expected %v, got %v", key, ref, v)
		}
	}
}

func TestSettingsInt64MissingKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a missing settings key")
		}
	}()
	Settings{}.Int64("region.size")
}

func TestSettingsInt64WrongTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a non-numeric settings value")
		}
	}()
	Settings{"region.size": "not a number"}.Int64("region.size")
}
