package prefs

import (
	"testing"

	"newsdesk/webclient/storage"
)

func TestModeDefaultsToLight(t *testing.T) {
	kv := storage.NewMemoryStore()
	if got := Mode(kv); got != ModeLight {
		t.Fatalf("mode = %q, want light", got)
	}

	if err := kv.Set("mode", "neon"); err != nil {
		t.Fatal(err)
	}
	if got := Mode(kv); got != ModeLight {
		t.Fatalf("unrecognized mode read as %q, want light", got)
	}
}

func TestSetModeRoundTrip(t *testing.T) {
	kv := storage.NewMemoryStore()

	SetMode(kv, ModeDark)
	if got := Mode(kv); got != ModeDark {
		t.Fatalf("mode = %q, want dark", got)
	}

	SetMode(kv, "neon")
	if got := Mode(kv); got != ModeDark {
		t.Fatalf("invalid SetMode must be ignored, got %q", got)
	}

	SetMode(kv, ModeLight)
	if got := Mode(kv); got != ModeLight {
		t.Fatalf("mode = %q, want light", got)
	}
}

func TestSetModeUnwritableStore(t *testing.T) {
	kv := storage.NewMemoryStore()
	SetMode(kv, ModeDark)
	kv.FailWrites = true

	SetMode(kv, ModeLight)
	if got := Mode(kv); got != ModeDark {
		t.Fatalf("mode = %q, want previous value on failed write", got)
	}
}
