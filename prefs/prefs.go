// Package prefs reads and writes durable UI preferences.
package prefs

const (
	modeKey = "mode"

	ModeLight = "light"
	ModeDark  = "dark"
)

// kv is the subset of the storage Store the preferences need.
type kv interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Mode returns the persisted UI mode. Absent or unrecognized values read
// as light.
func Mode(store kv) string {
	v, ok := store.Get(modeKey)
	if !ok || (v != ModeLight && v != ModeDark) {
		return ModeLight
	}
	return v
}

// SetMode persists the UI mode. Best-effort; an unwritable store leaves
// the previous value in place.
func SetMode(store kv, mode string) {
	if mode != ModeLight && mode != ModeDark {
		return
	}
	_ = store.Set(modeKey, mode)
}
