// Package storage provides the key-value stores the client persists its
// state in: a tab-scoped store that lives as long as the process and a
// durable store shared across tabs. Absence of a key is a valid state,
// never an error.
package storage

// Store is a flat string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}
