// Package bookmarks keeps the anonymous bookmark list in durable local
// storage. Authenticated bookmarking goes through the REST client; this
// store is the always-available fallback.
package bookmarks

import (
	"encoding/json"
	"sync"

	"newsdesk/webclient/models"
	"newsdesk/webclient/storage"
)

const storageKey = "bookmarks"

// Local is the local bookmark list. Newest bookmarks sit at the front.
type Local struct {
	kv storage.Store

	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewLocal(kv storage.Store) *Local {
	return &Local{kv: kv, subs: make(map[int]func())}
}

// List returns the persisted bookmarks. Absent or corrupt data reads as
// an empty list.
func (l *Local) List() []models.BookmarkItem {
	raw, ok := l.kv.Get(storageKey)
	if !ok {
		return nil
	}
	var items []models.BookmarkItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

// Has reports whether the article id is bookmarked.
func (l *Local) Has(id int) bool {
	for _, b := range l.List() {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Toggle flips the item's membership and returns the new state: true
// when it was added (to the front), false when removed. Toggling twice
// from the unbookmarked state leaves the list exactly as it was.
func (l *Local) Toggle(item models.BookmarkItem) bool {
	l.mu.Lock()
	items := l.List()
	for i, b := range items {
		if b.ID == item.ID {
			l.save(append(items[:i], items[i+1:]...))
			l.mu.Unlock()
			l.notify()
			return false
		}
	}
	l.save(append([]models.BookmarkItem{item}, items...))
	l.mu.Unlock()
	l.notify()
	return true
}

// Remove deletes the bookmark for id if present.
func (l *Local) Remove(id int) {
	l.mu.Lock()
	items := l.List()
	changed := false
	for i, b := range items {
		if b.ID == id {
			items = append(items[:i], items[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		l.save(items)
	}
	l.mu.Unlock()
	if changed {
		l.notify()
	}
}

// Subscribe registers fn to run after every change (the
// bookmarks-updated event analog) and returns its disposer.
func (l *Local) Subscribe(fn func()) (unsub func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// save persists items. Write failures are swallowed: local bookmarking
// must never fail the caller.
func (l *Local) save(items []models.BookmarkItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = l.kv.Set(storageKey, string(raw))
}

func (l *Local) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
