package bookmarks

import (
	"reflect"
	"testing"

	"newsdesk/webclient/models"
	"newsdesk/webclient/storage"
)

func item(id int) models.BookmarkItem {
	return models.BookmarkItem{ID: id, Title: "article"}
}

func TestToggleAddsToFront(t *testing.T) {
	l := NewLocal(storage.NewMemoryStore())

	if on := l.Toggle(item(1)); !on {
		t.Fatal("first toggle must report added")
	}
	if on := l.Toggle(item(2)); !on {
		t.Fatal("toggle of new item must report added")
	}

	got := l.List()
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("list = %v, want newest first [2 1]", got)
	}
	if !l.Has(1) || !l.Has(2) || l.Has(3) {
		t.Fatal("membership mismatch")
	}
}

func TestDoubleToggleRestoresList(t *testing.T) {
	kv := storage.NewMemoryStore()
	l := NewLocal(kv)
	l.Toggle(item(1))
	l.Toggle(item(2))
	l.Toggle(item(3))
	before := l.List()
	rawBefore, _ := kv.Get("bookmarks")

	// Article 9 is not bookmarked: add then remove.
	if on := l.Toggle(item(9)); !on {
		t.Fatal("first toggle must add")
	}
	if on := l.Toggle(item(9)); on {
		t.Fatal("second toggle must remove")
	}

	after := l.List()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("list changed: %v vs %v", before, after)
	}
	rawAfter, _ := kv.Get("bookmarks")
	if rawBefore != rawAfter {
		t.Fatalf("persisted list changed: %s vs %s", rawBefore, rawAfter)
	}
}

func TestRemove(t *testing.T) {
	l := NewLocal(storage.NewMemoryStore())
	l.Toggle(item(1))
	l.Toggle(item(2))

	l.Remove(1)
	if l.Has(1) {
		t.Fatal("removed bookmark still present")
	}
	l.Remove(1) // absent: no-op
	if got := l.List(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("list = %v, want [2]", got)
	}
}

func TestCorruptDataReadsEmpty(t *testing.T) {
	kv := storage.NewMemoryStore()
	if err := kv.Set("bookmarks", "{not json"); err != nil {
		t.Fatal(err)
	}
	l := NewLocal(kv)

	if got := l.List(); got != nil {
		t.Fatalf("list = %v, want empty for corrupt data", got)
	}
	// Toggling over corrupt data starts a fresh list.
	l.Toggle(item(5))
	if got := l.List(); len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("list = %v, want [5]", got)
	}
}

func TestSubscribe(t *testing.T) {
	l := NewLocal(storage.NewMemoryStore())
	calls := 0
	unsub := l.Subscribe(func() { calls++ })

	l.Toggle(item(1))
	l.Remove(1)
	l.Remove(1) // no change, no notification
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}

	unsub()
	l.Toggle(item(2))
	if calls != 2 {
		t.Fatalf("calls after unsubscribe = %d, want 2", calls)
	}
}
