// Package analytics implements the client-side telemetry subsystem:
// session/user identity, envelope construction, collector delivery and the
// dwell, impression and scroll-depth trackers. Every operation is
// best-effort; nothing in this package surfaces an error to the caller.
package analytics

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsdesk/webclient/storage"
)

const (
	sessionKey = "sid"
	userKey    = "uid"
)

// Identity resolves the ambient identifiers attached to every envelope:
// the tab-scoped session id and the optional authenticated user id.
type Identity struct {
	session storage.Store
	durable storage.Store

	mu  sync.Mutex
	sid string

	newID func() string
}

// NewIdentity returns a resolver reading the session id from session and
// the user id from durable.
func NewIdentity(session, durable storage.Store) *Identity {
	return &Identity{
		session: session,
		durable: durable,
		newID:   func() string { return randomID("sid") },
	}
}

// SessionID returns the tab session id, generating and persisting one on
// first use. It never fails: if the store is unwritable the id is kept
// in memory so every later call still returns the same value.
func (id *Identity) SessionID() string {
	id.mu.Lock()
	defer id.mu.Unlock()
	if id.sid != "" {
		return id.sid
	}
	if v, ok := id.session.Get(sessionKey); ok && v != "" {
		id.sid = v
		return id.sid
	}
	id.sid = id.newID()
	_ = id.session.Set(sessionKey, id.sid)
	return id.sid
}

// UserID returns the durable numeric user id, or nil when absent,
// unparseable or the store is unreadable. It never fails.
func (id *Identity) UserID() *int {
	v, ok := id.durable.Get(userKey)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// SetUserID records the authenticated user id in durable storage.
func (id *Identity) SetUserID(uid int) {
	_ = id.durable.Set(userKey, strconv.Itoa(uid))
}

// ClearUserID removes the user id; subsequent events are attributed to
// the anonymous session only.
func (id *Identity) ClearUserID() {
	_ = id.durable.Delete(userKey)
}

// randomID returns a UUID, degrading to a time-seeded pseudo-random id
// when the platform randomness source is unavailable.
func randomID(prefix string) string {
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	return fmt.Sprintf("%s-%s-%s",
		prefix,
		strconv.FormatInt(rand.Int63(), 36),
		strconv.FormatInt(time.Now().UnixNano(), 36))
}
