// Package auth keeps the client's authenticated session: the persisted
// access token, the cached user, and the identity propagation that ties
// telemetry attribution to login state.
package auth

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsdesk/webclient/analytics"
	"newsdesk/webclient/client"
	"newsdesk/webclient/models"
	"newsdesk/webclient/storage"
)

const tokenKey = "token"

// Manager owns the auth session lifecycle. All failures of durable
// persistence are best-effort; only API failures are returned.
type Manager struct {
	api      *client.Client
	durable  storage.Store
	identity *analytics.Identity
	tracker  *analytics.Tracker

	now func() time.Time

	mu   sync.Mutex
	user *models.User
}

func NewManager(api *client.Client, durable storage.Store, identity *analytics.Identity, tracker *analytics.Tracker) *Manager {
	return &Manager{
		api:      api,
		durable:  durable,
		identity: identity,
		tracker:  tracker,
		now:      time.Now,
	}
}

// Restore adopts a previously persisted token, dropping it when expired
// or unparseable, and refreshes the cached user. Having no session to
// restore is not an error.
func (m *Manager) Restore(ctx context.Context) error {
	token, ok := m.durable.Get(tokenKey)
	if !ok || token == "" {
		return nil
	}
	if tokenExpired(token, m.now()) {
		log.Printf("auth: persisted token expired, clearing session")
		_ = m.durable.Delete(tokenKey)
		return nil
	}
	m.api.SetToken(token)
	return m.RefreshMe(ctx)
}

// Login exchanges credentials for a token, persists it, refreshes the
// user and flushes any onboarding draft captured before signup.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	m.api.SetToken(token.AccessToken)
	_ = m.durable.Set(tokenKey, token.AccessToken)

	if err := m.RefreshMe(ctx); err != nil {
		log.Printf("auth: refresh user after login: %v", err)
	}
	m.tracker.Track("login", nil)
	m.flushOnboarding(ctx)
	return nil
}

// Register creates an account; the caller logs in separately.
func (m *Manager) Register(ctx context.Context, email, password, username string) error {
	if _, err := m.api.Register(ctx, email, password, username); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout drops the token, cached user and durable user id, and reports
// the logout. Events from here on are attributed to the anonymous
// session only.
func (m *Manager) Logout() {
	m.api.SetToken("")
	_ = m.durable.Delete(tokenKey)
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	m.identity.ClearUserID()
	m.tracker.Track("logout", nil)
}

// RefreshMe re-fetches the authenticated user. On success the numeric
// user id is written through to durable storage for event attribution;
// on failure the cached user is cleared but the stored id is left alone,
// matching a transient network error not being a logout.
func (m *Manager) RefreshMe(ctx context.Context) error {
	if m.api.Token() == "" {
		m.mu.Lock()
		m.user = nil
		m.mu.Unlock()
		return nil
	}
	user, err := m.api.Me(ctx)
	if err != nil {
		m.mu.Lock()
		m.user = nil
		m.mu.Unlock()
		return fmt.Errorf("refresh user: %w", err)
	}
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	m.identity.SetUserID(user.ID)
	return nil
}

// User returns the cached authenticated user, nil when anonymous.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Authenticated reports whether a token is installed.
func (m *Manager) Authenticated() bool {
	return m.api.Token() != ""
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the server remains the authority, this only avoids sending
// a token known to be dead.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(now)
}
