package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"newsdesk/webclient/analytics"
	"newsdesk/webclient/browser"
	"newsdesk/webclient/client"
	"newsdesk/webclient/models"
	"newsdesk/webclient/storage"
	"newsdesk/webclient/stubserver"
)

// captureSender records envelopes for assertions.
type captureSender struct {
	names []string
}

func (c *captureSender) Send(env models.Envelope, beacon bool) {
	c.names = append(c.names, env.EventName)
}

type fixture struct {
	manager  *Manager
	api      *client.Client
	baseURL  string
	durable  *storage.MemoryStore
	identity *analytics.Identity
	sender   *captureSender
	stub     *stubserver.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stub := stubserver.New()
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	durable := storage.NewMemoryStore()
	identity := analytics.NewIdentity(storage.NewMemoryStore(), durable)
	sender := &captureSender{}
	page := browser.NewPage("https://news.example.com", "/", "", "Mozilla/5.0")
	tracker := analytics.NewTracker(identity, page, sender, "0.1.0")
	api := client.New(srv.URL)

	return &fixture{
		manager:  NewManager(api, durable, identity, tracker),
		api:      api,
		baseURL:  srv.URL,
		durable:  durable,
		identity: identity,
		sender:   sender,
		stub:     stub,
	}
}

func register(t *testing.T, f *fixture) {
	t.Helper()
	if err := f.manager.Register(context.Background(), "reader@example.com", "password123", "reader"); err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestLoginInstallsSession(t *testing.T) {
	f := newFixture(t)
	register(t, f)

	if err := f.manager.Login(context.Background(), "reader@example.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if !f.manager.Authenticated() {
		t.Fatal("manager not authenticated after login")
	}
	if tok, ok := f.durable.Get("token"); !ok || tok == "" {
		t.Fatal("token not persisted")
	}
	user := f.manager.User()
	if user == nil || user.Email != "reader@example.com" {
		t.Fatalf("user = %+v", user)
	}
	if uid := f.identity.UserID(); uid == nil || *uid != user.ID {
		t.Fatalf("durable uid = %v, want %d", uid, user.ID)
	}
	if len(f.sender.names) == 0 || f.sender.names[len(f.sender.names)-1] != "login" {
		t.Fatalf("events = %v, want trailing login", f.sender.names)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)
	register(t, f)

	if err := f.manager.Login(context.Background(), "reader@example.com", "wrong"); err == nil {
		t.Fatal("expected login error")
	}
	if f.manager.Authenticated() {
		t.Fatal("failed login must not install a token")
	}
	if len(f.sender.names) != 0 {
		t.Fatalf("failed login must not emit events, got %v", f.sender.names)
	}
}

func TestLoginFlushesOnboardingDraft(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	age := "20s"
	SaveOnboardingDraft(f.durable, models.Profile{AgeGroup: &age, Interests: []string{"tech"}})

	ctx := context.Background()
	if err := f.manager.Login(ctx, "reader@example.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, ok := f.durable.Get("onboarding"); ok {
		t.Fatal("draft must be cleared after a successful flush")
	}
	p, err := f.api.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.AgeGroup == nil || *p.AgeGroup != age {
		t.Fatalf("server profile = %+v, want flushed draft", p)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	if err := f.manager.Login(context.Background(), "reader@example.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	f.manager.Logout()

	if f.manager.Authenticated() {
		t.Fatal("still authenticated after logout")
	}
	if f.manager.User() != nil {
		t.Fatal("user cache not cleared")
	}
	if _, ok := f.durable.Get("token"); ok {
		t.Fatal("token not removed")
	}
	if uid := f.identity.UserID(); uid != nil {
		t.Fatalf("uid = %v, want nil after logout", *uid)
	}
	if f.sender.names[len(f.sender.names)-1] != "logout" {
		t.Fatalf("events = %v, want trailing logout", f.sender.names)
	}
}

func TestRestoreAdoptsPersistedToken(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	ctx := context.Background()
	if err := f.manager.Login(ctx, "reader@example.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	token, _ := f.durable.Get("token")

	// A fresh manager over the same durable store: the next tab.
	next := NewManager(client.New(f.baseURL), f.durable, f.identity, testTracker(f))
	if err := next.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !next.Authenticated() {
		t.Fatal("restore did not adopt persisted token")
	}
	if got, _ := f.durable.Get("token"); got != token {
		t.Fatal("restore must not rewrite the token")
	}
	if user := next.User(); user == nil || user.Email != "reader@example.com" {
		t.Fatalf("user = %+v", user)
	}
}

func TestRestoreDropsExpiredToken(t *testing.T) {
	f := newFixture(t)
	// Not a real JWT; unparseable tokens are treated as expired.
	if err := f.durable.Set("token", "garbage"); err != nil {
		t.Fatal(err)
	}

	if err := f.manager.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if f.manager.Authenticated() {
		t.Fatal("expired token must not be adopted")
	}
	if _, ok := f.durable.Get("token"); ok {
		t.Fatal("expired token must be deleted")
	}
}

func TestRestoreNothingPersisted(t *testing.T) {
	f := newFixture(t)
	if err := f.manager.Restore(context.Background()); err != nil {
		t.Fatalf("restore with no session: %v", err)
	}
	if f.manager.Authenticated() {
		t.Fatal("nothing to restore, must stay anonymous")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	if !tokenExpired("not-a-jwt", now) {
		t.Error("unparseable token must count as expired")
	}
}

func testTracker(f *fixture) *analytics.Tracker {
	page := browser.NewPage("https://news.example.com", "/", "", "Mozilla/5.0")
	return analytics.NewTracker(f.identity, page, f.sender, "0.1.0")
}
