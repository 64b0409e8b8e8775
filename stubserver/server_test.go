package stubserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"newsdesk/webclient/analytics"
	"newsdesk/webclient/browser"
	"newsdesk/webclient/models"
	"newsdesk/webclient/storage"
)

// The collector endpoint receives exactly what the transport sends.
func TestCollectorReceivesTransportEnvelopes(t *testing.T) {
	stub := New()
	srv := httptest.NewServer(stub.Handler())
	defer srv.Close()

	page := browser.NewPage("https://news.example.com", "/", "", "Mozilla/5.0 (iPhone)")
	identity := analytics.NewIdentity(storage.NewMemoryStore(), storage.NewMemoryStore())
	transport := analytics.NewTransport(srv.URL)
	tracker := analytics.NewTracker(identity, page, transport, "0.1.0")

	tracker.Track("click", &analytics.Props{ArticleID: 3}, analytics.WithBeacon())
	tracker.TrackDwell(time.Now().Add(-2*time.Second), "/")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := transport.Close(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	events := stub.Events()
	if len(events) != 2 {
		t.Fatalf("collector got %d events, want 2", len(events))
	}
	byName := make(map[string]models.Envelope, len(events))
	for _, env := range events {
		byName[env.EventName] = env
		if env.SessionID == "" || env.EventID == "" {
			t.Errorf("envelope %q missing identity fields: %+v", env.EventName, env)
		}
	}
	if env, ok := byName["click"]; !ok || env.ArticleID != 3 {
		t.Errorf("click envelope = %+v", env)
	}
	if env, ok := byName["dwell"]; !ok || env.DurationSec != 2 {
		t.Errorf("dwell envelope = %+v", env)
	}
	if byName["click"].DeviceType != models.DeviceMobile {
		t.Errorf("device type = %q, want Mobile", byName["click"].DeviceType)
	}
}

func TestCollectorRejectsEmptyBatch(t *testing.T) {
	stub := New()
	srv := httptest.NewServer(stub.Handler())
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/events", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
