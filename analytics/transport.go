package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"newsdesk/webclient/models"
)

// Transport delivers envelopes to the collector endpoint. Every send is
// asynchronous and fire-and-forget: failures are logged and swallowed,
// responses discarded. Beacon sends are tracked so Close can wait for
// them. Regular sends run under a context that Close cancels, mirroring
// the browser tearing down in-flight requests on unload.
type Transport struct {
	url    string
	client *http.Client

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTransport returns a transport posting to apiBase's events endpoint.
func NewTransport(apiBase string) *Transport {
	ctx, cancel := context.WithCancel(context.Background())
	return &Transport{
		url:    apiBase + "/events",
		client: &http.Client{Timeout: 10 * time.Second},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Send dispatches one envelope as a single-element batch. It never
// blocks the caller and never returns an error.
func (t *Transport) Send(env models.Envelope, beacon bool) {
	body, err := json.Marshal(models.EventBatch{Events: []models.Envelope{env}})
	if err != nil {
		log.Printf("analytics: drop event %s: %v", env.EventName, err)
		return
	}
	if beacon {
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.post(context.Background(), body)
		}()
		return
	}
	go t.post(t.ctx, body)
}

func (t *Transport) post(ctx context.Context, body []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		log.Printf("analytics: build request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		log.Printf("analytics: deliver event: %v", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// Close cancels outstanding regular sends and waits for beacon sends to
// finish, bounded by ctx.
func (t *Transport) Close(ctx context.Context) error {
	t.cancel()
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
