package analytics

import (
	"strings"
	"sync"
	"time"
)

// SearchTracker reports search queries after the input settles, so each
// keystroke does not become its own event. Only the latest non-empty
// query within a debounce window is emitted.
type SearchTracker struct {
	tracker *Tracker
	scope   string
	delay   time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewSearchTracker returns a tracker for one search box. scope names the
// surface the search lives on (e.g. "for_you").
func NewSearchTracker(t *Tracker, scope string, delay time.Duration) *SearchTracker {
	return &SearchTracker{tracker: t, scope: scope, delay: delay}
}

// Update records the current query text, restarting the debounce window.
func (s *SearchTracker) Update(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	query = strings.TrimSpace(query)
	if query == "" {
		s.timer = nil
		return
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.tracker.Track("search", &Props{
			Meta: map[string]any{
				"query": query,
				"len":   len(query),
				"scope": s.scope,
			},
		})
	})
}

// Stop cancels any pending emission; a query still inside its debounce
// window is dropped, matching the search box unmounting.
func (s *SearchTracker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
