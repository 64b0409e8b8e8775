package analytics

import (
	"sync"

	"newsdesk/webclient/browser"
)

// impressionThreshold is the visible fraction at which a card counts as
// seen.
const impressionThreshold = 0.5

// WatchImpression observes el and emits one impression event for
// articleID at the first sample where the visible fraction reaches the
// threshold, then disconnects. Later visibility churn emits nothing.
// A nil element or zero article id yields an inert watcher; the returned
// stop function is always safe to call, more than once included.
func WatchImpression(t *Tracker, el *browser.Element, articleID int) (stop func()) {
	if el == nil || articleID == 0 {
		return func() {}
	}

	var (
		mu       sync.Mutex
		reported bool
		detach   func()
	)
	done := func() {
		mu.Lock()
		d := detach
		detach = nil
		mu.Unlock()
		if d != nil {
			d()
		}
	}

	d := el.Observe(func(ratio float64) {
		mu.Lock()
		if reported || ratio < impressionThreshold {
			mu.Unlock()
			return
		}
		reported = true
		mu.Unlock()
		t.Track("impression", &Props{
			ArticleID: articleID,
			ContentID: contentID(articleID),
		})
		done()
	})

	mu.Lock()
	fired := reported
	if !fired {
		detach = d
	}
	mu.Unlock()
	// The element may have been visible at attach time, in which case the
	// callback already fired before Observe returned.
	if fired {
		d()
	}
	return done
}
