package analytics

import (
	"fmt"
	"sync"
	"time"

	"newsdesk/webclient/browser"
)

// viewSpan is an open dwell measurement window.
type viewSpan struct {
	page      string
	articleID int
	start     time.Time
}

// ViewTracker measures how long one logical view (a route or a modal)
// stays active. At most one span is open at a time; closing is idempotent
// and emits exactly one dwell event per span no matter how many
// termination triggers fire.
type ViewTracker struct {
	tracker *Tracker

	mu   sync.Mutex
	span *viewSpan
}

func NewViewTracker(t *Tracker) *ViewTracker {
	return &ViewTracker{tracker: t}
}

// Open starts a span for page, closing any span still open so the dwell
// for the previous view is dispatched before the page_in for the next.
// articleID is attached when the view shows a single article.
func (v *ViewTracker) Open(page string, articleID int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeLocked()
	v.span = &viewSpan{page: page, articleID: articleID, start: v.tracker.now()}
	v.tracker.Track("page_in", &Props{
		Page:      page,
		ArticleID: articleID,
		ContentID: contentID(articleID),
	})
}

// Close ends the open span and emits its dwell event. Closing with no
// open span is a silent no-op.
func (v *ViewTracker) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeLocked()
}

func (v *ViewTracker) closeLocked() {
	s := v.span
	if s == nil {
		return
	}
	v.span = nil
	ms := v.tracker.now().Sub(s.start).Milliseconds()
	v.tracker.Track("dwell", &Props{
		Page:        s.page,
		ArticleID:   s.articleID,
		ContentID:   contentID(s.articleID),
		DurationMS:  ms,
		DurationSec: roundSeconds(ms),
	}, WithBeacon())
}

func contentID(articleID int) string {
	if articleID == 0 {
		return ""
	}
	return fmt.Sprintf("article:%d", articleID)
}

func roundSeconds(ms int64) int {
	return int((ms + 500) / 1000)
}

// RouteTracker is the view lifecycle coordinator for route navigation.
// Every Navigate closes the previous view's span and opens one for the
// new path; a page hide closes whatever is open.
type RouteTracker struct {
	page       *browser.Page
	view       *ViewTracker
	removeHide func()
}

// InstallRouteTracker opens a span for the page's current path and hooks
// the hide listener.
func InstallRouteTracker(t *Tracker, page *browser.Page) *RouteTracker {
	rt := &RouteTracker{page: page, view: NewViewTracker(t)}
	rt.removeHide = page.OnHide(rt.view.Close)
	rt.view.Open(page.Path(), 0)
	return rt
}

// Navigate moves the page to path and rolls the view span over.
func (rt *RouteTracker) Navigate(path string) {
	rt.page.Navigate(path)
	rt.view.Open(rt.page.Path(), 0)
}

// Shutdown closes the open span and detaches the hide listener. Safe to
// call after a hide already closed the span.
func (rt *RouteTracker) Shutdown() {
	rt.view.Close()
	rt.removeHide()
}

// ModalTracker measures dwell for an article modal layered over a route.
// The modal is reported as its own view under a synthetic path, so route
// dwell and article dwell stay distinguishable at the collector.
type ModalTracker struct {
	view *ViewTracker
}

func NewModalTracker(t *Tracker) *ModalTracker {
	return &ModalTracker{view: NewViewTracker(t)}
}

// OpenArticle reports the modal presenting article id.
func (m *ModalTracker) OpenArticle(id int) {
	m.view.Open(fmt.Sprintf("/article/%d?modal=1", id), id)
}

// Close reports the modal being dismissed. Idempotent.
func (m *ModalTracker) Close() {
	m.view.Close()
}
