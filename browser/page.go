// Package browser models the pieces of the page environment the client
// reads from or observes: location, user agent, scroll metrics, page-hide
// and element visibility. Callbacks are explicit registrations that return
// a disposer, so owners can detach without relying on firing order.
package browser

import (
	"net/url"
	"strings"
	"sync"
)

// Page is one browser tab's environment.
type Page struct {
	mu        sync.Mutex
	origin    string
	path      string
	referrer  string
	userAgent string

	scrollTop      float64
	viewportHeight float64
	fullHeight     float64

	nextID    int
	scrollFns map[int]func()
	hideFns   map[int]func()
}

// NewPage returns a page at path. origin is the scheme+host prefix used to
// build absolute URLs.
func NewPage(origin, path, referrer, userAgent string) *Page {
	return &Page{
		origin:    strings.TrimRight(origin, "/"),
		path:      path,
		referrer:  referrer,
		userAgent: userAgent,
		scrollFns: make(map[int]func()),
		hideFns:   make(map[int]func()),
	}
}

// Path returns the current logical page path.
func (p *Page) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// URL returns the current absolute URL.
func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.origin + p.path
}

func (p *Page) Referrer() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.referrer
}

func (p *Page) UserAgent() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userAgent
}

// Navigate moves the page to path. The previous URL becomes the referrer,
// matching in-app history navigation.
func (p *Page) Navigate(path string) {
	p.mu.Lock()
	if u, err := url.Parse(path); err == nil {
		p.referrer = p.origin + p.path
		p.path = u.RequestURI()
	}
	p.mu.Unlock()
}

// OnScroll registers fn for scroll ticks and returns its disposer.
func (p *Page) OnScroll(fn func()) (remove func()) {
	return p.register(p.scrollFns, fn)
}

// OnHide registers fn for the tab becoming hidden or unloading
// (visibilitychange / pagehide) and returns its disposer.
func (p *Page) OnHide(fn func()) (remove func()) {
	return p.register(p.hideFns, fn)
}

func (p *Page) register(reg map[int]func(), fn func()) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	reg[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(reg, id)
		p.mu.Unlock()
	}
}

// Scroll returns the current scroll offset, viewport height and full
// document height.
func (p *Page) Scroll() (top, viewport, full float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollTop, p.viewportHeight, p.fullHeight
}

// SetScroll updates the scroll metrics and fires the scroll listeners.
func (p *Page) SetScroll(top, viewport, full float64) {
	p.mu.Lock()
	p.scrollTop, p.viewportHeight, p.fullHeight = top, viewport, full
	fns := snapshot(p.scrollFns)
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Hide fires the hide listeners. Calling it again re-fires them; listener
// owners are responsible for their own idempotence.
func (p *Page) Hide() {
	p.mu.Lock()
	fns := snapshot(p.hideFns)
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func snapshot(reg map[int]func()) []func() {
	fns := make([]func(), 0, len(reg))
	for _, fn := range reg {
		fns = append(fns, fn)
	}
	return fns
}
