package browser

import "sync"

// Element is a renderable unit whose visible fraction within the viewport
// can be observed, the intersection-observer analog.
type Element struct {
	mu     sync.Mutex
	ratio  float64
	nextID int
	fns    map[int]func(ratio float64)
}

func NewElement() *Element {
	return &Element{fns: make(map[int]func(float64))}
}

// Observe registers fn to receive visibility samples and returns a stop
// function that detaches it. fn is called immediately with the current
// ratio so observers attached to an already-visible element still fire.
func (e *Element) Observe(fn func(ratio float64)) (stop func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.fns[id] = fn
	ratio := e.ratio
	e.mu.Unlock()
	fn(ratio)
	return func() {
		e.mu.Lock()
		delete(e.fns, id)
		e.mu.Unlock()
	}
}

// SetVisibleRatio records a new visible fraction and notifies observers.
func (e *Element) SetVisibleRatio(ratio float64) {
	e.mu.Lock()
	e.ratio = ratio
	fns := make([]func(float64), 0, len(e.fns))
	for _, fn := range e.fns {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(ratio)
	}
}
