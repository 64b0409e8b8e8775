package analytics

import (
	"sync"

	"newsdesk/webclient/browser"
)

// scrollThresholds are the depth percentages reported once per page
// instance, in emission order.
var scrollThresholds = []int{25, 50, 75, 90}

// TrackScrollDepth emits a scroll_depth event the first time each
// threshold percentage of the scrollable distance is passed. The current
// position is checked immediately so mid-page loads report the depths
// already behind them, then on every scroll tick. Thresholds never
// re-emit; the set of crossed values only grows until teardown.
func TrackScrollDepth(t *Tracker, page *browser.Page, logicalPage string) (teardown func()) {
	var (
		mu   sync.Mutex
		seen = make(map[int]bool, len(scrollThresholds))
	)

	check := func() {
		pct := scrollPercent(page.Scroll())
		for _, threshold := range scrollThresholds {
			mu.Lock()
			due := !seen[threshold] && float64(threshold) <= pct
			if due {
				seen[threshold] = true
			}
			mu.Unlock()
			if due {
				t.Track("scroll_depth", &Props{
					Page: logicalPage,
					Meta: map[string]any{"threshold": threshold},
				})
			}
		}
	}

	check()
	return page.OnScroll(check)
}

// scrollPercent converts scroll metrics into a position within the
// scrollable distance, clamped to [0,100].
func scrollPercent(top, viewport, full float64) float64 {
	scrollable := full - viewport
	if scrollable < 1 {
		scrollable = 1
	}
	pct := top / scrollable * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
