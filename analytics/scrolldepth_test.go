package analytics

import (
	"testing"
)

func thresholdsOf(t *testing.T, sender *captureSender) []int {
	t.Helper()
	var out []int
	for _, env := range sender.all() {
		if env.EventName != "scroll_depth" {
			continue
		}
		v, ok := env.Meta["threshold"].(int)
		if !ok {
			t.Fatalf("scroll_depth without integer threshold: %v", env.Meta)
		}
		out = append(out, v)
	}
	return out
}

// scrollTo positions the page at pct percent of the scrollable distance.
func scrollTo(pct float64, set func(top, viewport, full float64)) {
	const viewport, full = 800.0, 4800.0
	set(pct / 100 * (full - viewport), viewport, full)
}

func TestScrollDepthThresholdsOnceEachAscending(t *testing.T) {
	tracker, sender, page, _ := newTestTracker(t)

	teardown := TrackScrollDepth(tracker, page, "/home")
	defer teardown()

	for _, pct := range []float64{10, 30, 55, 80, 95, 40} {
		scrollTo(pct, page.SetScroll)
	}

	got := thresholdsOf(t, sender)
	want := []int{25, 50, 75, 90}
	if len(got) != len(want) {
		t.Fatalf("thresholds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("thresholds = %v, want %v", got, want)
		}
	}
}

func TestScrollDepthImmediateCheckOnInstall(t *testing.T) {
	tracker, sender, page, _ := newTestTracker(t)
	// Mid-page load: already past 25% and 50% before the tracker installs.
	scrollTo(60, page.SetScroll)

	teardown := TrackScrollDepth(tracker, page, "/home")
	defer teardown()

	got := thresholdsOf(t, sender)
	want := []int{25, 50}
	if len(got) != len(want) || got[0] != 25 || got[1] != 50 {
		t.Fatalf("thresholds = %v, want %v", got, want)
	}
}

func TestScrollDepthTeardownStopsEmission(t *testing.T) {
	tracker, sender, page, _ := newTestTracker(t)

	teardown := TrackScrollDepth(tracker, page, "/home")
	scrollTo(30, page.SetScroll)
	teardown()
	scrollTo(95, page.SetScroll)

	got := thresholdsOf(t, sender)
	if len(got) != 1 || got[0] != 25 {
		t.Fatalf("thresholds = %v, want [25]", got)
	}
}

func TestScrollDepthShortPageClampsToFull(t *testing.T) {
	tracker, sender, page, _ := newTestTracker(t)
	// Document shorter than the viewport: scrollable distance is zero,
	// so any offset counts as the bottom.
	page.SetScroll(0, 800, 600)

	teardown := TrackScrollDepth(tracker, page, "/home")
	defer teardown()
	page.SetScroll(5, 800, 600)

	got := thresholdsOf(t, sender)
	want := []int{25, 50, 75, 90}
	if len(got) != len(want) {
		t.Fatalf("thresholds = %v, want %v", got, want)
	}
}
