package analytics

import (
	"regexp"
	"time"

	"newsdesk/webclient/browser"
	"newsdesk/webclient/models"
)

// Sender delivers a finished envelope to the collector. beacon requests
// best-effort delivery that survives page unload.
type Sender interface {
	Send(env models.Envelope, beacon bool)
}

// Props are caller-supplied envelope overrides. Zero values are treated
// as unset; a set field wins over the ambient value computed by Track.
type Props struct {
	Page        string
	URL         string
	Referrer    string
	ContentID   string
	ArticleID   int
	Position    int
	DurationMS  int64
	DurationSec int
	SessionID   string
	UserID      *int
	DeviceType  models.DeviceType
	Meta        map[string]any
}

// DeliveryOption tunes how one event is delivered.
type DeliveryOption func(*delivery)

type delivery struct {
	beacon bool
}

// WithBeacon requests the guaranteed-on-unload delivery path.
func WithBeacon() DeliveryOption {
	return func(d *delivery) { d.beacon = true }
}

// Tracker assembles canonical telemetry envelopes from an event name,
// caller props and the ambient page/identity context, and hands them to
// the Sender. Track never blocks and never panics; internal failures
// degrade to a still-valid envelope.
type Tracker struct {
	identity *Identity
	page     *browser.Page
	sender   Sender
	version  string

	now   func() time.Time
	newID func() string
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock overrides the tracker's time source.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// WithEventIDs overrides the event id generator.
func WithEventIDs(newID func() string) TrackerOption {
	return func(t *Tracker) { t.newID = newID }
}

// NewTracker wires an envelope builder to its ambient collaborators.
// version is the client version tag stamped on every envelope.
func NewTracker(identity *Identity, page *browser.Page, sender Sender, version string, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		identity: identity,
		page:     page,
		sender:   sender,
		version:  version,
		now:      time.Now,
		newID:    func() string { return randomID("e") },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track builds and dispatches one envelope. An empty event name is
// dropped silently; every dispatched envelope carries a unique event id
// and the session id.
func (t *Tracker) Track(name string, props *Props, opts ...DeliveryOption) {
	if name == "" {
		return
	}
	var d delivery
	for _, opt := range opts {
		opt(&d)
	}

	env := models.Envelope{
		EventID:       t.newID(),
		EventName:     name,
		EventTime:     t.now().UTC(),
		ClientVersion: t.version,
		DeviceType:    deviceType(t.page.UserAgent()),
		SessionID:     t.identity.SessionID(),
		UserID:        t.identity.UserID(),
		Page:          t.page.Path(),
		URL:           t.page.URL(),
		Referrer:      t.page.Referrer(),
	}
	if props != nil {
		applyProps(&env, props)
	}
	t.sender.Send(env, d.beacon)
}

// TrackDwell emits the dwell event for a view span opened at start, with
// the elapsed time in milliseconds and rounded whole seconds. Dwell uses
// beacon delivery because it typically fires while the page unloads.
func (t *Tracker) TrackDwell(start time.Time, page string) {
	ms := t.now().Sub(start).Milliseconds()
	t.Track("dwell", &Props{
		Page:        page,
		DurationMS:  ms,
		DurationSec: roundSeconds(ms),
	}, WithBeacon())
}

func applyProps(env *models.Envelope, p *Props) {
	if p.Page != "" {
		env.Page = p.Page
	}
	if p.URL != "" {
		env.URL = p.URL
	}
	if p.Referrer != "" {
		env.Referrer = p.Referrer
	}
	if p.ContentID != "" {
		env.ContentID = p.ContentID
	}
	if p.ArticleID != 0 {
		env.ArticleID = p.ArticleID
	}
	if p.Position != 0 {
		env.Position = p.Position
	}
	if p.DurationMS != 0 {
		env.DurationMS = p.DurationMS
	}
	if p.DurationSec != 0 {
		env.DurationSec = p.DurationSec
	}
	if p.SessionID != "" {
		env.SessionID = p.SessionID
	}
	if p.UserID != nil {
		env.UserID = p.UserID
	}
	if p.DeviceType != "" {
		env.DeviceType = p.DeviceType
	}
	if p.Meta != nil {
		env.Meta = p.Meta
	}
}

var (
	mobileUA = regexp.MustCompile(`(?i)Mobi|Android|iPhone`)
	tabletUA = regexp.MustCompile(`(?i)iPad|Tablet`)
)

// deviceType classifies a user agent into a coarse device class.
func deviceType(ua string) models.DeviceType {
	switch {
	case mobileUA.MatchString(ua):
		return models.DeviceMobile
	case tabletUA.MatchString(ua):
		return models.DeviceTablet
	default:
		return models.DevicePC
	}
}
