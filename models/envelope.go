package models

import "time"

// DeviceType is the coarse device class derived from the user agent.
type DeviceType string

const (
	DeviceMobile DeviceType = "Mobile"
	DeviceTablet DeviceType = "Tablet"
	DevicePC     DeviceType = "PC"
)

// Envelope is the canonical telemetry record sent to the collector.
// Every envelope carries a unique event id, a non-empty event name and the
// tab session id; all other fields are optional.
type Envelope struct {
	EventID       string         `json:"event_id"`
	EventName     string         `json:"event_name"`
	EventTime     time.Time      `json:"event_time"`
	ClientVersion string         `json:"client_version"`
	DeviceType    DeviceType     `json:"device_type"`
	SessionID     string         `json:"session_id"`
	UserID        *int           `json:"user_id,omitempty"`
	Page          string         `json:"page,omitempty"`
	URL           string         `json:"current_url,omitempty"`
	Referrer      string         `json:"referrer,omitempty"`
	ContentID     string         `json:"content_id,omitempty"`
	ArticleID     int            `json:"article_id,omitempty"`
	Position      int            `json:"position,omitempty"`
	DurationMS    int64          `json:"duration_ms,omitempty"`
	DurationSec   int            `json:"duration_sec,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
}

// EventBatch is the wire shape accepted by the collector endpoint.
type EventBatch struct {
	Events []Envelope `json:"events"`
}
