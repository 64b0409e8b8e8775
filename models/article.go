package models

import "time"

// Article is the feed item shape served by the articles endpoint.
type Article struct {
	ID          int        `json:"id"`
	Site        string     `json:"site"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Category    string     `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`
}

// BookmarkItem is the slim article projection kept in the anonymous
// local bookmark list.
type BookmarkItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// ReactionState reports the like/dislike flags for one user and article
// after a toggle. The two are mutually exclusive.
type ReactionState struct {
	Like    bool `json:"like"`
	Dislike bool `json:"dislike"`
}
