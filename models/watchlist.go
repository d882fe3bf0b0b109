package models

import (
	"fmt"
	"time"
)

// WatchStatus is the user's progress state for a tracked title.
type WatchStatus string

const (
	StatusWatching  WatchStatus = "watching"
	StatusCompleted WatchStatus = "completed"
	StatusOnHold    WatchStatus = "on_hold"
	StatusDropped   WatchStatus = "dropped"
)

// WatchlistItem tracks one title's watch state for a user.
type WatchlistItem struct {
	IMDBID          string               `json:"imdbId"`
	MediaType       string               `json:"mediaType"`
	Title           string               `json:"title,omitempty"`
	Poster          string               `json:"poster,omitempty"`
	Status          WatchStatus          `json:"status"`
	Rating          int                  `json:"rating,omitempty"` // 1-10, 0 = unrated
	AddedAt         time.Time            `json:"addedAt"`
	WatchedAt       *time.Time           `json:"watchedAt,omitempty"`
	EpisodesWatched map[string]time.Time `json:"episodesWatched,omitempty"` // "S:E" -> watched time
}

// Key returns the stable per-user identity of the item.
func (w WatchlistItem) Key() string {
	return w.MediaType + ":" + w.IMDBID
}

// EpisodeKey builds the map key for a season/episode pair.
func EpisodeKey(season, episode int) string {
	return fmt.Sprintf("%d:%d", season, episode)
}

// WatchlistUpsert carries the fields a client may set when adding or
// updating a watchlist entry.
type WatchlistUpsert struct {
	IMDBID    string      `json:"imdbId"`
	MediaType string      `json:"mediaType"`
	Title     string      `json:"title,omitempty"`
	Poster    string      `json:"poster,omitempty"`
	Status    WatchStatus `json:"status,omitempty"`
	Rating    int         `json:"rating,omitempty"`
}
