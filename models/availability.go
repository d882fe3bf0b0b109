package models

import "time"

// PlatformType distinguishes subscription streaming from transactional offers.
type PlatformType string

const (
	PlatformStream PlatformType = "stream"
	PlatformRent   PlatformType = "rent"
	PlatformBuy    PlatformType = "buy"
)

// StreamingPlatform is one detected provider on an availability page.
type StreamingPlatform struct {
	Name  string       `json:"name"`
	Icon  string       `json:"icon"` // scraped image URL or single-letter fallback
	URL   string       `json:"url"`
	Color string       `json:"color,omitempty"`
	Type  PlatformType `json:"type"`
}

// AvailabilityData is the streaming-availability answer for one title.
// Synthetic marks the fixed fallback list returned when the scrape found no
// recognized providers; it is distinct from both cached and live data.
type AvailabilityData struct {
	IMDBID    string              `json:"imdbId"`
	Platforms []StreamingPlatform `json:"platforms"`
	Cached    bool                `json:"cached"`
	CachedAt  *time.Time          `json:"cachedAt,omitempty"`
	Synthetic bool                `json:"synthetic,omitempty"`
}
