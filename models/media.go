package models

// Media metadata shapes mirroring the OMDb API payloads.

// Rating represents a single rating from a review source.
type Rating struct {
	Source string `json:"source"` // Internet Movie Database, Rotten Tomatoes, Metacritic
	Value  string `json:"value"`  // Scale varies by source ("9.0/10", "94%", "84/100")
}

// Trailer is an external trailer link attached to a title.
type Trailer struct {
	Language string `json:"language"`
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
}

type Media struct {
	IMDBID      string   `json:"imdbId"`
	Title       string   `json:"title"`
	Year        string   `json:"year"` // OMDb returns ranges like "2016–" for series
	MediaType   string   `json:"mediaType"` // movie | series | anime
	Poster      string   `json:"poster,omitempty"`
	Plot        string   `json:"plot,omitempty"`
	Rated       string   `json:"rated,omitempty"`
	Released    string   `json:"released,omitempty"`
	Runtime     string   `json:"runtime,omitempty"`
	Genre       string   `json:"genre,omitempty"`
	Director    string   `json:"director,omitempty"`
	Writer      string   `json:"writer,omitempty"`
	Actors      string   `json:"actors,omitempty"`
	Language    string   `json:"language,omitempty"`
	Country     string   `json:"country,omitempty"`
	Awards      string   `json:"awards,omitempty"`
	Ratings     []Rating `json:"ratings,omitempty"`
	IMDBRating  string   `json:"imdbRating,omitempty"`
	IMDBVotes   string   `json:"imdbVotes,omitempty"`
	Metascore   string   `json:"metascore,omitempty"`
	BoxOffice   string   `json:"boxOffice,omitempty"`
	Production  string   `json:"production,omitempty"`
	Website     string   `json:"website,omitempty"`
	TotalSeasons string  `json:"totalSeasons,omitempty"`
	Trailers    []Trailer `json:"trailers,omitempty"`
}

// SearchResult is one page of title search results.
type SearchResult struct {
	Search       []Media `json:"search"`
	TotalResults string  `json:"totalResults"`
	Page         int     `json:"page"`
}

// Episode is a single episode inside a season listing.
type Episode struct {
	Title      string `json:"title"`
	Released   string `json:"released"`
	Episode    string `json:"episode"`
	IMDBRating string `json:"imdbRating"`
	IMDBID     string `json:"imdbId"`
}

// Season is the episode listing for one season of a series.
type Season struct {
	Season       int       `json:"season"`
	TotalSeasons string    `json:"totalSeasons"`
	Episodes     []Episode `json:"episodes"`
}

// DegradedReason explains why a metadata response was served from the
// builtin fallback dataset instead of the live upstream.
type DegradedReason string

const (
	DegradedNone          DegradedReason = ""
	DegradedAuthExhausted DegradedReason = "upstream_auth_exhausted"
	DegradedUpstreamFalse DegradedReason = "upstream_no_match"
	DegradedNetworkError  DegradedReason = "upstream_unreachable"
)
