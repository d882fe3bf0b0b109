package models

// Feed aggregation shapes. ScrapedResult is the per-adapter intermediate,
// FeedPost the normalized item handed to clients.

// ScrapeSource identifies which upstream produced a scraped result.
type ScrapeSource string

const (
	SourceReddit     ScrapeSource = "reddit"
	SourceNews       ScrapeSource = "news"
	SourceYouTube    ScrapeSource = "youtube"
	SourceDeviantArt ScrapeSource = "deviantart"
)

// ScrapedResult is the normalized record a source adapter produces. It lives
// only for the duration of one aggregation call.
type ScrapedResult struct {
	Source    ScrapeSource `json:"source"`
	ID        string       `json:"id"`
	Title     string       `json:"title,omitempty"`
	URL       string       `json:"url,omitempty"`
	Author    string       `json:"author,omitempty"`
	Score     int          `json:"score,omitempty"`
	Comments  int          `json:"comments,omitempty"`
	Image     string       `json:"image,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"` // RFC3339 when known
	VideoID   string       `json:"videoId,omitempty"`
}

// PostType classifies a feed post for filtering and presentation.
type PostType string

const (
	PostVideo      PostType = "video"
	PostArticle    PostType = "article"
	PostImage      PostType = "image"
	PostDiscussion PostType = "discussion"
)

// FeedPost is the client-facing feed item. Never mutated after construction.
type FeedPost struct {
	ID        string   `json:"id"`
	Source    string   `json:"source"`
	Type      PostType `json:"type"`
	URL       string   `json:"url"`
	Author    string   `json:"author"`
	Timestamp string   `json:"timestamp"` // relative, e.g. "3h ago"
	Content   string   `json:"content"`
	Image     string   `json:"image,omitempty"`
	Likes     int      `json:"likes"`
	Comments  int      `json:"comments"`
	Shares    int      `json:"shares"`
	Tags      []string `json:"tags,omitempty"`
	VideoID   string   `json:"videoId,omitempty"`
	Domain    string   `json:"domain,omitempty"`
}

// SourceHealth reports how one adapter fared during an aggregation call.
type SourceHealth struct {
	Source  string `json:"source"`
	Results int    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// FeedResult carries the merged feed plus per-source degradation info so
// callers can surface "some sources unavailable" instead of silently showing
// fewer items.
type FeedResult struct {
	Posts   []FeedPost     `json:"posts"`
	Sources []SourceHealth `json:"sources"`
}
