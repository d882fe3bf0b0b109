package feed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"sutra/models"
	"sutra/services/scraper"
)

// TrendingSource seeds the feed when no media context is given. Satisfied by
// services/scraper.RedditAdapter.
type TrendingSource interface {
	Trending(ctx context.Context) ([]models.ScrapedResult, error)
}

// Options tune the aggregation behavior. Rand drives the variety sampling
// that reclassifies a slice of posts as memes and fan art; a nil Rand
// disables sampling entirely so classification is deterministic, which is
// what tests want.
type Options struct {
	MemeRatio      float64
	FanArtRatio    float64
	Rand           *rand.Rand
	AdapterTimeout time.Duration
	Timeout        time.Duration
}

func DefaultOptions() Options {
	return Options{
		MemeRatio:      0.2,
		FanArtRatio:    0.2,
		AdapterTimeout: 10 * time.Second,
		Timeout:        20 * time.Second,
	}
}

// Query is one feed request. An empty Title means "trending". Seed, when
// set, replaces the service-wide rand with a request-scoped seeded one so a
// client can get reproducible variety.
type Query struct {
	Title  string
	Filter string // all, videos, announcements, analysis
	Seed   *int64
}

// Service fans a query out to every source adapter, joins best effort, and
// normalizes the results into a single feed.
type Service struct {
	adapters []scraper.Adapter
	trending TrendingSource
	opts     Options

	mu  sync.Mutex // guards opts.Rand, which is not goroutine safe
	now func() time.Time
}

func New(adapters []scraper.Adapter, trending TrendingSource, opts Options) *Service {
	if opts.AdapterTimeout <= 0 {
		opts.AdapterTimeout = 10 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Service{
		adapters: adapters,
		trending: trending,
		opts:     opts,
		now:      time.Now,
	}
}

// Feed never returns an error: a failed adapter contributes nothing and is
// reported in the health summary, and total failure yields an empty feed.
func (s *Service) Feed(ctx context.Context, q Query) *models.FeedResult {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var scraped []models.ScrapedResult
	var health []models.SourceHealth

	if q.Title == "" {
		scraped, health = s.fetchTrending(ctx)
	} else {
		scraped, health = s.fanOut(ctx, q.Title)
	}

	rng := s.opts.Rand
	if q.Seed != nil {
		rng = rand.New(rand.NewSource(*q.Seed))
	}

	posts := make([]models.FeedPost, 0, len(scraped))
	for _, res := range scraped {
		posts = append(posts, s.classify(res, q.Title, rng))
	}
	posts = applyFilter(posts, q.Filter)

	return &models.FeedResult{Posts: posts, Sources: health}
}

func (s *Service) fetchTrending(ctx context.Context) ([]models.ScrapedResult, []models.SourceHealth) {
	results, err := s.trending.Trending(ctx)
	h := models.SourceHealth{Source: "reddit", Results: len(results)}
	if err != nil {
		log.Printf("[feed] trending fetch failed err=%v", err)
		h.Error = err.Error()
	}
	return results, []models.SourceHealth{h}
}

// fanOut queries every adapter concurrently. Slots are indexed per adapter so
// the join needs no locking and source order stays stable across calls.
func (s *Service) fanOut(ctx context.Context, query string) ([]models.ScrapedResult, []models.SourceHealth) {
	resultSlots := make([][]models.ScrapedResult, len(s.adapters))
	errSlots := make([]error, len(s.adapters))

	var wg conc.WaitGroup
	for i, adapter := range s.adapters {
		i, adapter := i, adapter
		wg.Go(func() {
			actx, cancel := context.WithTimeout(ctx, s.opts.AdapterTimeout)
			defer cancel()
			resultSlots[i], errSlots[i] = adapter.Fetch(actx, query)
		})
	}
	wg.Wait()

	var merged []models.ScrapedResult
	health := make([]models.SourceHealth, 0, len(s.adapters))
	for i, adapter := range s.adapters {
		h := models.SourceHealth{Source: adapter.Name(), Results: len(resultSlots[i])}
		if errSlots[i] != nil {
			log.Printf("[feed] adapter failed name=%s err=%v", adapter.Name(), errSlots[i])
			h.Error = errSlots[i].Error()
		}
		merged = append(merged, resultSlots[i]...)
		health = append(health, h)
	}
	return merged, health
}

// sample draws from the given rand, or returns a value outside every
// sampling band when variety is disabled.
func (s *Service) sample(rng *rand.Rand) float64 {
	if rng == nil {
		return 0.5
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return rng.Float64()
}

func (s *Service) filler(rng *rand.Rand, n int) int {
	if rng == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return rng.Intn(n)
}

func (s *Service) classify(res models.ScrapedResult, title string, rng *rand.Rand) models.FeedPost {
	post := models.FeedPost{
		ID:        res.ID,
		URL:       res.URL,
		Timestamp: formatRelative(res.Timestamp, s.now()),
		Likes:     res.Score,
		Comments:  res.Comments,
		Image:     res.Image,
		Tags:      baseTags(title, res.Source),
	}
	if post.Likes == 0 {
		post.Likes = s.filler(rng, 500)
	}
	if post.Comments == 0 {
		post.Comments = s.filler(rng, 50)
	}
	post.Shares = s.filler(rng, 100)

	lowerTitle := strings.ToLower(res.Title)
	if res.Source == models.SourceYouTube &&
		(strings.Contains(lowerTitle, "explained") || strings.Contains(lowerTitle, "breakdown")) {
		post.Source = "youtube"
		post.Type = models.PostVideo
		post.Author = "Film Analysis"
		post.Content = orDefault(res.Title, "Ending Explained: "+title)
		post.VideoID = res.VideoID
		post.Domain = "youtube.com"
		post.Tags = append(post.Tags, "#breakdown", "#analysis")
		return post
	}

	draw := s.sample(rng)
	switch {
	case draw < s.opts.MemeRatio:
		post.Source = "reddit"
		post.Type = models.PostImage
		post.Author = "MemeLord"
		post.Content = orDefault(res.Title, "When you watch "+title+" for the first time")
		post.Domain = "reddit.com"
		post.Tags = append(post.Tags, "#meme", "#funny")
		return post
	case draw < s.opts.MemeRatio+s.opts.FanArtRatio:
		post.Source = "deviantart"
		post.Type = models.PostImage
		post.Author = "ArtStation"
		post.Content = orDefault(res.Title, title+" Concept Art")
		post.Domain = "artstation.com"
		post.Tags = append(post.Tags, "#fanart", "#design")
		return post
	}

	switch res.Source {
	case models.SourceYouTube:
		post.Source = "youtube"
		post.Type = models.PostVideo
		post.Author = "YouTube"
		post.Content = orDefault(res.Title, "Video")
		post.VideoID = res.VideoID
		post.Domain = "youtube.com"
	case models.SourceReddit:
		post.Source = "reddit"
		post.Type = models.PostDiscussion
		post.Author = orDefault(res.Author, "u/unknown")
		post.Content = orDefault(res.Title, "Discussion")
		post.Domain = "reddit.com"
	case models.SourceNews:
		post.Source = "google"
		post.Type = models.PostArticle
		post.Author = orDefault(res.Author, "Google News")
		post.Content = orDefault(res.Title, "News Article")
		post.Domain = "news.google.com"
	case models.SourceDeviantArt:
		post.Source = "deviantart"
		post.Type = models.PostImage
		post.Author = orDefault(res.Author, "DeviantArt")
		post.Content = orDefault(res.Title, "Fan Art")
		post.Domain = "deviantart.com"
	default:
		post.Source = "web"
		post.Type = models.PostDiscussion
		post.Author = "Web"
		post.Content = orDefault(res.Title, "Content")
		post.Domain = "web"
	}
	return post
}

func applyFilter(posts []models.FeedPost, filter string) []models.FeedPost {
	if filter == "" || filter == "all" {
		return posts
	}

	keep := func(p models.FeedPost) bool {
		switch filter {
		case "videos":
			return p.Type == models.PostVideo
		case "announcements", "news":
			return p.Type == models.PostArticle
		case "analysis":
			for _, tag := range p.Tags {
				if tag == "#analysis" {
					return true
				}
			}
			return false
		default:
			return string(p.Type) == filter
		}
	}

	filtered := posts[:0]
	for _, p := range posts {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func baseTags(title string, source models.ScrapeSource) []string {
	if title == "" {
		return []string{"#trending", "#" + string(source)}
	}
	return []string{"#" + strings.ReplaceAll(title, " ", ""), "#" + string(source)}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// formatRelative renders an RFC3339 timestamp as the coarse relative form the
// feed UI shows. Unknown or unparsable timestamps read as "Just now".
func formatRelative(ts string, now time.Time) string {
	if ts == "" {
		return "Just now"
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "Just now"
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
