package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"sutra/models"
)

const (
	redditResultCap   = 10
	redditTrendingCap = 15
)

// trendingSubreddits seed the feed when no media context is given.
var trendingSubreddits = []string{
	"MarvelStudiosSpoilers",
	"DCEUleaks",
	"GamingLeaksAndRumours",
	"popculturechat",
	"entertainment",
}

// RedditAdapter queries Reddit's public search JSON endpoint. It tries the
// endpoint directly first and falls back to the proxy chain, since the JSON
// API is usually CORS friendly but intermittently blocks unauthenticated
// clients.
type RedditAdapter struct {
	httpc     *http.Client
	proxy     ProxyFetcher
	limiter   *rate.Limiter
	userAgent string
}

func NewRedditAdapter(proxy ProxyFetcher, userAgent string, httpc *http.Client) *RedditAdapter {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &RedditAdapter{
		httpc: httpc,
		proxy: proxy,
		// Public JSON limit: 1 req / 2 seconds
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
	}
}

func (a *RedditAdapter) Name() string { return "reddit" }

// Fetch searches Reddit for the query and returns up to 10 normalized posts.
func (a *RedditAdapter) Fetch(ctx context.Context, query string) ([]models.ScrapedResult, error) {
	searchURL := fmt.Sprintf("https://www.reddit.com/search.json?q=%s&sort=relevance&t=month&limit=%d",
		url.QueryEscape(query), redditResultCap)
	return a.fetchURL(ctx, searchURL, redditResultCap)
}

// Trending fetches hot posts from the fixed leak/pop-culture subreddits used
// to seed the feed when no title is selected. Caps at 15 for variety.
func (a *RedditAdapter) Trending(ctx context.Context) ([]models.ScrapedResult, error) {
	query := fmt.Sprintf("subreddit:%s sort:hot", strings.Join(trendingSubreddits, "+"))
	searchURL := fmt.Sprintf("https://www.reddit.com/search.json?q=%s&sort=relevance&t=month&limit=%d",
		url.QueryEscape(query), redditTrendingCap)
	return a.fetchURL(ctx, searchURL, redditTrendingCap)
}

func (a *RedditAdapter) fetchURL(ctx context.Context, searchURL string, limit int) ([]models.ScrapedResult, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := a.fetchDirect(ctx, searchURL)
	if err != nil {
		log.Printf("[reddit] direct fetch failed err=%v; retrying via proxy", err)
		if a.proxy == nil {
			return nil, err
		}
		body, err = a.proxy.Fetch(ctx, searchURL)
		if err != nil {
			return nil, fmt.Errorf("reddit fetch: %w", err)
		}
	}

	return parseRedditListing(body, limit)
}

func (a *RedditAdapter) fetchDirect(ctx context.Context, searchURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit status %d", resp.StatusCode)
	}

	var buf strings.Builder
	if _, err := copyLimited(&buf, resp.Body); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Permalink   string  `json:"permalink"`
				Author      string  `json:"author"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Preview     struct {
					Images []struct {
						Source struct {
							URL string `json:"url"`
						} `json:"source"`
					} `json:"images"`
				} `json:"preview"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func parseRedditListing(body []byte, limit int) ([]models.ScrapedResult, error) {
	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("parse reddit listing: %w", err)
	}

	results := make([]models.ScrapedResult, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		if d.ID == "" {
			continue
		}

		res := models.ScrapedResult{
			Source:   models.SourceReddit,
			ID:       "reddit-" + d.ID,
			Title:    d.Title,
			URL:      "https://www.reddit.com" + d.Permalink,
			Author:   "u/" + d.Author,
			Score:    d.Score,
			Comments: d.NumComments,
		}
		if d.CreatedUTC > 0 {
			res.Timestamp = time.Unix(int64(d.CreatedUTC), 0).UTC().Format(time.RFC3339)
		}
		if len(d.Preview.Images) > 0 {
			// Reddit HTML-escapes ampersands inside preview URLs
			res.Image = strings.ReplaceAll(d.Preview.Images[0].Source.URL, "&amp;", "&")
		}

		results = append(results, res)
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}
