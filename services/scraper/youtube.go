package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"sutra/models"
)

const youtubeResultCap = 6

// videoIDPattern matches the videoId fields embedded in the ytInitialData
// blob on the results page. The page is scraped rather than the Data API so
// no key or quota is needed.
var videoIDPattern = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)

// YouTubeAdapter scrapes the YouTube search results page for trailer videos.
type YouTubeAdapter struct {
	proxy ProxyFetcher
}

func NewYouTubeAdapter(proxy ProxyFetcher) *YouTubeAdapter {
	return &YouTubeAdapter{proxy: proxy}
}

func (a *YouTubeAdapter) Name() string { return "youtube" }

// Fetch scrapes search results for "<query> official trailer" and returns up
// to 6 unique videos in page order.
func (a *YouTubeAdapter) Fetch(ctx context.Context, query string) ([]models.ScrapedResult, error) {
	searchURL := fmt.Sprintf("https://www.youtube.com/results?search_query=%s",
		url.QueryEscape(query+" official trailer"))

	body, err := a.proxy.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("youtube fetch: %w", err)
	}

	return parseVideoIDs(body, query), nil
}

func parseVideoIDs(body []byte, query string) []models.ScrapedResult {
	matches := videoIDPattern.FindAllSubmatch(body, -1)

	seen := make(map[string]bool, youtubeResultCap)
	results := make([]models.ScrapedResult, 0, youtubeResultCap)
	for _, m := range matches {
		id := string(m[1])
		if seen[id] {
			continue
		}
		seen[id] = true

		results = append(results, models.ScrapedResult{
			Source:  models.SourceYouTube,
			ID:      "yt-" + id,
			Title:   fmt.Sprintf("%s - Official Trailer", query),
			URL:     "https://www.youtube.com/watch?v=" + id,
			Image:   fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id),
			Author:  "YouTube",
			VideoID: id,
		})
		if len(results) >= youtubeResultCap {
			break
		}
	}

	return results
}
