package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"sutra/models"
)

const newsResultCap = 8

// NewsAdapter searches Google News RSS. The endpoint is not CORS friendly,
// so every fetch goes through the proxy chain; there is no direct attempt.
type NewsAdapter struct {
	proxy   ProxyFetcher
	parser  *gofeed.Parser
	limiter *rate.Limiter
}

func NewNewsAdapter(proxy ProxyFetcher) *NewsAdapter {
	return &NewsAdapter{
		proxy:   proxy,
		parser:  gofeed.NewParser(),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (a *NewsAdapter) Name() string { return "news" }

// Fetch returns up to 8 news items for the query.
func (a *NewsAdapter) Fetch(ctx context.Context, query string) ([]models.ScrapedResult, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(query))

	body, err := a.proxy.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}

	feed, err := a.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse news rss: %w", err)
	}

	results := make([]models.ScrapedResult, 0, newsResultCap)
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		title, publisher := splitNewsTitle(item.Title)
		if title == "" {
			title = "News"
		}

		res := models.ScrapedResult{
			Source: models.SourceNews,
			ID:     "news-" + shortHash(item.Link, title),
			Title:  title,
			URL:    item.Link,
			Author: publisher,
		}
		if item.PublishedParsed != nil {
			res.Timestamp = item.PublishedParsed.UTC().Format(time.RFC3339)
		} else if item.Published != "" {
			res.Timestamp = item.Published
		}

		results = append(results, res)
		if len(results) >= newsResultCap {
			break
		}
	}

	return results, nil
}

// splitNewsTitle peels the publisher suffix Google News appends to item
// titles ("Headline - Publisher"). Falls back to "Google News" when absent.
func splitNewsTitle(raw string) (title, publisher string) {
	title = strings.TrimSpace(raw)
	publisher = "Google News"
	if idx := strings.LastIndex(title, " - "); idx > 0 && idx < len(title)-3 {
		publisher = strings.TrimSpace(title[idx+3:])
		title = strings.TrimSpace(title[:idx])
	}
	return title, publisher
}
