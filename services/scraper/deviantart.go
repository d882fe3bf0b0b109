package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sutra/models"
)

const deviantartResultCap = 8

// DeviantArtAdapter scrapes DeviantArt search pages for fan art. Artwork on
// the site is served from the wixmp CDN, which is what distinguishes real
// deviations from avatars and UI chrome in the markup.
type DeviantArtAdapter struct {
	proxy ProxyFetcher
}

func NewDeviantArtAdapter(proxy ProxyFetcher) *DeviantArtAdapter {
	return &DeviantArtAdapter{proxy: proxy}
}

func (a *DeviantArtAdapter) Name() string { return "deviantart" }

// Fetch scrapes search results for "<query> fan art" and returns up to 8
// artwork images.
func (a *DeviantArtAdapter) Fetch(ctx context.Context, query string) ([]models.ScrapedResult, error) {
	searchURL := fmt.Sprintf("https://www.deviantart.com/search?q=%s",
		url.QueryEscape(query+" fan art"))

	body, err := a.proxy.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("deviantart fetch: %w", err)
	}

	return parseDeviations(body)
}

func parseDeviations(body []byte) ([]models.ScrapedResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse deviantart html: %w", err)
	}

	seen := make(map[string]bool, deviantartResultCap)
	results := make([]models.ScrapedResult, 0, deviantartResultCap)
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok || !strings.Contains(src, "wixmp.com") {
			return true
		}
		if strings.Contains(src, "avatar") || strings.Contains(src, "emoji") {
			return true
		}
		if seen[src] {
			return true
		}
		seen[src] = true

		title := strings.TrimSpace(sel.AttrOr("alt", ""))
		if title == "" {
			title = "Fan Art"
		}

		results = append(results, models.ScrapedResult{
			Source: models.SourceDeviantArt,
			ID:     "art-" + shortHash(src),
			Title:  title,
			URL:    src,
			Image:  src,
			Author: "DeviantArt",
		})
		return len(results) < deviantartResultCap
	})

	return results, nil
}
