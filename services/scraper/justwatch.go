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

const platformCap = 8

type providerSpec struct {
	match string
	color string
	icon  string
	ptype models.PlatformType
}

// providerTable maps JustWatch icon alt text to branding. Order matters:
// "Amazon" must come before generic checks so "Amazon Prime Video" does not
// fall through, and the transactional stores at the tail default to rent.
var providerTable = []providerSpec{
	{"Netflix", "#E50914", "N", models.PlatformStream},
	{"Amazon", "#00A8E1", "P", models.PlatformStream},
	{"Prime", "#00A8E1", "P", models.PlatformStream},
	{"Disney", "#113CCF", "D", models.PlatformStream},
	{"Hulu", "#1CE783", "H", models.PlatformStream},
	{"Max", "#9900FF", "M", models.PlatformStream},
	{"HBO", "#9900FF", "M", models.PlatformStream},
	{"Apple", "#000000", "A", models.PlatformStream},
	{"Peacock", "#000000", "Pk", models.PlatformStream},
	{"Paramount", "#0066FF", "Pt", models.PlatformStream},
	{"Hotstar", "#020E28", "Hs", models.PlatformStream},
	{"Jio", "#D6195E", "J", models.PlatformStream},
	{"Zee5", "#FF0000", "Z", models.PlatformStream},
	{"Sony", "#2E0062", "S", models.PlatformStream},
	{"Google Play", "#000000", "G", models.PlatformRent},
	{"YouTube", "#FF0000", "Y", models.PlatformRent},
	{"iTunes", "#000000", "i", models.PlatformRent},
}

// JustWatchAdapter scrapes JustWatch search pages for streaming providers.
// JustWatch has no public API, so provider logos on the first search result
// are matched against a known branding table.
type JustWatchAdapter struct {
	proxy ProxyFetcher
}

func NewJustWatchAdapter(proxy ProxyFetcher) *JustWatchAdapter {
	return &JustWatchAdapter{proxy: proxy}
}

// SyntheticPlatforms is the placeholder lineup returned when scraping finds
// no providers, so the UI always has something to render. Callers mark the
// result synthetic so clients can tell it apart from real data.
func SyntheticPlatforms() []models.StreamingPlatform {
	return []models.StreamingPlatform{
		{Name: "Netflix", URL: "", Icon: "N", Color: "#E50914", Type: models.PlatformStream},
		{Name: "Prime Video", URL: "", Icon: "P", Color: "#00A8E1", Type: models.PlatformStream},
		{Name: "Apple TV", URL: "", Icon: "A", Color: "#000000", Type: models.PlatformRent},
	}
}

// Platforms scrapes up to 8 streaming providers for the title in the given
// country (lowercased two-letter code). An empty slice with a nil error means
// the page parsed but listed no recognizable providers.
func (a *JustWatchAdapter) Platforms(ctx context.Context, title, country string) ([]models.StreamingPlatform, error) {
	cc := strings.ToLower(country)
	if cc == "" {
		cc = "us"
	}
	searchURL := fmt.Sprintf("https://www.justwatch.com/%s/search?q=%s", cc, url.QueryEscape(title))

	body, err := a.proxy.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("justwatch fetch: %w", err)
	}

	return parsePlatforms(body, searchURL)
}

func parsePlatforms(body []byte, searchURL string) ([]models.StreamingPlatform, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse justwatch html: %w", err)
	}

	// No result rows means the title wasn't found; don't scan page chrome.
	if doc.Find(".title-list-row__column").Length() == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	platforms := make([]models.StreamingPlatform, 0, platformCap)
	doc.Find("img[alt]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		alt := sel.AttrOr("alt", "")
		if alt == "" || seen[alt] {
			return true
		}
		seen[alt] = true

		spec, ok := matchProvider(alt)
		if !ok {
			return true
		}

		// Provider logos are lazy loaded; prefer data-src over src.
		icon := sel.AttrOr("data-src", "")
		if icon == "" {
			icon = sel.AttrOr("src", "")
		}
		if icon == "" {
			icon = spec.icon
		}

		platforms = append(platforms, models.StreamingPlatform{
			Name:  strings.ReplaceAll(alt, " - ", ""),
			URL:   searchURL,
			Icon:  icon,
			Color: spec.color,
			Type:  spec.ptype,
		})
		return len(platforms) < platformCap
	})

	return platforms, nil
}

func matchProvider(alt string) (providerSpec, bool) {
	for _, spec := range providerTable {
		if strings.Contains(alt, spec.match) {
			return spec, true
		}
	}
	return providerSpec{}, false
}
