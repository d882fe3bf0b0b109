package scraper

import (
	"context"

	"sutra/models"
)

// ProxyFetcher retrieves a URL through the CORS proxy chain. Satisfied by
// services/proxy.Fetcher.
type ProxyFetcher interface {
	Fetch(ctx context.Context, targetURL string) ([]byte, error)
}

// Adapter translates one external source's raw format into ScrapedResults.
// Adapters return errors for visibility, but the aggregator treats any
// failure as an empty contribution: one bad source never aborts the feed.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string) ([]models.ScrapedResult, error)
}
