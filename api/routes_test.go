package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sutra/handlers"
	"sutra/models"
	"sutra/services/availability"
	"sutra/services/feed"
	"sutra/services/lists"
	"sutra/services/metadata"
	"sutra/services/watchlist"
)

type noopScraper struct{}

func (noopScraper) Platforms(_ context.Context, _, _ string) ([]models.StreamingPlatform, error) {
	return nil, nil
}

type noopFanart struct{}

func (noopFanart) Fetch(_ context.Context, _ string) ([]models.ScrapedResult, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	listsSvc, err := lists.New(dir, metadata.BuiltinTitles())
	if err != nil {
		t.Fatalf("lists service: %v", err)
	}
	watchlistSvc, err := watchlist.New(dir)
	if err != nil {
		t.Fatalf("watchlist service: %v", err)
	}

	metadataSvc := metadata.New(metadata.NewClient("http://unreachable.invalid", "k",
		&http.Client{Timeout: 50 * time.Millisecond}), nil)
	feedSvc := feed.New(nil, trendingStub{}, feed.DefaultOptions())
	availabilitySvc := availability.New(noopScraper{}, time.Hour)

	return NewRouter(Handlers{
		Metadata:     handlers.NewMetadataHandler(metadataSvc),
		Feed:         handlers.NewFeedHandler(feedSvc, metadataSvc, noopFanart{}),
		Availability: handlers.NewAvailabilityHandler(availabilitySvc),
		Lists:        handlers.NewListsHandler(listsSvc),
		Watchlist:    handlers.NewWatchlistHandler(watchlistSvc),
	})
}

type trendingStub struct{}

func (trendingStub) Trending(_ context.Context) ([]models.ScrapedResult, error) {
	return nil, nil
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight should answer 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS origin header")
	}
}

func TestRouteDispatch(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/lists/public", http.StatusOK},
		{http.MethodGet, "/api/lists/editorial", http.StatusOK},
		{http.MethodGet, "/api/users/default/watchlist", http.StatusOK},
		{http.MethodGet, "/api/trending", http.StatusOK},
		{http.MethodGet, "/api/search", http.StatusBadRequest},         // missing q
		{http.MethodGet, "/api/media/tt1/season/abc", http.StatusNotFound}, // season must be numeric
		{http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s %s = %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
	}
}

// The degraded header must survive the router and CORS layer so browsers can
// read it.
func TestDegradedHeaderExposedThroughRouter(t *testing.T) {
	router := newTestRouter(t)

	// The unreachable metadata upstream forces the builtin fallback.
	req := httptest.NewRequest(http.MethodGet, "/api/media/tt0468569", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected builtin fallback 200, got %d", rec.Code)
	}
	if rec.Header().Get(handlers.DegradedHeader) == "" {
		t.Fatal("expected degraded header on fallback response")
	}
}
