package availability

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sutra/models"
)

type fakeScraper struct {
	platforms []models.StreamingPlatform
	err       error
	calls     atomic.Int32
	delay     time.Duration
}

func (f *fakeScraper) Platforms(ctx context.Context, title, country string) ([]models.StreamingPlatform, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.platforms, f.err
}

var netflixOnly = []models.StreamingPlatform{
	{Name: "Netflix", Icon: "N", Color: "#E50914", Type: models.PlatformStream},
}

func TestGetAvailabilityCachesSecondCall(t *testing.T) {
	scr := &fakeScraper{platforms: netflixOnly}
	svc := New(scr, time.Hour)

	first, err := svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.Cached {
		t.Error("first call must not be marked cached")
	}

	second, err := svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !second.Cached || second.CachedAt == nil {
		t.Error("second call should be a cache hit with a store time")
	}
	if scr.calls.Load() != 1 {
		t.Fatalf("expected one scrape, got %d", scr.calls.Load())
	}
	if len(second.Platforms) != 1 || second.Platforms[0].Name != "Netflix" {
		t.Fatalf("cached platforms differ: %+v", second.Platforms)
	}
}

func TestCacheKeyIsCaseInsensitiveOnTitleAndCountry(t *testing.T) {
	scr := &fakeScraper{platforms: netflixOnly}
	svc := New(scr, time.Hour)

	svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US")
	svc.GetAvailability(context.Background(), "tt1160419", "dune", "2021", "us")

	if scr.calls.Load() != 1 {
		t.Fatalf("case variants should share a cache entry, got %d scrapes", scr.calls.Load())
	}
}

func TestExpiredEntryTriggersRescrape(t *testing.T) {
	scr := &fakeScraper{platforms: netflixOnly}
	svc := New(scr, time.Hour)

	clock := time.Now()
	svc.cache.now = func() time.Time { return clock }

	svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US")
	clock = clock.Add(2 * time.Hour)

	res, err := svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US")
	if err != nil {
		t.Fatalf("rescrape failed: %v", err)
	}
	if res.Cached {
		t.Error("rescrape result should be live, not cached")
	}
	if scr.calls.Load() != 2 {
		t.Fatalf("expected a second scrape after expiry, got %d", scr.calls.Load())
	}
}

func TestStaleEntryServedWhenScrapeFails(t *testing.T) {
	scr := &fakeScraper{platforms: netflixOnly}
	svc := New(scr, time.Hour)

	clock := time.Now()
	svc.cache.now = func() time.Time { return clock }

	svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US")

	clock = clock.Add(2 * time.Hour)
	scr.err = errors.New("all proxies exhausted")

	res, err := svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US")
	if err != nil {
		t.Fatalf("expected stale fallback, got error %v", err)
	}
	if !res.Cached {
		t.Error("stale fallback should be marked cached")
	}
	if len(res.Platforms) != 1 || res.Platforms[0].Name != "Netflix" {
		t.Fatalf("stale platforms lost: %+v", res.Platforms)
	}
}

func TestZeroProvidersYieldSyntheticLineup(t *testing.T) {
	scr := &fakeScraper{platforms: nil}
	svc := New(scr, time.Hour)

	res, err := svc.GetAvailability(context.Background(), "tt0000001", "Obscure Film", "1933", "US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Synthetic {
		t.Fatal("expected synthetic flag on placeholder lineup")
	}
	if len(res.Platforms) != 3 {
		t.Fatalf("expected 3 placeholder platforms, got %d", len(res.Platforms))
	}

	// Synthetic results must not poison the cache.
	svc.GetAvailability(context.Background(), "tt0000001", "Obscure Film", "1933", "US")
	if scr.calls.Load() != 2 {
		t.Fatalf("synthetic result was cached; got %d scrapes", scr.calls.Load())
	}
}

func TestConcurrentRequestsShareOneScrape(t *testing.T) {
	scr := &fakeScraper{platforms: netflixOnly, delay: 50 * time.Millisecond}
	svc := New(scr, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetAvailability(context.Background(), "tt1160419", "Dune", "2021", "US"); err != nil {
				t.Errorf("concurrent call failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if scr.calls.Load() != 1 {
		t.Fatalf("expected deduplicated scrape, got %d", scr.calls.Load())
	}
}
