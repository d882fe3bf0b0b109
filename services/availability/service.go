package availability

import (
	"context"
	"log"
	"sync"
	"time"

	"sutra/models"
	"sutra/services/scraper"
)

// PlatformScraper is the JustWatch-backed provider lookup. Satisfied by
// services/scraper.JustWatchAdapter.
type PlatformScraper interface {
	Platforms(ctx context.Context, title, country string) ([]models.StreamingPlatform, error)
}

type inflight struct {
	done chan struct{}
	data models.AvailabilityData
	err  error
}

// Service answers "where can I watch this" queries with a read-through TTL
// cache over the JustWatch scraper. Concurrent requests for the same title
// share one scrape.
type Service struct {
	cache    *Cache
	scraper  PlatformScraper
	mu       sync.Mutex
	inflight map[string]*inflight
}

func New(scr PlatformScraper, ttl time.Duration) *Service {
	return &Service{
		cache:    NewCache(ttl),
		scraper:  scr,
		inflight: make(map[string]*inflight),
	}
}

// GetAvailability resolves streaming platforms for a title. Fresh cache hits
// are served directly; stale entries trigger a re-scrape but are kept as a
// fallback when the scrape fails. A scrape that finds no recognizable
// providers yields the synthetic placeholder lineup, which is never cached.
func (s *Service) GetAvailability(ctx context.Context, imdbID, title, year, country string) (models.AvailabilityData, error) {
	if country == "" {
		country = "US"
	}

	cached, freshness := s.cache.Lookup(title, year, country)
	if freshness == Fresh {
		cached.IMDBID = imdbID
		return cached, nil
	}

	key := cacheKey(title, year, country)
	s.mu.Lock()
	if req, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-req.done:
			return req.data, req.err
		case <-ctx.Done():
			return models.AvailabilityData{}, ctx.Err()
		}
	}
	req := &inflight{done: make(chan struct{})}
	s.inflight[key] = req
	s.mu.Unlock()

	req.data, req.err = s.scrape(ctx, imdbID, title, year, country, cached, freshness)
	close(req.done)

	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()

	return req.data, req.err
}

func (s *Service) scrape(ctx context.Context, imdbID, title, year, country string, stale models.AvailabilityData, freshness Freshness) (models.AvailabilityData, error) {
	platforms, err := s.scraper.Platforms(ctx, title, country)
	if err != nil {
		if freshness == Stale {
			log.Printf("[availability] scrape failed title=%q err=%v; serving stale entry", title, err)
			stale.IMDBID = imdbID
			return stale, nil
		}
		log.Printf("[availability] scrape failed title=%q err=%v", title, err)
		return models.AvailabilityData{IMDBID: imdbID, Platforms: []models.StreamingPlatform{}}, nil
	}

	if len(platforms) == 0 {
		return models.AvailabilityData{
			IMDBID:    imdbID,
			Platforms: scraper.SyntheticPlatforms(),
			Synthetic: true,
		}, nil
	}

	data := models.AvailabilityData{IMDBID: imdbID, Platforms: platforms}
	s.cache.Store(title, year, country, data)
	return data, nil
}
