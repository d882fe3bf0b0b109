package metadata

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"sutra/models"
)

// ErrNotFound is returned when neither the upstream nor the builtin dataset
// knows the requested title.
var ErrNotFound = errors.New("title not found")

// TrailerScraper finds trailer videos for titles missing from the static
// trailer map. Satisfied by services/scraper.YouTubeAdapter.
type TrailerScraper interface {
	Fetch(ctx context.Context, query string) ([]models.ScrapedResult, error)
}

// Service answers metadata queries against the OMDb API and falls back to the
// builtin dataset when the upstream is unusable. Fallback responses carry a
// DegradedReason so handlers can tell clients the data is canned rather than
// silently swapping sources.
type Service struct {
	client   *Client
	trailers TrailerScraper
}

func New(client *Client, trailers TrailerScraper) *Service {
	return &Service{client: client, trailers: trailers}
}

// SearchMedia searches for titles. On upstream failure the builtin dataset
// answers instead and the returned reason is non-empty.
func (s *Service) SearchMedia(ctx context.Context, query, mediaType string, page int) (*models.SearchResult, models.DegradedReason, error) {
	result, err := s.client.Search(ctx, query, mediaType, page)
	if err == nil {
		return result, models.DegradedNone, nil
	}

	reason := classifyFailure("search", err)
	return builtinSearch(query, mediaType), reason, nil
}

// GetDetails fetches a full record by IMDb ID, with builtin fallback.
func (s *Service) GetDetails(ctx context.Context, imdbID string) (*models.Media, models.DegradedReason, error) {
	media, err := s.client.Details(ctx, imdbID)
	if err == nil {
		return media, models.DegradedNone, nil
	}

	reason := classifyFailure("details", err)
	if fallback := builtinDetails(imdbID); fallback != nil {
		return fallback, reason, nil
	}
	return nil, reason, ErrNotFound
}

// GetByTitle fetches a full record by exact title. Unlike the ID lookups, a
// no-match here is a plain not-found: there is no builtin fallback because
// the caller is probing whether the title exists upstream.
func (s *Service) GetByTitle(ctx context.Context, title, year string) (*models.Media, error) {
	media, err := s.client.ByTitle(ctx, title, year)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return media, nil
}

// GetSeasonEpisodes lists one season of a series. Upstream "no match" means
// the season genuinely does not exist, so only transport-level failures fall
// back to the fabricated builtin listing.
func (s *Service) GetSeasonEpisodes(ctx context.Context, imdbID string, season int) (*models.Season, models.DegradedReason, error) {
	result, err := s.client.Season(ctx, imdbID, season)
	if err == nil {
		return result, models.DegradedNone, nil
	}
	if errors.Is(err, ErrNoMatch) {
		return nil, models.DegradedNone, ErrNotFound
	}

	reason := classifyFailure("season", err)
	return builtinSeason(imdbID, season), reason, nil
}

// TrailerID resolves a YouTube video id for a title: the static map first,
// then a live scrape. An empty id with nil error means nothing was found.
func (s *Service) TrailerID(ctx context.Context, title string) (string, error) {
	if id, ok := trailerIDs[title]; ok {
		return id, nil
	}
	if s.trailers == nil {
		return "", nil
	}

	results, err := s.trailers.Fetch(ctx, title)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	// Adapter ids are "yt-<videoId>".
	return strings.TrimPrefix(results[0].ID, "yt-"), nil
}

func classifyFailure(op string, err error) models.DegradedReason {
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
		log.Printf("[metadata] api limit reached op=%s; serving builtin dataset", op)
		return models.DegradedAuthExhausted
	}
	if errors.Is(err, ErrNoMatch) {
		log.Printf("[metadata] upstream found nothing op=%s; serving builtin dataset", op)
		return models.DegradedUpstreamFalse
	}
	log.Printf("[metadata] upstream unreachable op=%s err=%v; serving builtin dataset", op, err)
	return models.DegradedNetworkError
}
