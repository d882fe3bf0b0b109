package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"sutra/models"
	feedpkg "sutra/services/feed"
)

type feedService interface {
	Feed(ctx context.Context, q feedpkg.Query) *models.FeedResult
}

var _ feedService = (*feedpkg.Service)(nil)

// titleResolver turns an IMDb id into a title for feed queries.
type titleResolver interface {
	GetDetails(ctx context.Context, imdbID string) (*models.Media, models.DegradedReason, error)
}

// fanartSource serves the standalone fan-art search endpoint.
type fanartSource interface {
	Fetch(ctx context.Context, query string) ([]models.ScrapedResult, error)
}

type FeedHandler struct {
	Service  feedService
	Resolver titleResolver
	Fanart   fanartSource
}

func NewFeedHandler(s feedService, resolver titleResolver, fanart fanartSource) *FeedHandler {
	return &FeedHandler{Service: s, Resolver: resolver, Fanart: fanart}
}

// Feed handles GET /api/feed?q|imdbId&filter&seed.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	title := strings.TrimSpace(params.Get("q"))
	if title == "" {
		if imdbID := strings.TrimSpace(params.Get("imdbId")); imdbID != "" {
			media, _, err := h.Resolver.GetDetails(r.Context(), imdbID)
			if err != nil {
				http.Error(w, "unknown imdbId", http.StatusNotFound)
				return
			}
			title = media.Title
		}
	}

	query := feedpkg.Query{Title: title, Filter: params.Get("filter")}
	if s := params.Get("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "seed must be an integer", http.StatusBadRequest)
			return
		}
		query.Seed = &seed
	}

	writeJSON(w, http.StatusOK, h.Service.Feed(r.Context(), query))
}

// Trending handles GET /api/trending.
func (h *FeedHandler) Trending(w http.ResponseWriter, r *http.Request) {
	result := h.Service.Feed(r.Context(), feedpkg.Query{Filter: r.URL.Query().Get("filter")})
	writeJSON(w, http.StatusOK, result)
}

// FanArt handles GET /api/fanart?q.
func (h *FeedHandler) FanArt(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	results, err := h.Fanart.Fetch(r.Context(), query)
	if err != nil {
		// Same contract as the aggregator: scrape trouble means an empty
		// gallery, not a failed request.
		results = nil
	}

	urls := make([]string, 0, len(results))
	for _, res := range results {
		urls = append(urls, res.Image)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"images": urls})
}
