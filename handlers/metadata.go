package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"sutra/models"
	metadatapkg "sutra/services/metadata"
)

// DegradedHeader tells clients a metadata response was served from the
// builtin fallback dataset and why.
const DegradedHeader = "X-Sutra-Degraded"

type metadataService interface {
	SearchMedia(ctx context.Context, query, mediaType string, page int) (*models.SearchResult, models.DegradedReason, error)
	GetDetails(ctx context.Context, imdbID string) (*models.Media, models.DegradedReason, error)
	GetByTitle(ctx context.Context, title, year string) (*models.Media, error)
	GetSeasonEpisodes(ctx context.Context, imdbID string, season int) (*models.Season, models.DegradedReason, error)
	TrailerID(ctx context.Context, title string) (string, error)
}

var _ metadataService = (*metadatapkg.Service)(nil)

type MetadataHandler struct {
	Service metadataService
}

func NewMetadataHandler(s metadataService) *MetadataHandler {
	return &MetadataHandler{Service: s}
}

func setDegraded(w http.ResponseWriter, reason models.DegradedReason) {
	if reason != models.DegradedNone {
		w.Header().Set(DegradedHeader, string(reason))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Search handles GET /api/search?q&type&page.
func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	mediaType := strings.ToLower(r.URL.Query().Get("type"))
	if mediaType != "" && mediaType != "movie" && mediaType != "series" {
		http.Error(w, "type must be movie or series", http.StatusBadRequest)
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result, reason, err := h.Service.SearchMedia(r.Context(), query, mediaType, page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	setDegraded(w, reason)
	writeJSON(w, http.StatusOK, result)
}

// Details handles GET /api/media/{imdbID}.
func (h *MetadataHandler) Details(w http.ResponseWriter, r *http.Request) {
	imdbID := mux.Vars(r)["imdbID"]

	media, reason, err := h.Service.GetDetails(r.Context(), imdbID)
	if err != nil {
		setDegraded(w, reason)
		if errors.Is(err, metadatapkg.ErrNotFound) {
			http.Error(w, "title not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	setDegraded(w, reason)
	writeJSON(w, http.StatusOK, media)
}

// Season handles GET /api/media/{imdbID}/season/{n}.
func (h *MetadataHandler) Season(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	imdbID := vars["imdbID"]
	season, err := strconv.Atoi(vars["n"])
	if err != nil || season < 1 {
		http.Error(w, "invalid season number", http.StatusBadRequest)
		return
	}

	result, reason, err := h.Service.GetSeasonEpisodes(r.Context(), imdbID, season)
	if err != nil {
		if errors.Is(err, metadatapkg.ErrNotFound) {
			http.Error(w, "season not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	setDegraded(w, reason)
	writeJSON(w, http.StatusOK, result)
}

// ByTitle handles GET /api/media/by-title?title&year.
func (h *MetadataHandler) ByTitle(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		http.Error(w, "missing title parameter", http.StatusBadRequest)
		return
	}

	media, err := h.Service.GetByTitle(r.Context(), title, r.URL.Query().Get("year"))
	if err != nil {
		if errors.Is(err, metadatapkg.ErrNotFound) {
			http.Error(w, "title not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, media)
}

// Trailer handles GET /api/trailer?title.
func (h *MetadataHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		http.Error(w, "missing title parameter", http.StatusBadRequest)
		return
	}

	id, err := h.Service.TrailerID(r.Context(), title)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if id == "" {
		http.Error(w, "no trailer found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"videoId": id})
}
