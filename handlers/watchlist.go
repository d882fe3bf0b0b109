package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sutra/models"
	watchlistpkg "sutra/services/watchlist"
)

type watchlistService interface {
	List(userID string) []models.WatchlistItem
	Add(userID string, up models.WatchlistUpsert) (models.WatchlistItem, error)
	UpdateStatus(userID, mediaType, imdbID string, status models.WatchStatus) (models.WatchlistItem, error)
	SetRating(userID, mediaType, imdbID string, rating int) (models.WatchlistItem, error)
	MarkEpisode(userID, mediaType, imdbID string, season, episode int) (models.WatchlistItem, error)
	Remove(userID, mediaType, imdbID string) error
}

var _ watchlistService = (*watchlistpkg.Service)(nil)

type WatchlistHandler struct {
	Service watchlistService
}

func NewWatchlistHandler(s watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: s}
}

func watchlistError(w http.ResponseWriter, err error) {
	if errors.Is(err, watchlistpkg.ErrItemNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// mediaTypeParam reads the media type query param, defaulting to movie.
func mediaTypeParam(r *http.Request) string {
	if t := r.URL.Query().Get("mediaType"); t != "" {
		return t
	}
	return "movie"
}

// List handles GET /api/users/{userID}/watchlist.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.List(mux.Vars(r)["userID"]))
}

// Add handles POST /api/users/{userID}/watchlist.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var up models.WatchlistUpsert
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if up.IMDBID == "" || up.MediaType == "" {
		http.Error(w, "imdbId and mediaType are required", http.StatusBadRequest)
		return
	}

	item, err := h.Service.Add(mux.Vars(r)["userID"], up)
	if err != nil {
		watchlistError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// updatePayload is the PATCH body: either a status change, a rating, or both.
type updatePayload struct {
	Status models.WatchStatus `json:"status,omitempty"`
	Rating int                `json:"rating,omitempty"`
}

// Update handles PATCH /api/users/{userID}/watchlist/{imdbID}?mediaType.
func (h *WatchlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, imdbID := vars["userID"], vars["imdbID"]
	mediaType := mediaTypeParam(r)

	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Status == "" && payload.Rating == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	var item models.WatchlistItem
	var err error
	if payload.Status != "" {
		item, err = h.Service.UpdateStatus(userID, mediaType, imdbID, payload.Status)
		if err != nil {
			watchlistError(w, err)
			return
		}
	}
	if payload.Rating != 0 {
		item, err = h.Service.SetRating(userID, mediaType, imdbID, payload.Rating)
		if err != nil {
			watchlistError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, item)
}

// MarkEpisode handles PUT /api/users/{userID}/watchlist/{imdbID}/episodes/{season}/{episode}.
func (h *WatchlistHandler) MarkEpisode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	season, err1 := strconv.Atoi(vars["season"])
	episode, err2 := strconv.Atoi(vars["episode"])
	if err1 != nil || err2 != nil || season < 1 || episode < 1 {
		http.Error(w, "invalid season or episode", http.StatusBadRequest)
		return
	}

	item, err := h.Service.MarkEpisode(vars["userID"], "series", vars["imdbID"], season, episode)
	if err != nil {
		watchlistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Remove handles DELETE /api/users/{userID}/watchlist/{imdbID}?mediaType.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Service.Remove(vars["userID"], mediaTypeParam(r), vars["imdbID"]); err != nil {
		watchlistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
