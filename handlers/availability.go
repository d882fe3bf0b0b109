package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"sutra/models"
	availabilitypkg "sutra/services/availability"
)

type availabilityService interface {
	GetAvailability(ctx context.Context, imdbID, title, year, country string) (models.AvailabilityData, error)
}

var _ availabilityService = (*availabilitypkg.Service)(nil)

type AvailabilityHandler struct {
	Service availabilityService
}

func NewAvailabilityHandler(s availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: s}
}

// Get handles GET /api/media/{imdbID}/availability?title&year&country.
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	imdbID := mux.Vars(r)["imdbID"]
	params := r.URL.Query()

	title := strings.TrimSpace(params.Get("title"))
	if title == "" {
		http.Error(w, "missing title parameter", http.StatusBadRequest)
		return
	}

	data, err := h.Service.GetAvailability(r.Context(), imdbID, title, params.Get("year"), params.Get("country"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
