package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"sutra/models"
	listspkg "sutra/services/lists"
)

type listService interface {
	Public() []models.List
	Editorial() []models.List
	ForUser(userID string) []models.List
	Saved() []models.List
	Get(id string) (models.List, error)
	Create(userID string, data models.ListUpsert) (models.List, error)
	Update(id string, data models.ListUpsert) (models.List, error)
	Delete(id string) error
	AddItem(id string, media models.Media) (models.List, error)
	RemoveItem(id, imdbID string) (models.List, error)
	Like(id string) (models.List, error)
	ToggleSave(id string) (bool, error)
}

var _ listService = (*listspkg.Service)(nil)

type ListsHandler struct {
	Service listService
}

func NewListsHandler(s listService) *ListsHandler {
	return &ListsHandler{Service: s}
}

func listError(w http.ResponseWriter, err error) {
	if errors.Is(err, listspkg.ErrListNotFound) {
		http.Error(w, "list not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// Public handles GET /api/lists/public.
func (h *ListsHandler) Public(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Public())
}

// Editorial handles GET /api/lists/editorial.
func (h *ListsHandler) Editorial(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Editorial())
}

// Saved handles GET /api/lists/saved.
func (h *ListsHandler) Saved(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Saved())
}

// ForUser handles GET /api/users/{userID}/lists.
func (h *ListsHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.ForUser(mux.Vars(r)["userID"]))
}

// Create handles POST /api/users/{userID}/lists.
func (h *ListsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data models.ListUpsert
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if data.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	list, err := h.Service.Create(mux.Vars(r)["userID"], data)
	if err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// Get handles GET /api/users/{userID}/lists/{listID}.
func (h *ListsHandler) Get(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Get(mux.Vars(r)["listID"])
	if err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Update handles PATCH /api/users/{userID}/lists/{listID}.
func (h *ListsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var data models.ListUpsert
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	list, err := h.Service.Update(mux.Vars(r)["listID"], data)
	if err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Delete handles DELETE /api/users/{userID}/lists/{listID}.
func (h *ListsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(mux.Vars(r)["listID"]); err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddItem handles POST /api/users/{userID}/lists/{listID}/items.
func (h *ListsHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var media models.Media
	if err := json.NewDecoder(r.Body).Decode(&media); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if media.IMDBID == "" {
		http.Error(w, "imdbId is required", http.StatusBadRequest)
		return
	}

	list, err := h.Service.AddItem(mux.Vars(r)["listID"], media)
	if err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// RemoveItem handles DELETE /api/users/{userID}/lists/{listID}/items/{imdbID}.
func (h *ListsHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := h.Service.RemoveItem(vars["listID"], vars["imdbID"])
	if err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Like handles POST /api/lists/{listID}/like.
func (h *ListsHandler) Like(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Like(mux.Vars(r)["listID"])
	if err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ToggleSave handles POST /api/lists/{listID}/save.
func (h *ListsHandler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	saved, err := h.Service.ToggleSave(mux.Vars(r)["listID"])
	if err != nil {
		listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}
