package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"sutra/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", handlers.DegradedHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Metadata     *handlers.MetadataHandler
	Feed         *handlers.FeedHandler
	Availability *handlers.AvailabilityHandler
	Lists        *handlers.ListsHandler
	Watchlist    *handlers.WatchlistHandler
}

// NewRouter builds the full API route table.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	// Metadata
	api.HandleFunc("/search", h.Metadata.Search).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/media/by-title", h.Metadata.ByTitle).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/media/{imdbID}", h.Metadata.Details).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/media/{imdbID}/season/{n:[0-9]+}", h.Metadata.Season).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trailer", h.Metadata.Trailer).Methods(http.MethodGet, http.MethodOptions)

	// Availability
	api.HandleFunc("/media/{imdbID}/availability", h.Availability.Get).Methods(http.MethodGet, http.MethodOptions)

	// Feed
	api.HandleFunc("/feed", h.Feed.Feed).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trending", h.Feed.Trending).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/fanart", h.Feed.FanArt).Methods(http.MethodGet, http.MethodOptions)

	// Lists
	api.HandleFunc("/lists/public", h.Lists.Public).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/lists/editorial", h.Lists.Editorial).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/lists/saved", h.Lists.Saved).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/lists/{listID}/like", h.Lists.Like).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/lists/{listID}/save", h.Lists.ToggleSave).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/users/{userID}/lists", h.Lists.ForUser).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/users/{userID}/lists", h.Lists.Create).Methods(http.MethodPost)
	api.HandleFunc("/users/{userID}/lists/{listID}", h.Lists.Get).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/users/{userID}/lists/{listID}", h.Lists.Update).Methods(http.MethodPatch)
	api.HandleFunc("/users/{userID}/lists/{listID}", h.Lists.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/users/{userID}/lists/{listID}/items", h.Lists.AddItem).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/users/{userID}/lists/{listID}/items/{imdbID}", h.Lists.RemoveItem).Methods(http.MethodDelete, http.MethodOptions)

	// Watchlist
	api.HandleFunc("/users/{userID}/watchlist", h.Watchlist.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/users/{userID}/watchlist", h.Watchlist.Add).Methods(http.MethodPost)
	api.HandleFunc("/users/{userID}/watchlist/{imdbID}", h.Watchlist.Update).Methods(http.MethodPatch, http.MethodOptions)
	api.HandleFunc("/users/{userID}/watchlist/{imdbID}", h.Watchlist.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/users/{userID}/watchlist/{imdbID}/episodes/{season:[0-9]+}/{episode:[0-9]+}",
		h.Watchlist.MarkEpisode).Methods(http.MethodPut, http.MethodOptions)

	return r
}
