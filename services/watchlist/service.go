package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"sutra/models"
)

// ErrItemNotFound is returned for operations on a title the user is not
// tracking.
var ErrItemNotFound = errors.New("watchlist item not found")

const storeFile = "watchlist.json"

// Service tracks per-user watch state in a JSON file. The store maps user id
// to item key ("mediaType:imdbID") to item.
type Service struct {
	mu    sync.RWMutex
	path  string
	users map[string]map[string]models.WatchlistItem
}

func New(dir string) (*Service, error) {
	s := &Service{
		path:  filepath.Join(dir, storeFile),
		users: make(map[string]map[string]models.WatchlistItem),
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run, empty store
	case err != nil:
		return nil, fmt.Errorf("read watchlist store: %w", err)
	default:
		if err := json.Unmarshal(data, &s.users); err != nil {
			return nil, fmt.Errorf("parse watchlist store: %w", err)
		}
	}

	return s, nil
}

func (s *Service) save() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func userOrDefault(userID string) string {
	if userID == "" {
		return models.DefaultUserID
	}
	return userID
}

// List returns the user's tracked titles, most recently added first.
func (s *Service) List(userID string) []models.WatchlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.WatchlistItem, 0, len(s.users[userOrDefault(userID)]))
	for _, item := range s.users[userOrDefault(userID)] {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	return items
}

// Get returns one tracked title.
func (s *Service) Get(userID, mediaType, imdbID string) (models.WatchlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := mediaType + ":" + imdbID
	if item, ok := s.users[userOrDefault(userID)][key]; ok {
		return item, nil
	}
	return models.WatchlistItem{}, ErrItemNotFound
}

// Add starts tracking a title. Re-adding an existing title updates its
// mutable fields but keeps the original added time and episode history.
func (s *Service) Add(userID string, up models.WatchlistUpsert) (models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := userOrDefault(userID)
	if s.users[user] == nil {
		s.users[user] = make(map[string]models.WatchlistItem)
	}

	status := up.Status
	if status == "" {
		status = models.StatusWatching
	}

	key := up.MediaType + ":" + up.IMDBID
	item, exists := s.users[user][key]
	if !exists {
		item = models.WatchlistItem{
			IMDBID:    up.IMDBID,
			MediaType: up.MediaType,
			AddedAt:   time.Now().UTC(),
		}
	}
	item.Title = up.Title
	item.Poster = up.Poster
	item.Status = status
	if up.Rating != 0 {
		item.Rating = up.Rating
	}

	s.users[user][key] = item
	if err := s.save(); err != nil {
		return models.WatchlistItem{}, err
	}
	return item, nil
}

// UpdateStatus moves a title between progress states. Completing a title
// stamps its watched time.
func (s *Service) UpdateStatus(userID, mediaType, imdbID string, status models.WatchStatus) (models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := userOrDefault(userID)
	key := mediaType + ":" + imdbID
	item, ok := s.users[user][key]
	if !ok {
		return models.WatchlistItem{}, ErrItemNotFound
	}

	item.Status = status
	if status == models.StatusCompleted && item.WatchedAt == nil {
		now := time.Now().UTC()
		item.WatchedAt = &now
	}

	s.users[user][key] = item
	if err := s.save(); err != nil {
		return models.WatchlistItem{}, err
	}
	return item, nil
}

// SetRating records the user's 1-10 score for a tracked title.
func (s *Service) SetRating(userID, mediaType, imdbID string, rating int) (models.WatchlistItem, error) {
	if rating < 1 || rating > 10 {
		return models.WatchlistItem{}, fmt.Errorf("rating %d out of range 1-10", rating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := userOrDefault(userID)
	key := mediaType + ":" + imdbID
	item, ok := s.users[user][key]
	if !ok {
		return models.WatchlistItem{}, ErrItemNotFound
	}

	item.Rating = rating
	s.users[user][key] = item
	if err := s.save(); err != nil {
		return models.WatchlistItem{}, err
	}
	return item, nil
}

// MarkEpisode records a single episode as watched. Marking is idempotent:
// re-marking keeps the first watched time.
func (s *Service) MarkEpisode(userID, mediaType, imdbID string, season, episode int) (models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := userOrDefault(userID)
	key := mediaType + ":" + imdbID
	item, ok := s.users[user][key]
	if !ok {
		return models.WatchlistItem{}, ErrItemNotFound
	}

	if item.EpisodesWatched == nil {
		item.EpisodesWatched = make(map[string]time.Time)
	}
	epKey := models.EpisodeKey(season, episode)
	if _, done := item.EpisodesWatched[epKey]; !done {
		item.EpisodesWatched[epKey] = time.Now().UTC()
	}

	s.users[user][key] = item
	if err := s.save(); err != nil {
		return models.WatchlistItem{}, err
	}
	return item, nil
}

// Remove stops tracking a title.
func (s *Service) Remove(userID, mediaType, imdbID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := userOrDefault(userID)
	key := mediaType + ":" + imdbID
	if _, ok := s.users[user][key]; !ok {
		return ErrItemNotFound
	}
	delete(s.users[user], key)
	return s.save()
}
