package lists

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sutra/models"
)

// ErrListNotFound is returned for operations on an unknown list id.
var ErrListNotFound = errors.New("list not found")

const (
	// EditorialCreatorID marks lists curated by the app itself.
	EditorialCreatorID = "sutra-official"
	// CurrentUserID is the single-profile owner of personal lists.
	CurrentUserID = "current-user"

	storeFile = "lists.json"
)

type storeState struct {
	Lists        []models.List `json:"lists"`
	SavedListIDs []string      `json:"savedListIds"`
}

// Service manages curated lists backed by a single JSON file. All mutations
// persist immediately; the file is written atomically via a temp file rename.
type Service struct {
	mu    sync.RWMutex
	path  string
	state storeState
}

// New loads the list store from dir, seeding the starter lists on first run.
// seed provides the media records the starter lists draw from.
func New(dir string, seed []models.Media) (*Service, error) {
	s := &Service{path: filepath.Join(dir, storeFile)}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.state = seededState(seed)
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("seed list store: %w", err)
		}
		log.Printf("[lists] seeded starter lists path=%s count=%d", s.path, len(s.state.Lists))
	case err != nil:
		return nil, fmt.Errorf("read list store: %w", err)
	default:
		if err := json.Unmarshal(data, &s.state); err != nil {
			return nil, fmt.Errorf("parse list store: %w", err)
		}
	}

	return s, nil
}

// seededState builds the starter lists shipped with a fresh install.
func seededState(seed []models.Media) storeState {
	now := time.Now().UTC()
	editorial := models.ListCreator{ID: EditorialCreatorID, Name: "Sutra"}
	you := models.ListCreator{ID: CurrentUserID, Name: "You"}

	byGenre := func(genre string, limit int) []models.Media {
		var out []models.Media
		for _, m := range seed {
			if strings.Contains(m.Genre, genre) {
				out = append(out, m)
				if len(out) == limit {
					break
				}
			}
		}
		return out
	}
	slice := func(from, to int) []models.Media {
		if from > len(seed) {
			return nil
		}
		if to > len(seed) {
			to = len(seed)
		}
		return append([]models.Media(nil), seed[from:to]...)
	}
	posterOf := func(title string) string {
		for _, m := range seed {
			if m.Title == title {
				return m.Poster
			}
		}
		return ""
	}
	highRated := func(limit int) []models.Media {
		var out []models.Media
		for _, m := range seed {
			if rating, err := strconv.ParseFloat(m.IMDBRating, 64); err == nil && rating > 8.5 {
				out = append(out, m)
				if len(out) == limit {
					break
				}
			}
		}
		return out
	}

	return storeState{Lists: []models.List{
		{
			ID: "list-1", Title: "Mind-Bending Sci-Fi",
			Description: "Movies that will make you question reality.",
			Creator:     editorial, Items: byGenre("Sci-Fi", 4), IsPublic: true,
			Likes: 1240, Saves: 450, Rating: 4.8,
			Tags:       []string{"Sci-Fi", "Mind-Bending", "Classics"},
			CoverImage: posterOf("Inception"),
			CreatedAt:  now, UpdatedAt: now,
		},
		{
			ID: "list-2", Title: "Best of 2024",
			Description: "My top picks for this year so far.",
			Creator:     editorial, Items: slice(0, 5), IsPublic: true,
			Likes: 850, Saves: 200, Rating: 4.5,
			Tags:      []string{"2024", "Top Picks"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "list-3", Title: "My Watchlist",
			Description: "Things I need to watch.",
			Creator:     you, Items: slice(5, 8), IsPublic: false,
			Tags:      []string{"Personal"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "list-sutra-1", Title: "Sutra Selects: Hidden Gems",
			Description: "Underrated masterpieces you might have missed.",
			Creator:     editorial, Items: highRated(5), IsPublic: true,
			Likes: 5000, Saves: 1200, Rating: 5.0,
			Tags:       []string{"Sutra Selects", "Hidden Gems"},
			CoverImage: posterOf("The Dark Knight"),
			CreatedAt:  now, UpdatedAt: now,
		},
		{
			ID: "list-4", Title: "Cyberpunk Vibes",
			Description: "Neon lights, high tech, low life.",
			Creator:     editorial, Items: byGenre("Action", 4), IsPublic: true,
			Likes: 320, Saves: 89, Rating: 4.2,
			Tags:      []string{"Cyberpunk", "Sci-Fi"},
			CreatedAt: now, UpdatedAt: now,
		},
	}}
}

// save writes the store under the lock held by the caller.
func (s *Service) save() error {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Service) find(id string) *models.List {
	for i := range s.state.Lists {
		if s.state.Lists[i].ID == id {
			return &s.state.Lists[i]
		}
	}
	return nil
}

// Public returns community lists: public, and not editorial or personal.
func (s *Service) Public() []models.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.List
	for _, l := range s.state.Lists {
		if l.IsPublic && l.Creator.ID != CurrentUserID && l.Creator.ID != EditorialCreatorID {
			out = append(out, l)
		}
	}
	return out
}

// Editorial returns the app-curated lists.
func (s *Service) Editorial() []models.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.List
	for _, l := range s.state.Lists {
		if l.Creator.ID == EditorialCreatorID {
			out = append(out, l)
		}
	}
	return out
}

// ForUser returns lists created by the given user id.
func (s *Service) ForUser(userID string) []models.List {
	if userID == "" {
		userID = CurrentUserID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.List
	for _, l := range s.state.Lists {
		if l.Creator.ID == userID {
			out = append(out, l)
		}
	}
	return out
}

// Saved returns the lists the user bookmarked.
func (s *Service) Saved() []models.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	saved := make(map[string]bool, len(s.state.SavedListIDs))
	for _, id := range s.state.SavedListIDs {
		saved[id] = true
	}
	var out []models.List
	for _, l := range s.state.Lists {
		if saved[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// Get returns one list by id.
func (s *Service) Get(id string) (models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l := s.find(id); l != nil {
		return *l, nil
	}
	return models.List{}, ErrListNotFound
}

// Create makes a new list owned by userID and persists it at the head of the
// store. An empty userID means the single-profile current user.
func (s *Service) Create(userID string, data models.ListUpsert) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == "" {
		userID = CurrentUserID
	}
	name := "You"
	if userID != CurrentUserID {
		name = userID
	}

	now := time.Now().UTC()
	list := models.List{
		ID:          "list-" + uuid.NewString(),
		Title:       data.Title,
		Description: data.Description,
		Creator:     models.ListCreator{ID: userID, Name: name},
		Items:       []models.Media{},
		IsPublic:    data.IsPublic,
		Tags:        data.Tags,
		CoverImage:  data.CoverImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.state.Lists = append([]models.List{list}, s.state.Lists...)
	if err := s.save(); err != nil {
		return models.List{}, err
	}
	return list, nil
}

// Update edits a list's mutable fields.
func (s *Service) Update(id string, data models.ListUpsert) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return models.List{}, ErrListNotFound
	}
	if data.Title != "" {
		l.Title = data.Title
	}
	if data.Description != "" {
		l.Description = data.Description
	}
	l.IsPublic = data.IsPublic
	if data.Tags != nil {
		l.Tags = data.Tags
	}
	if data.CoverImage != "" {
		l.CoverImage = data.CoverImage
	}
	l.UpdatedAt = time.Now().UTC()
	if err := s.save(); err != nil {
		return models.List{}, err
	}
	return *l, nil
}

// Delete removes a list and any bookmark pointing at it.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Lists[:0]
	found := false
	for _, l := range s.state.Lists {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return ErrListNotFound
	}
	s.state.Lists = kept

	savedKept := s.state.SavedListIDs[:0]
	for _, sid := range s.state.SavedListIDs {
		if sid != id {
			savedKept = append(savedKept, sid)
		}
	}
	s.state.SavedListIDs = savedKept

	return s.save()
}

// AddItem appends a title to a list, ignoring duplicates by IMDb id.
func (s *Service) AddItem(id string, media models.Media) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return models.List{}, ErrListNotFound
	}
	for _, item := range l.Items {
		if item.IMDBID == media.IMDBID {
			return *l, nil
		}
	}
	l.Items = append(l.Items, media)
	l.UpdatedAt = time.Now().UTC()
	if err := s.save(); err != nil {
		return models.List{}, err
	}
	return *l, nil
}

// RemoveItem drops a title from a list by IMDb id.
func (s *Service) RemoveItem(id, imdbID string) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return models.List{}, ErrListNotFound
	}
	kept := l.Items[:0]
	for _, item := range l.Items {
		if item.IMDBID != imdbID {
			kept = append(kept, item)
		}
	}
	l.Items = kept
	l.UpdatedAt = time.Now().UTC()
	if err := s.save(); err != nil {
		return models.List{}, err
	}
	return *l, nil
}

// Like increments a list's like counter.
func (s *Service) Like(id string) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return models.List{}, ErrListNotFound
	}
	l.Likes++
	if err := s.save(); err != nil {
		return models.List{}, err
	}
	return *l, nil
}

// ToggleSave bookmarks or unbookmarks a list, adjusting its save counter.
// Returns true when the list ends up saved.
func (s *Service) ToggleSave(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return false, ErrListNotFound
	}

	for i, sid := range s.state.SavedListIDs {
		if sid == id {
			s.state.SavedListIDs = append(s.state.SavedListIDs[:i], s.state.SavedListIDs[i+1:]...)
			if l.Saves > 0 {
				l.Saves--
			}
			return false, s.save()
		}
	}

	s.state.SavedListIDs = append(s.state.SavedListIDs, id)
	l.Saves++
	return true, s.save()
}

// TogglePrivacy flips a list between public and private.
func (s *Service) TogglePrivacy(id string) (models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.find(id)
	if l == nil {
		return models.List{}, ErrListNotFound
	}
	l.IsPublic = !l.IsPublic
	l.UpdatedAt = time.Now().UTC()
	if err := s.save(); err != nil {
		return models.List{}, err
	}
	return *l, nil
}
