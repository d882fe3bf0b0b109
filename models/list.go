package models

import "time"

// DefaultUserID is the single-profile fallback used when no user is given.
const DefaultUserID = "default"

// ListCreator identifies who owns a list.
type ListCreator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is a user-curated collection of titles.
type List struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Creator     ListCreator `json:"creator"`
	Items       []Media     `json:"items"`
	IsPublic    bool        `json:"isPublic"`
	Likes       int         `json:"likes"`
	Saves       int         `json:"saves"`
	Rating      float64     `json:"rating"` // 0-5
	Tags        []string    `json:"tags,omitempty"`
	CoverImage  string      `json:"coverImage,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ListUpsert carries the mutable fields for creating or editing a list.
type ListUpsert struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	IsPublic    bool     `json:"isPublic"`
	Tags        []string `json:"tags,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
}
