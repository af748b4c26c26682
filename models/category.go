package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryTemplate is a catalog entry a user can instantiate into an
// owned category on first use.
type CategoryTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon,omitempty"`
	Type      string `json:"type"`
	SortOrder int    `json:"sortOrder"`
	// IsCreated reports whether the requesting user already owns a
	// category with this template's name.
	IsCreated bool `json:"isCreated"`
}
