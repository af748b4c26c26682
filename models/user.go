package models

import "time"

// UserProfile holds per-user preferences keyed by the auth provider's UID.
type UserProfile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName,omitempty"`
	Currency  string    `json:"currency"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
