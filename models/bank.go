package models

import "time"

type Bank struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code,omitempty"`
	Type            string    `json:"type"`
	LogoURL         string    `json:"logoUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	IsSystemBank    bool      `json:"isSystemBank"`
	CreatedByUserID string    `json:"createdByUserId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
