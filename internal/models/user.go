package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system. Users are created or refreshed on
// every Google login, keyed by email.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  *string   `json:"full_name,omitempty" db:"full_name"`
	GoogleID  *string   `json:"-" db:"google_id"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
