package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types emitted by trip lifecycle events
const (
	NotificationMemberJoined  = "member_joined"
	NotificationTripConfirmed = "trip_confirmed"
	NotificationTripCompleted = "trip_completed"
	NotificationTripArchived  = "trip_archived"
)

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationMemberJoined, NotificationTripConfirmed,
		NotificationTripCompleted, NotificationTripArchived:
		return true
	}
	return false
}

// Notification is a per-user inbox row. Rows are mutated only to mark
// them read and deleted only by their owning user.
type Notification struct {
	ID        uuid.UUID  `json:"notification_id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TripID    *uuid.UUID `json:"trip_id,omitempty" db:"trip_id"`
	Type      string     `json:"notification_type" db:"type"`
	Title     string     `json:"title" db:"title"`
	Message   string     `json:"message" db:"message"`
	IsRead    bool       `json:"is_read" db:"is_read"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
}
