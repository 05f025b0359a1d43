package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip statuses form a one-way state machine. Archive is reachable from
// any non-archived status; nothing else may move backwards.
const (
	TripStatusPlanning  = "planning"
	TripStatusVoting    = "voting"
	TripStatusConfirmed = "confirmed"
	TripStatusCompleted = "completed"
	TripStatusArchived  = "archived"
)

// Trip represents a planned group outing owned by its creator
type Trip struct {
	ID          uuid.UUID  `json:"trip_id" db:"id"`
	OwnerID     uuid.UUID  `json:"owner_id" db:"owner_id"`
	Name        string     `json:"trip_name" db:"name"`
	Description string     `json:"description" db:"description"`
	NumDays     int        `json:"num_days" db:"num_days"`
	InviteCode  string     `json:"invite_code" db:"invite_code"`
	InviteLink  string     `json:"invite_link" db:"invite_link"`
	Status      string     `json:"status" db:"status"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty" db:"confirmed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Member roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// TripMember represents a user's membership in a trip
type TripMember struct {
	ID       uuid.UUID `json:"member_id" db:"id"`
	TripID   uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Role     string    `json:"role" db:"role"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
	IsActive bool      `json:"is_active" db:"is_active"`
}

// StatusRank orders trip statuses along the forward state machine.
// Unknown statuses rank 0 so they can never be a transition target.
func StatusRank(status string) int {
	switch status {
	case TripStatusPlanning:
		return 1
	case TripStatusVoting:
		return 2
	case TripStatusConfirmed:
		return 3
	case TripStatusCompleted:
		return 4
	case TripStatusArchived:
		return 5
	}
	return 0
}

// CanTransition reports whether a trip may move from one status to another.
// Same-status writes are allowed so retried transitions stay idempotent.
func CanTransition(from, to string) bool {
	if StatusRank(to) == 0 {
		return false
	}
	if from == to {
		return true
	}
	if to == TripStatusArchived {
		return from != TripStatusArchived
	}
	return StatusRank(to) > StatusRank(from)
}
