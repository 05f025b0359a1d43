package models

import (
	"time"

	"github.com/google/uuid"
)

// Voting session statuses
const (
	VotingStatusActive = "active"
	VotingStatusClosed = "closed"
)

// AvailabilityRange is one member's submitted date range for a trip.
// A submission replaces all previous ranges for that user+trip.
type AvailabilityRange struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TripID    uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DateVotingSession is a trip's date-voting window.
// At most one session per trip may be active at any time.
type DateVotingSession struct {
	ID        uuid.UUID  `json:"date_voting_id" db:"id"`
	TripID    uuid.UUID  `json:"trip_id" db:"trip_id"`
	Status    string     `json:"status" db:"status"`
	CreatedBy uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty" db:"closed_at"`
}

// ProvinceVote is one ranked destination preference on a member's ballot.
// Rank 1 is the most preferred province.
type ProvinceVote struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TripID    uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Province  string    `json:"province" db:"province"`
	Rank      int       `json:"rank" db:"rank"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
