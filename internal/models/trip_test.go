package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"planning to voting", TripStatusPlanning, TripStatusVoting, true},
		{"voting to confirmed", TripStatusVoting, TripStatusConfirmed, true},
		{"confirmed to completed", TripStatusConfirmed, TripStatusCompleted, true},
		{"planning skips ahead to confirmed", TripStatusPlanning, TripStatusConfirmed, true},
		{"same status is idempotent", TripStatusVoting, TripStatusVoting, true},
		{"no moving backwards", TripStatusConfirmed, TripStatusVoting, false},
		{"completed cannot reopen", TripStatusCompleted, TripStatusPlanning, false},
		{"archive from planning", TripStatusPlanning, TripStatusArchived, true},
		{"archive from completed", TripStatusCompleted, TripStatusArchived, true},
		{"archive is terminal", TripStatusArchived, TripStatusConfirmed, false},
		{"unknown target rejected", TripStatusPlanning, "cancelled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidNotificationType(t *testing.T) {
	for _, typ := range []string{
		NotificationMemberJoined,
		NotificationTripConfirmed,
		NotificationTripCompleted,
		NotificationTripArchived,
	} {
		assert.True(t, ValidNotificationType(typ), "type %s", typ)
	}
	assert.False(t, ValidNotificationType("friend_request"))
	assert.False(t, ValidNotificationType(""))
}
