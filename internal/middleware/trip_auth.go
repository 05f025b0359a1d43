package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"TRIPMATE_BACK-END/internal/models"
)

// CheckTripRole verifies the (trip_id, user_id, is_active) membership row,
// optionally requiring the owner role.
func CheckTripRole(ctx context.Context, db *pgxpool.Pool, tripID, userID uuid.UUID, ownerOnly bool) error {
	var role string
	err := db.QueryRow(ctx,
		`SELECT role FROM trip_members WHERE trip_id = $1 AND user_id = $2 AND is_active = TRUE`,
		tripID, userID,
	).Scan(&role)
	if err != nil {
		// Distinguish missing trips from missing memberships
		var exists bool
		if err2 := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1)`, tripID,
		).Scan(&exists); err2 == nil && !exists {
			return models.ErrTripNotFound
		}
		return models.ErrNotTripMember
	}
	if ownerOnly && role != models.RoleOwner {
		return models.ErrNotTripOwner
	}
	return nil
}
