package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"TRIPMATE_BACK-END/internal/config"
	"TRIPMATE_BACK-END/internal/dto"
	"TRIPMATE_BACK-END/internal/middleware"
	"TRIPMATE_BACK-END/internal/models"
	"TRIPMATE_BACK-END/internal/utils"
)

const pgUniqueViolation = "23505"

// inviteCodeRetries bounds the collision retry loop on trip creation
const inviteCodeRetries = 3

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	db         *pgxpool.Pool
	config     *config.Config
	dispatcher *Dispatcher
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(db *pgxpool.Pool, cfg *config.Config, dispatcher *Dispatcher) *TripsHandler {
	return &TripsHandler{db: db, config: cfg, dispatcher: dispatcher}
}

// CreateTrip handles POST /trip/AddTrip
// @Summary Create a new trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.CreateTripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trip/AddTrip [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "trip_name is required")
		return
	}

	now := time.Now()
	tripID := uuid.New()
	inviteLink := utils.BuildInviteLink(h.config.Server.BaseURL, tripID)

	// Invite codes are unique; retry a few times on the off chance of a
	// collision instead of pre-checking.
	var inviteCode string
	var insertErr error
	for attempt := 0; attempt < inviteCodeRetries; attempt++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", err.Error())
			return
		}

		insertErr = h.insertTripWithOwner(r.Context(), tripID, userID, req, code, inviteLink, now)
		if insertErr == nil {
			inviteCode = code
			break
		}
		var pgErr *pgconn.PgError
		if !errors.As(insertErr, &pgErr) || pgErr.Code != pgUniqueViolation {
			break
		}
	}
	if insertErr != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", insertErr.Error())
		return
	}

	resp := dto.CreateTripResponse{
		Message: "Trip created successfully",
		Trip: dto.TripResponse{
			ID:          tripID.String(),
			OwnerID:     userID.String(),
			Name:        req.Name,
			Description: req.Description,
			NumDays:     req.NumDays,
			InviteCode:  inviteCode,
			InviteLink:  inviteLink,
			Status:      models.TripStatusPlanning,
			CreatedAt:   utils.FormatTimestamp(now),
		},
	}
	utils.WriteJSONResponse(w, http.StatusCreated, resp)
}

// insertTripWithOwner writes the trip row and its owner membership as one
// transaction; a trip must never exist without exactly one owner.
func (h *TripsHandler) insertTripWithOwner(ctx context.Context, tripID, ownerID uuid.UUID, req dto.CreateTripRequest, code, link string, now time.Time) error {
	tx, err := h.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO trips (id, owner_id, name, description, num_days, invite_code, invite_link, status, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9, $9)`,
		tripID, ownerID, req.Name, req.Description, req.NumDays, code, link, models.TripStatusPlanning, now,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO trip_members (id, trip_id, user_id, role, joined_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)`,
		uuid.New(), tripID, ownerID, models.RoleOwner, now,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListMyTrips handles GET /trip/all-my-trips
// @Summary List trips the caller belongs to
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TripListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trip/all-my-trips [get]
func (h *TripsHandler) ListMyTrips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	rows, err := h.db.Query(r.Context(),
		`SELECT t.id, t.name, t.status, t.num_days, t.invite_code, tm.role, t.created_at,
		        COALESCE((SELECT COUNT(1) FROM trip_members m WHERE m.trip_id = t.id AND m.is_active = TRUE), 0) AS member_count
		   FROM trips t
		   JOIN trip_members tm ON tm.trip_id = t.id
		  WHERE tm.user_id = $1 AND tm.is_active = TRUE AND t.is_active = TRUE
		  ORDER BY t.created_at DESC`, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	items := make([]dto.TripListItem, 0)
	for rows.Next() {
		var (
			id                        uuid.UUID
			name, status, code, role  string
			numDays, memberCount      int
			createdAt                 time.Time
		)
		if err := rows.Scan(&id, &name, &status, &numDays, &code, &role, &createdAt, &memberCount); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		items = append(items, dto.TripListItem{
			ID:          id.String(),
			Name:        name,
			Status:      status,
			NumDays:     numDays,
			InviteCode:  code,
			Role:        role,
			MemberCount: memberCount,
			CreatedAt:   utils.FormatTimestamp(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripListResponse{Success: true, Data: items})
}

// DeleteTrip handles DELETE /trip/DeleteTrip
// @Summary Delete a trip (owner only)
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.DeleteTripRequest true "Trip to delete"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trip/DeleteTrip [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.DeleteTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	tripID := uuid.MustParse(req.TripID) // validated by the uuid tag

	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, true); err != nil {
		h.writeTripError(w, err)
		return
	}

	// CASCADE removes members, availability, votes and sessions
	if _, err := h.db.Exec(r.Context(), `DELETE FROM trips WHERE id = $1`, tripID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Trip deleted successfully"})
}

// JoinByCode handles POST /trip/join
// @Summary Join a trip by invite code
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.JoinTripRequest true "Invite code"
// @Success 200 {object} dto.JoinTripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trip/join [post]
func (h *TripsHandler) JoinByCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.JoinTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	var trip models.Trip
	err := h.db.QueryRow(r.Context(),
		`SELECT id, owner_id, name, description, num_days, invite_code, invite_link, status, created_at
		   FROM trips WHERE invite_code = $1 AND is_active = TRUE`,
		strings.ToUpper(strings.TrimSpace(req.InviteCode)),
	).Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.Description, &trip.NumDays,
		&trip.InviteCode, &trip.InviteLink, &trip.Status, &trip.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", models.ErrInvalidInviteCode.Error())
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	h.joinTrip(w, r, trip, userID)
}

// JoinByLink handles POST /trip/join-by-link
// @Summary Join a trip by the id embedded in an invite link
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.JoinByLinkRequest true "Trip id from the link"
// @Success 200 {object} dto.JoinTripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trip/join-by-link [post]
func (h *TripsHandler) JoinByLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.JoinByLinkRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	var trip models.Trip
	err := h.db.QueryRow(r.Context(),
		`SELECT id, owner_id, name, description, num_days, invite_code, invite_link, status, created_at
		   FROM trips WHERE id = $1 AND is_active = TRUE`,
		uuid.MustParse(req.TripID),
	).Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.Description, &trip.NumDays,
		&trip.InviteCode, &trip.InviteLink, &trip.Status, &trip.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", models.ErrInvalidInviteLink.Error())
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	h.joinTrip(w, r, trip, userID)
}

// joinTrip adds the caller as a member. Joining twice never duplicates the
// membership row; a deactivated membership is reactivated.
func (h *TripsHandler) joinTrip(w http.ResponseWriter, r *http.Request, trip models.Trip, userID uuid.UUID) {
	var existingID uuid.UUID
	var wasActive bool
	err := h.db.QueryRow(r.Context(),
		`SELECT id, is_active FROM trip_members WHERE trip_id = $1 AND user_id = $2`,
		trip.ID, userID,
	).Scan(&existingID, &wasActive)

	alreadyMember := err == nil && wasActive
	switch {
	case alreadyMember:
		// Idempotent join: nothing to write, no duplicate row
	case err == nil && !wasActive:
		if _, err := h.db.Exec(r.Context(),
			`UPDATE trip_members SET is_active = TRUE, joined_at = NOW() WHERE id = $1`,
			existingID,
		); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
	default:
		if _, err := h.db.Exec(r.Context(),
			`INSERT INTO trip_members (id, trip_id, user_id, role, joined_at, is_active)
			 VALUES ($1, $2, $3, $4, NOW(), TRUE)
			 ON CONFLICT (trip_id, user_id) DO NOTHING`,
			uuid.New(), trip.ID, userID, models.RoleMember,
		); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
	}

	message := "Joined trip successfully"
	if alreadyMember {
		message = "Already a member of this trip"
	} else if err := h.dispatcher.NotifyTripMembers(r.Context(), trip.ID, userID,
		models.NotificationMemberJoined, trip.Name, h.memberName(r.Context(), userID)); err != nil {
		log.Printf("member_joined fan-out incomplete: %v (trip_id=%s)", err, trip.ID.String())
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.JoinTripResponse{
		Message: message,
		Trip: dto.TripResponse{
			ID:          trip.ID.String(),
			OwnerID:     trip.OwnerID.String(),
			Name:        trip.Name,
			Description: trip.Description,
			NumDays:     trip.NumDays,
			InviteCode:  trip.InviteCode,
			InviteLink:  trip.InviteLink,
			Status:      trip.Status,
			CreatedAt:   utils.FormatTimestamp(trip.CreatedAt),
		},
	})
}

func (h *TripsHandler) memberName(ctx context.Context, userID uuid.UUID) string {
	var name string
	err := h.db.QueryRow(ctx,
		`SELECT COALESCE(full_name, email) FROM users WHERE id = $1`, userID,
	).Scan(&name)
	if err != nil {
		return "A new member"
	}
	return name
}

// TripScoped dispatches /trip/{tripId}[/...] routes:
//
//	GET    /trip/{tripId}                        trip detail
//	DELETE /trip/{tripId}/members/{memberId}     remove a member
//	POST   /trip/{tripId}/confirm                status transitions
//	POST   /trip/{tripId}/complete
//	POST   /trip/{tripId}/archive
func (h *TripsHandler) TripScoped(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/trip/"), "/"), "/")
	tripID, err := uuid.Parse(parts[0])
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip id must be UUID")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.tripDetail(w, r, tripID, userID)
	case len(parts) == 3 && parts[1] == "members" && r.Method == http.MethodDelete:
		h.removeMember(w, r, tripID, userID, parts[2])
	case len(parts) == 2 && r.Method == http.MethodPost:
		switch parts[1] {
		case "confirm":
			h.changeStatus(w, r, tripID, userID, models.TripStatusConfirmed, models.NotificationTripConfirmed)
		case "complete":
			h.changeStatus(w, r, tripID, userID, models.TripStatusCompleted, models.NotificationTripCompleted)
		case "archive":
			h.changeStatus(w, r, tripID, userID, models.TripStatusArchived, models.NotificationTripArchived)
		default:
			http.NotFound(w, r)
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TripsHandler) tripDetail(w http.ResponseWriter, r *http.Request, tripID, userID uuid.UUID) {
	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, false); err != nil {
		h.writeTripError(w, err)
		return
	}

	var t models.Trip
	err := h.db.QueryRow(r.Context(),
		`SELECT id, owner_id, name, description, num_days, invite_code, invite_link, status, created_at, confirmed_at
		   FROM trips WHERE id = $1`, tripID,
	).Scan(&t.ID, &t.OwnerID, &t.Name, &t.Description, &t.NumDays,
		&t.InviteCode, &t.InviteLink, &t.Status, &t.CreatedAt, &t.ConfirmedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	rows, err := h.db.Query(r.Context(),
		`SELECT tm.id, tm.user_id, tm.role, tm.joined_at, u.email, u.full_name, u.avatar_url
		   FROM trip_members tm
		   JOIN users u ON u.id = tm.user_id
		  WHERE tm.trip_id = $1 AND tm.is_active = TRUE
		  ORDER BY tm.joined_at`, tripID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	members := make([]dto.TripMemberItem, 0)
	for rows.Next() {
		var m models.TripMember
		var email string
		var fullName, avatarURL *string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.JoinedAt, &email, &fullName, &avatarURL); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		members = append(members, dto.TripMemberItem{
			MemberID:  m.ID.String(),
			UserID:    m.UserID.String(),
			Email:     email,
			FullName:  fullName,
			AvatarURL: avatarURL,
			Role:      m.Role,
			JoinedAt:  utils.FormatTimestamp(m.JoinedAt),
		})
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	resp := dto.TripDetailResponse{
		Success: true,
		Trip: dto.TripResponse{
			ID:          t.ID.String(),
			OwnerID:     t.OwnerID.String(),
			Name:        t.Name,
			Description: t.Description,
			NumDays:     t.NumDays,
			InviteCode:  t.InviteCode,
			InviteLink:  t.InviteLink,
			Status:      t.Status,
			CreatedAt:   utils.FormatTimestamp(t.CreatedAt),
		},
		Members: members,
	}
	if t.ConfirmedAt != nil {
		resp.Trip.ConfirmedAt = utils.FormatTimestamp(*t.ConfirmedAt)
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// removeMember handles DELETE /trip/{tripId}/members/{memberId}.
// Only the owner may remove members, and never the owner row itself.
func (h *TripsHandler) removeMember(w http.ResponseWriter, r *http.Request, tripID, userID uuid.UUID, memberIDStr string) {
	memberID, err := uuid.Parse(memberIDStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid member id", "member id must be UUID")
		return
	}

	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, true); err != nil {
		h.writeTripError(w, err)
		return
	}

	var role string
	var active bool
	err = h.db.QueryRow(r.Context(),
		`SELECT role, is_active FROM trip_members WHERE id = $1 AND trip_id = $2`,
		memberID, tripID,
	).Scan(&role, &active)
	if err != nil || !active {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", models.ErrMemberNotFound.Error())
		return
	}
	if role == models.RoleOwner {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", models.ErrCannotRemoveOwner.Error())
		return
	}

	if _, err := h.db.Exec(r.Context(),
		`UPDATE trip_members SET is_active = FALSE WHERE id = $1`, memberID,
	); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Member removed successfully"})
}

// changeStatus performs a one-way trip status transition. Retrying the
// same transition succeeds without effect.
func (h *TripsHandler) changeStatus(w http.ResponseWriter, r *http.Request, tripID, userID uuid.UUID, target, notifType string) {
	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, true); err != nil {
		h.writeTripError(w, err)
		return
	}

	tx, err := h.db.Begin(r.Context())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer tx.Rollback(r.Context())

	var name, current string
	err = tx.QueryRow(r.Context(),
		`SELECT name, status FROM trips WHERE id = $1 FOR UPDATE`, tripID,
	).Scan(&name, &current)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	if current == target {
		// Idempotent retry
		utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
			Message: fmt.Sprintf("Trip already %s", target),
		})
		return
	}
	if !models.CanTransition(current, target) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error",
			fmt.Sprintf("cannot move trip from %s to %s", current, target))
		return
	}

	if target == models.TripStatusConfirmed {
		_, err = tx.Exec(r.Context(),
			`UPDATE trips SET status = $1, confirmed_at = COALESCE(confirmed_at, NOW()), updated_at = NOW() WHERE id = $2`,
			target, tripID)
	} else {
		_, err = tx.Exec(r.Context(),
			`UPDATE trips SET status = $1, updated_at = NOW() WHERE id = $2`,
			target, tripID)
	}
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if err := h.dispatcher.NotifyTripMembers(r.Context(), tripID, userID, notifType, name, target); err != nil {
		log.Printf("%s fan-out incomplete: %v (trip_id=%s)", notifType, err, tripID.String())
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Trip %s", target),
	})
}

func (h *TripsHandler) writeTripError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrTripNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
	case errors.Is(err, models.ErrNotTripOwner), errors.Is(err, models.ErrNotTripMember):
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
	}
}
