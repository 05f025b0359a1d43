package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"TRIPMATE_BACK-END/internal/dto"
	"TRIPMATE_BACK-END/internal/models"
	"TRIPMATE_BACK-END/internal/utils"
	"TRIPMATE_BACK-END/internal/ws"
)

// NotificationsService creates inbox rows for users
type NotificationsService interface {
	Create(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID, nType, title, message string) (uuid.UUID, error)
}

// concrete service
type notificationsService struct {
	db *pgxpool.Pool
}

func NewNotificationsService(db *pgxpool.Pool) NotificationsService {
	return &notificationsService{db: db}
}

func (s *notificationsService) Create(
	ctx context.Context,
	userID uuid.UUID,
	tripID *uuid.UUID,
	nType string,
	title string,
	message string,
) (uuid.UUID, error) {
	// Validation
	if userID == uuid.Nil {
		return uuid.Nil, errors.New("user_id cannot be nil")
	}
	if strings.TrimSpace(title) == "" {
		return uuid.Nil, errors.New("notification title is required")
	}
	if len(title) > 255 {
		return uuid.Nil, errors.New("notification title exceeds maximum length of 255 characters")
	}
	if len(message) > 10000 {
		return uuid.Nil, errors.New("notification message exceeds maximum length of 10000 characters")
	}
	if !models.ValidNotificationType(nType) {
		return uuid.Nil, fmt.Errorf("unknown notification type: %s", nType)
	}

	// Insert with context timeout
	insertCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id := uuid.New()
	_, err := s.db.Exec(insertCtx, `
		INSERT INTO notifications (id, user_id, trip_id, type, title, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, userID, tripID, nType, title, message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return uuid.Nil, fmt.Errorf("notification creation timeout: %w", err)
		}
		return uuid.Nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	return id, nil
}

// Dispatcher fans a trip lifecycle event out to every active member,
// excluding the acting user. Each recipient gets a DB row, a best-effort
// email and a best-effort websocket push.
//
// Policy: log-and-continue. A failure for one recipient never stops the
// loop; the first row-insert error is returned after the loop completes
// so callers can log it, but callers must not fail their request on it.
type Dispatcher struct {
	db    *pgxpool.Pool
	svc   NotificationsService
	email *utils.EmailService
	hub   *ws.Hub
}

// NewDispatcher creates a notification dispatcher. email and hub may be
// nil; those channels are then skipped.
func NewDispatcher(db *pgxpool.Pool, email *utils.EmailService, hub *ws.Hub) *Dispatcher {
	return &Dispatcher{
		db:    db,
		svc:   NewNotificationsService(db),
		email: email,
		hub:   hub,
	}
}

// NotifyTripMembers writes one notification per active member of the trip,
// excluding actorID.
func (d *Dispatcher) NotifyTripMembers(ctx context.Context, tripID, actorID uuid.UUID, nType, title, message string) error {
	rows, err := d.db.Query(ctx, `
		SELECT tm.user_id, COALESCE(u.email, '')
		  FROM trip_members tm
		  JOIN users u ON u.id = tm.user_id
		 WHERE tm.trip_id = $1 AND tm.is_active = TRUE AND tm.user_id <> $2
	`, tripID, actorID)
	if err != nil {
		return fmt.Errorf("load trip members for fan-out: %w", err)
	}
	defer rows.Close()

	type recipient struct {
		userID uuid.UUID
		email  string
	}
	recipients := make([]recipient, 0, 8)
	for rows.Next() {
		var rec recipient
		if err := rows.Scan(&rec.userID, &rec.email); err != nil {
			return fmt.Errorf("scan fan-out recipient: %w", err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate fan-out recipients: %w", err)
	}

	var firstErr error
	for _, rec := range recipients {
		id, err := d.svc.Create(ctx, rec.userID, &tripID, nType, title, message)
		if err != nil {
			log.Printf("notification insert failed: %v (trip_id=%s, user_id=%s, type=%s)",
				err, tripID.String(), rec.userID.String(), nType)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if d.email != nil && rec.email != "" {
			if err := d.sendEmail(rec.email, nType, title, message); err != nil {
				log.Printf("notification email failed: %v (user_id=%s)", err, rec.userID.String())
			}
		}

		if d.hub != nil {
			d.hub.Push(rec.userID, ws.NotificationEvent{
				NotificationID: id.String(),
				TripID:         tripID.String(),
				Type:           nType,
				Title:          title,
				Message:        message,
			})
		}
	}

	return firstErr
}

func (d *Dispatcher) sendEmail(to, nType, title, message string) error {
	if nType == models.NotificationMemberJoined {
		return d.email.SendMemberJoined(to, title, message)
	}
	status := strings.TrimPrefix(nType, "trip_")
	return d.email.SendTripStatusChanged(to, title, status)
}

// NotificationsHandler: HTTP endpoints (list / mark read / read all /
// unread count / delete)
type NotificationsHandler struct {
	db  *pgxpool.Pool
	svc NotificationsService
}

func NewNotificationsHandler(db *pgxpool.Pool) *NotificationsHandler {
	return &NotificationsHandler{
		db:  db,
		svc: NewNotificationsService(db),
	}
}

func (h *NotificationsHandler) Service() NotificationsService { return h.svc }

// ListNotifications handles GET /noti/get-noti
// @Summary List notifications
// @Description List user notifications, newest first, with pagination.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "true|false (default false)"
// @Param limit query int false "default 20 (max 100)"
// @Param offset query int false "default 0"
// @Success 200 {object} dto.NotificationsListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /noti/get-noti [get]
func (h *NotificationsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	unreadOnly := strings.EqualFold(q.Get("unread_only"), "true")

	// Validate and parse limit (default 20, max 100)
	limit := 20
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > 100 {
				n = 100
			}
			limit = n
		} else {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
	}

	// Validate and parse offset (default 0, min 0)
	offset := 0
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		} else {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid offset", "offset must be a non-negative integer")
			return
		}
	}

	var unreadCount int
	if err := h.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID,
	).Scan(&unreadCount); err != nil {
		log.Printf("Error counting unread notifications: %v (user_id=%s)", err, userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to count unread notifications")
		return
	}

	where := `WHERE user_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	if err := h.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(1) FROM notifications %s`, where), userID,
	).Scan(&total); err != nil {
		log.Printf("Error counting notifications: %v (user_id=%s)", err, userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to count notifications")
		return
	}

	rows, err := h.db.Query(ctx, fmt.Sprintf(`
		SELECT id, trip_id, type, title, message, is_read, created_at, read_at
		FROM notifications %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, where), userID, limit, offset)
	if err != nil {
		log.Printf("Error querying notifications: %v (user_id=%s)", err, userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to fetch notifications")
		return
	}
	defer rows.Close()

	items := make([]dto.NotificationItem, 0, limit)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.TripID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt, &n.ReadAt); err != nil {
			log.Printf("Error scanning notification row: %v (user_id=%s)", err, userID.String())
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process notification data")
			return
		}

		item := dto.NotificationItem{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: utils.FormatTimestamp(n.CreatedAt),
		}
		if n.TripID != nil {
			item.TripID = n.TripID.String()
		}
		if n.ReadAt != nil {
			item.ReadAt = utils.FormatTimestamp(*n.ReadAt)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating notification rows: %v (user_id=%s)", err, userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to process notifications")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NotificationsListResponse{
		Notifications: items,
		Pagination: dto.NotificationsPagination{
			Total:       total,
			UnreadCount: unreadCount,
			Limit:       limit,
			Offset:      offset,
		},
	})
}

// MarkRead handles PATCH /noti/{id}/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /noti/{id}/read [patch]
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	// Path is /noti/{id}/read
	rest := strings.TrimPrefix(r.URL.Path, "/noti/")
	idStr := strings.TrimSuffix(rest, "/read")
	if idStr == rest || idStr == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid path", "missing or invalid notification id")
		return
	}

	nID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid id", "notification id must be a valid UUID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// Users may only mark their own notifications
	cmd, err := h.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW()
		  WHERE id = $1 AND user_id = $2 AND is_read = FALSE`,
		nID, userID,
	)
	if err != nil {
		log.Printf("Error marking notification as read: %v (notification_id=%s, user_id=%s)",
			err, nID.String(), userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update notification")
		return
	}

	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := h.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND user_id = $2)`, nID, userID,
		).Scan(&exists); err == nil && exists {
			// Already read; marking again is a no-op success
			utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Notification already read"})
			return
		}
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Notification not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}

// MarkAllRead handles PATCH /noti/read-all
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /noti/read-all [patch]
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cmd, err := h.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = NOW()
		  WHERE user_id = $1 AND is_read = FALSE`, userID,
	)
	if err != nil {
		log.Printf("Error marking all notifications as read: %v (user_id=%s)", err, userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to update notifications")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message":       "All notifications marked as read",
		"updated_count": cmd.RowsAffected(),
	})
}

// UnreadCount handles GET /noti/unread-count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UnreadCountResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /noti/unread-count [get]
func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var count int
	if err := h.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID,
	).Scan(&count); err != nil {
		log.Printf("Error counting unread notifications: %v (user_id=%s)", err, userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to count notifications")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

// DeleteNotification handles DELETE /noti/notifications/{id}
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /noti/notifications/{id} [delete]
func (h *NotificationsHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/noti/notifications/")
	nID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid id", "notification id must be a valid UUID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// Deletion restricted to the owning user
	cmd, err := h.db.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, nID, userID,
	)
	if err != nil {
		log.Printf("Error deleting notification: %v (notification_id=%s, user_id=%s)",
			err, nID.String(), userID.String())
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", "Failed to delete notification")
		return
	}

	if cmd.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Notification not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Notification deleted"})
}
