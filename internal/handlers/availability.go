package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"TRIPMATE_BACK-END/internal/dto"
	"TRIPMATE_BACK-END/internal/middleware"
	"TRIPMATE_BACK-END/internal/models"
	"TRIPMATE_BACK-END/internal/utils"
)

// AvailabilityHandler manages availability submission and the heatmap
type AvailabilityHandler struct {
	db *pgxpool.Pool
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(db *pgxpool.Pool) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// SubmitAvailability handles POST /vote/submit-availability
// @Summary Submit availability date ranges
// @Description Replaces all of the caller's previous ranges for the trip. Any invalid range rejects the whole submission.
// @Tags voting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SubmitAvailabilityRequest true "Date ranges"
// @Success 200 {object} dto.SubmitAvailabilityResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vote/submit-availability [post]
func (h *AvailabilityHandler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SubmitAvailabilityRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}
	tripID := uuid.MustParse(req.TripID)

	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, false); err != nil {
		writeVoteError(w, err)
		return
	}

	parsed, err := parseRanges(req.Ranges)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	// Replace semantics: delete and insert in one transaction so a failed
	// insert never leaves the user with half a submission.
	tx, err := h.db.Begin(r.Context())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer tx.Rollback(r.Context())

	if _, err := tx.Exec(r.Context(),
		`DELETE FROM availability_ranges WHERE trip_id = $1 AND user_id = $2`,
		tripID, userID,
	); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	for _, rg := range parsed {
		if _, err := tx.Exec(r.Context(),
			`INSERT INTO availability_ranges (id, trip_id, user_id, start_date, end_date)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), tripID, userID, rg.start, rg.end,
		); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
	}

	if err := tx.Commit(r.Context()); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SubmitAvailabilityResponse{
		Message:     "Availability saved",
		RangesSaved: len(parsed),
	})
}

// Heatmap handles GET /vote/heatmap/{tripId}
// @Summary Per-day availability heatmap
// @Description Maps each calendar date to the distinct users available that day.
// @Tags voting
// @Produce json
// @Security BearerAuth
// @Param tripId path string true "Trip ID"
// @Success 200 {object} dto.HeatmapResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vote/heatmap/{tripId} [get]
func (h *AvailabilityHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/vote/heatmap/")
	tripID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip id must be UUID")
		return
	}

	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, false); err != nil {
		writeVoteError(w, err)
		return
	}

	rows, err := h.db.Query(r.Context(),
		`SELECT user_id, start_date, end_date FROM availability_ranges WHERE trip_id = $1`,
		tripID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	ranges := make([]models.AvailabilityRange, 0)
	for rows.Next() {
		var rg models.AvailabilityRange
		if err := rows.Scan(&rg.UserID, &rg.StartDate, &rg.EndDate); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		ranges = append(ranges, rg)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	data, dates := BuildHeatmap(ranges)
	utils.WriteJSONResponse(w, http.StatusOK, dto.HeatmapResponse{
		Success: true,
		Data:    data,
		Dates:   dates,
	})
}

// maxRangeDays bounds a single availability range. Heatmap reads expand
// ranges day by day, so an unbounded range would make every read of the
// trip arbitrarily expensive.
const maxRangeDays = 365

type dateRange struct{ start, end time.Time }

// parseRanges validates every submitted range up front so an invalid one
// aborts the whole submission before anything is written. An empty slice
// is valid and clears the member's availability.
func parseRanges(ranges []dto.DateRange) ([]dateRange, error) {
	parsed := make([]dateRange, 0, len(ranges))
	for _, rg := range ranges {
		start, err := utils.ParseDate(rg.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := utils.ParseDate(rg.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, errors.New("start_date must not be after end_date")
		}
		if int(end.Sub(start).Hours()/24)+1 > maxRangeDays {
			return nil, fmt.Errorf("range %s..%s exceeds %d days", rg.StartDate, rg.EndDate, maxRangeDays)
		}
		parsed = append(parsed, dateRange{start: start, end: end})
	}
	return parsed, nil
}

// BuildHeatmap expands every range day by day, both endpoints inclusive,
// and maps each date to the distinct users available that day. A user
// with overlapping ranges still counts once per day. The returned date
// slice lists keys in natural date order.
func BuildHeatmap(ranges []models.AvailabilityRange) (map[string][]string, []string) {
	seen := make(map[string]map[string]bool)
	for _, rg := range ranges {
		userID := rg.UserID.String()
		for _, day := range utils.ExpandRange(rg.StartDate, rg.EndDate) {
			if seen[day] == nil {
				seen[day] = make(map[string]bool)
			}
			seen[day][userID] = true
		}
	}

	dates := make([]string, 0, len(seen))
	data := make(map[string][]string, len(seen))
	for day, users := range seen {
		dates = append(dates, day)
		ids := make([]string, 0, len(users))
		for id := range users {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		data[day] = ids
	}
	// ISO dates sort lexicographically in natural date order
	sort.Strings(dates)

	return data, dates
}

func writeVoteError(w http.ResponseWriter, err error) {
	switch err {
	case models.ErrTripNotFound:
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
	case models.ErrNotTripOwner, models.ErrNotTripMember:
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
	}
}
