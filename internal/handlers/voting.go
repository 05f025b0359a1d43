package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"TRIPMATE_BACK-END/internal/dto"
	"TRIPMATE_BACK-END/internal/middleware"
	"TRIPMATE_BACK-END/internal/models"
	"TRIPMATE_BACK-END/internal/utils"
)

// VotingHandler manages date-voting sessions and province ballots
type VotingHandler struct {
	db *pgxpool.Pool
}

// NewVotingHandler creates a new VotingHandler
func NewVotingHandler(db *pgxpool.Pool) *VotingHandler {
	return &VotingHandler{db: db}
}

// StartVoting handles POST /vote/start-voting
// @Summary Open a date-voting session
// @Description Opens the trip's voting session and flips the trip to 'voting'. At most one active session per trip.
// @Tags voting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.StartVotingRequest true "Trip id"
// @Success 201 {object} dto.StartVotingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Session already active"
// @Failure 500 {object} dto.ErrorResponse
// @Router /vote/start-voting [post]
func (h *VotingHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.StartVotingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}
	tripID := uuid.MustParse(req.TripID)

	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, false); err != nil {
		writeVoteError(w, err)
		return
	}

	// Session insert and trip status flip commit or roll back as a unit.
	// The deferred rollback releases the connection on every exit path.
	tx, err := h.db.Begin(r.Context())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer tx.Rollback(r.Context())

	// Lock the trip row first so two concurrent starts serialize here.
	var status string
	err = tx.QueryRow(r.Context(),
		`SELECT status FROM trips WHERE id = $1 FOR UPDATE`, tripID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	var existing uuid.UUID
	err = tx.QueryRow(r.Context(),
		`SELECT id FROM date_voting_sessions WHERE trip_id = $1 AND status = $2`,
		tripID, models.VotingStatusActive,
	).Scan(&existing)
	if err == nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", models.ErrActiveSessionExists.Error())
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	sessionID := uuid.New()
	_, err = tx.Exec(r.Context(),
		`INSERT INTO date_voting_sessions (id, trip_id, status, created_by)
		 VALUES ($1, $2, $3, $4)`,
		sessionID, tripID, models.VotingStatusActive, userID,
	)
	if err != nil {
		// The partial unique index backs the existence check; a 23505
		// here means another session won an unlocked race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", models.ErrActiveSessionExists.Error())
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if !models.CanTransition(status, models.TripStatusVoting) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error",
			fmt.Sprintf("cannot move trip from %s to voting", status))
		return
	}
	if _, err := tx.Exec(r.Context(),
		`UPDATE trips SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.TripStatusVoting, tripID,
	); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.StartVotingResponse{
		VotingID: sessionID.String(),
		Status:   models.VotingStatusActive,
	})
}

// CloseVoting handles POST /vote/close-voting
// @Summary Close the active date-voting session (owner only)
// @Tags voting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CloseVotingRequest true "Trip id"
// @Success 200 {object} dto.CloseVotingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No active session"
// @Failure 500 {object} dto.ErrorResponse
// @Router /vote/close-voting [post]
func (h *VotingHandler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CloseVotingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	tripID := uuid.MustParse(req.TripID)

	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, true); err != nil {
		writeVoteError(w, err)
		return
	}

	now := time.Now()
	var sessionID uuid.UUID
	err := h.db.QueryRow(r.Context(),
		`UPDATE date_voting_sessions SET status = $1, closed_at = $2
		  WHERE trip_id = $3 AND status = $4
		  RETURNING id`,
		models.VotingStatusClosed, now, tripID, models.VotingStatusActive,
	).Scan(&sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", models.ErrNoActiveSession.Error())
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.CloseVotingResponse{
		VotingID: sessionID.String(),
		Status:   models.VotingStatusClosed,
		ClosedAt: utils.FormatTimestamp(now),
	})
}

// SubmitProvinces handles POST /vote/submit-provinces
// @Summary Submit a ranked province ballot
// @Description Replaces the caller's previous ballot for the trip. Ranks must be 1..N with no repeats.
// @Tags voting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SubmitProvincesRequest true "Ranked provinces"
// @Success 200 {object} dto.SubmitProvincesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vote/submit-provinces [post]
func (h *VotingHandler) SubmitProvinces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SubmitProvincesRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	tripID := uuid.MustParse(req.TripID)

	if err := ValidateBallot(req.Rankings); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	if err := middleware.CheckTripRole(r.Context(), h.db, tripID, userID, false); err != nil {
		writeVoteError(w, err)
		return
	}

	tx, err := h.db.Begin(r.Context())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer tx.Rollback(r.Context())

	if _, err := tx.Exec(r.Context(),
		`DELETE FROM province_votes WHERE trip_id = $1 AND user_id = $2`,
		tripID, userID,
	); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	for _, ranking := range req.Rankings {
		if _, err := tx.Exec(r.Context(),
			`INSERT INTO province_votes (id, trip_id, user_id, province, rank)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), tripID, userID, strings.TrimSpace(ranking.Province), ranking.Rank,
		); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
	}

	if err := tx.Commit(r.Context()); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SubmitProvincesResponse{
		Message:    "Province ranking saved",
		VotesSaved: len(req.Rankings),
	})
}

// ProvinceResults handles GET /vote/province-results/{tripId}
// @Summary Borda-count province standings
// @Tags voting
// @Produce json
// @Security BearerAuth
// @Param tripId path string true "Trip ID"
// @Success 200 {object} dto.ProvinceResultsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /vote/province-results/{tripId} [get]
func (h *VotingHandler) ProvinceResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/vote/province-results/")
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
		`SELECT user_id, province, rank FROM province_votes WHERE trip_id = $1`, tripID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	votes := make([]models.ProvinceVote, 0)
	for rows.Next() {
		var v models.ProvinceVote
		if err := rows.Scan(&v.UserID, &v.Province, &v.Rank); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	results, ballots := BordaCount(votes)
	utils.WriteJSONResponse(w, http.StatusOK, dto.ProvinceResultsResponse{
		Success: true,
		Results: results,
		Ballots: ballots,
	})
}

// ValidateBallot checks that a ballot's ranks are exactly 1..N with each
// rank used once and no duplicate provinces.
func ValidateBallot(rankings []dto.ProvinceRanking) error {
	n := len(rankings)
	ranksSeen := make(map[int]bool, n)
	provincesSeen := make(map[string]bool, n)
	for _, rk := range rankings {
		province := strings.TrimSpace(rk.Province)
		if province == "" {
			return errors.New("province must not be empty")
		}
		if rk.Rank < 1 || rk.Rank > n {
			return fmt.Errorf("rank %d out of range 1..%d", rk.Rank, n)
		}
		if ranksSeen[rk.Rank] {
			return fmt.Errorf("rank %d used more than once", rk.Rank)
		}
		if provincesSeen[strings.ToLower(province)] {
			return fmt.Errorf("province %q listed more than once", province)
		}
		ranksSeen[rk.Rank] = true
		provincesSeen[strings.ToLower(province)] = true
	}
	return nil
}

// BordaCount scores ranked ballots: a ballot ranking k provinces awards
// (k - rank) points to each one, so rank 1 on a 3-entry ballot earns 2
// points and the last entry earns 0. Results are ordered by points
// descending, then first-place votes, then province name.
func BordaCount(votes []models.ProvinceVote) ([]dto.ProvinceResult, int) {
	ballotSizes := make(map[uuid.UUID]int)
	for _, v := range votes {
		ballotSizes[v.UserID]++
	}

	points := make(map[string]int)
	firstPlace := make(map[string]int)
	for _, v := range votes {
		points[v.Province] += ballotSizes[v.UserID] - v.Rank
		if v.Rank == 1 {
			firstPlace[v.Province]++
		}
	}

	results := make([]dto.ProvinceResult, 0, len(points))
	for province, pts := range points {
		results = append(results, dto.ProvinceResult{
			Province:        province,
			Points:          pts,
			FirstPlaceVotes: firstPlace[province],
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		if results[i].FirstPlaceVotes != results[j].FirstPlaceVotes {
			return results[i].FirstPlaceVotes > results[j].FirstPlaceVotes
		}
		return results[i].Province < results[j].Province
	})

	return results, len(ballotSizes)
}
