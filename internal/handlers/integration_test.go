package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRIPMATE_BACK-END/internal/config"
	"TRIPMATE_BACK-END/internal/dto"
	"TRIPMATE_BACK-END/internal/handlers"
	"TRIPMATE_BACK-END/testutil"
)

// newHandlers wires the handler set against the integration database with
// e-mail and websocket delivery disabled.
func newHandlers(t *testing.T) (*pgxpool.Pool, *handlers.TripsHandler, *handlers.AvailabilityHandler, *handlers.VotingHandler) {
	t.Helper()

	pool := testutil.NewPool(t)
	testutil.MigrateUp(t, testutil.NewSQLDB(t))

	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:8080"

	dispatcher := handlers.NewDispatcher(pool, nil, nil)
	trips := handlers.NewTripsHandler(pool, cfg, dispatcher)
	availability := handlers.NewAvailabilityHandler(pool)
	voting := handlers.NewVotingHandler(pool)
	return pool, trips, availability, voting
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email) VALUES ($1, $2)`, id, email)
	require.NoError(t, err)

	t.Cleanup(func() {
		// Trips restrict owner deletion, so drop them first; everything
		// else cascades.
		pool.Exec(context.Background(), `DELETE FROM trips WHERE owner_id = $1`, id)
		pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

// doJSON performs a handler call as userID with a JSON body and decodes the
// response into out (when out is non-nil).
func doJSON(t *testing.T, handler http.HandlerFunc, method, path string, userID uuid.UUID, body, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), "user_id", userID)
	ctx = context.WithValue(ctx, "email", "test@example.com")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
			"decode %s %s response: %s", method, path, rec.Body.String())
	}
	return rec.Code
}

func createTrip(t *testing.T, trips *handlers.TripsHandler, ownerID uuid.UUID, name string) dto.TripResponse {
	t.Helper()

	var resp dto.CreateTripResponse
	code := doJSON(t, trips.CreateTrip, http.MethodPost, "/trip/AddTrip", ownerID,
		dto.CreateTripRequest{Name: name, NumDays: 3}, &resp)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, resp.Trip.InviteCode)
	return resp.Trip
}

func TestJoinTripIsIdempotent(t *testing.T) {
	pool, trips, _, _ := newHandlers(t)

	owner := seedUser(t, pool, "owner-join@example.com")
	member := seedUser(t, pool, "member-join@example.com")
	trip := createTrip(t, trips, owner, "Khao Yai weekend")

	join := dto.JoinTripRequest{InviteCode: trip.InviteCode}

	var first dto.JoinTripResponse
	code := doJSON(t, trips.JoinByCode, http.MethodPost, "/trip/join", member, join, &first)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Joined trip successfully", first.Message)

	var second dto.JoinTripResponse
	code = doJSON(t, trips.JoinByCode, http.MethodPost, "/trip/join", member, join, &second)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Already a member of this trip", second.Message)

	var memberships int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(1) FROM trip_members WHERE trip_id = $1 AND user_id = $2`,
		trip.ID, member).Scan(&memberships))
	assert.Equal(t, 1, memberships, "joining twice must not duplicate the membership row")

	// The owner got exactly one member_joined notification per join event
	// that actually changed anything.
	var notis int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND type = 'member_joined'`,
		owner).Scan(&notis))
	assert.Equal(t, 1, notis)
}

func TestJoinWithUnknownCode(t *testing.T) {
	pool, trips, _, _ := newHandlers(t)
	member := seedUser(t, pool, "lost@example.com")

	code := doJSON(t, trips.JoinByCode, http.MethodPost, "/trip/join", member,
		dto.JoinTripRequest{InviteCode: "ZZZZZ0"}, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSubmitAvailabilityReplacesPreviousRanges(t *testing.T) {
	pool, trips, availability, _ := newHandlers(t)

	owner := seedUser(t, pool, "owner-avail@example.com")
	trip := createTrip(t, trips, owner, "Beach trip")

	first := dto.SubmitAvailabilityRequest{
		TripID: trip.ID,
		Ranges: []dto.DateRange{
			{StartDate: "2025-12-01", EndDate: "2025-12-03"},
			{StartDate: "2025-12-10", EndDate: "2025-12-10"},
		},
	}
	var resp dto.SubmitAvailabilityResponse
	code := doJSON(t, availability.SubmitAvailability, http.MethodPost, "/vote/submit-availability", owner, first, &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, resp.RangesSaved)

	// Second submission fully replaces the first.
	second := dto.SubmitAvailabilityRequest{
		TripID: trip.ID,
		Ranges: []dto.DateRange{{StartDate: "2025-12-05", EndDate: "2025-12-06"}},
	}
	code = doJSON(t, availability.SubmitAvailability, http.MethodPost, "/vote/submit-availability", owner, second, &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, resp.RangesSaved)

	var heatmap dto.HeatmapResponse
	code = doJSON(t, availability.Heatmap, http.MethodGet, "/vote/heatmap/"+trip.ID, owner, nil, &heatmap)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"2025-12-05", "2025-12-06"}, heatmap.Dates)
}

func TestSubmitAvailabilityEmptyRangesClears(t *testing.T) {
	pool, trips, availability, _ := newHandlers(t)

	owner := seedUser(t, pool, "owner-clear@example.com")
	trip := createTrip(t, trips, owner, "Clear trip")

	seed := dto.SubmitAvailabilityRequest{
		TripID: trip.ID,
		Ranges: []dto.DateRange{{StartDate: "2025-12-01", EndDate: "2025-12-03"}},
	}
	code := doJSON(t, availability.SubmitAvailability, http.MethodPost, "/vote/submit-availability", owner, seed, nil)
	require.Equal(t, http.StatusOK, code)

	// Submitting no ranges withdraws the previous submission entirely.
	var resp dto.SubmitAvailabilityResponse
	clear := dto.SubmitAvailabilityRequest{TripID: trip.ID, Ranges: []dto.DateRange{}}
	code = doJSON(t, availability.SubmitAvailability, http.MethodPost, "/vote/submit-availability", owner, clear, &resp)
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, resp.RangesSaved)

	var remaining int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(1) FROM availability_ranges WHERE trip_id = $1`, trip.ID).Scan(&remaining))
	assert.Zero(t, remaining)
}

func TestSubmitAvailabilityRejectsInvalidRangeAtomically(t *testing.T) {
	pool, trips, availability, _ := newHandlers(t)

	owner := seedUser(t, pool, "owner-badrange@example.com")
	trip := createTrip(t, trips, owner, "Mountain trip")

	req := dto.SubmitAvailabilityRequest{
		TripID: trip.ID,
		Ranges: []dto.DateRange{
			{StartDate: "2025-12-01", EndDate: "2025-12-02"},
			{StartDate: "2025-12-09", EndDate: "2025-12-05"}, // inverted
		},
	}
	code := doJSON(t, availability.SubmitAvailability, http.MethodPost, "/vote/submit-availability", owner, req, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Nothing was written, not even the valid first range.
	var saved int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(1) FROM availability_ranges WHERE trip_id = $1`, trip.ID).Scan(&saved))
	assert.Zero(t, saved)
}

func TestStartVotingConflictsWithActiveSession(t *testing.T) {
	pool, trips, _, voting := newHandlers(t)

	owner := seedUser(t, pool, "owner-vote@example.com")
	trip := createTrip(t, trips, owner, "Voting trip")

	req := dto.StartVotingRequest{TripID: trip.ID}

	var started dto.StartVotingResponse
	code := doJSON(t, voting.StartVoting, http.MethodPost, "/vote/start-voting", owner, req, &started)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "active", started.Status)

	// A second start while the first session is open must conflict.
	code = doJSON(t, voting.StartVoting, http.MethodPost, "/vote/start-voting", owner, req, nil)
	assert.Equal(t, http.StatusConflict, code)

	var closed dto.CloseVotingResponse
	code = doJSON(t, voting.CloseVoting, http.MethodPost, "/vote/close-voting", owner, dto.CloseVotingRequest{TripID: trip.ID}, &closed)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, started.VotingID, closed.VotingID)
	assert.Equal(t, "closed", closed.Status)

	// Closing again finds no active session.
	code = doJSON(t, voting.CloseVoting, http.MethodPost, "/vote/close-voting", owner, dto.CloseVotingRequest{TripID: trip.ID}, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStartVotingConcurrentStartsAllowOneWinner(t *testing.T) {
	pool, trips, _, voting := newHandlers(t)

	owner := seedUser(t, pool, "owner-race@example.com")
	member := seedUser(t, pool, "member-race@example.com")
	trip := createTrip(t, trips, owner, "Race trip")

	code := doJSON(t, trips.JoinByCode, http.MethodPost, "/trip/join", member,
		dto.JoinTripRequest{InviteCode: trip.InviteCode}, nil)
	require.Equal(t, http.StatusOK, code)

	// Two members race to open the session; the trip-row lock serializes
	// them and exactly one wins.
	req := dto.StartVotingRequest{TripID: trip.ID}
	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i, caller := range []uuid.UUID{owner, member} {
		wg.Add(1)
		go func(i int, caller uuid.UUID) {
			defer wg.Done()
			codes[i] = doJSON(t, voting.StartVoting, http.MethodPost, "/vote/start-voting", caller, req, nil)
		}(i, caller)
	}
	wg.Wait()

	sort.Ints(codes)
	assert.Equal(t, []int{http.StatusCreated, http.StatusConflict}, codes)

	var active int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(1) FROM date_voting_sessions WHERE trip_id = $1 AND status = 'active'`,
		trip.ID).Scan(&active))
	assert.Equal(t, 1, active)
}

func TestProvinceBallotRoundTrip(t *testing.T) {
	pool, trips, _, voting := newHandlers(t)

	owner := seedUser(t, pool, "owner-ballot@example.com")
	trip := createTrip(t, trips, owner, "Province trip")

	req := dto.SubmitProvincesRequest{
		TripID: trip.ID,
		Rankings: []dto.ProvinceRanking{
			{Province: "Chiang Mai", Rank: 1},
			{Province: "Phuket", Rank: 2},
		},
	}
	var saved dto.SubmitProvincesResponse
	code := doJSON(t, voting.SubmitProvinces, http.MethodPost, "/vote/submit-provinces", owner, req, &saved)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, saved.VotesSaved)

	var results dto.ProvinceResultsResponse
	code = doJSON(t, voting.ProvinceResults, http.MethodGet, "/vote/province-results/"+trip.ID, owner, nil, &results)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, results.Ballots)
	require.Len(t, results.Results, 2)
	assert.Equal(t, "Chiang Mai", results.Results[0].Province)
}

func TestNotificationEndpoints(t *testing.T) {
	pool, trips, _, _ := newHandlers(t)
	noti := handlers.NewNotificationsHandler(pool)
	dispatcher := handlers.NewDispatcher(pool, nil, nil)

	owner := seedUser(t, pool, "owner-noti@example.com")
	member := seedUser(t, pool, "member-noti@example.com")
	trip := createTrip(t, trips, owner, "Noti trip")
	tripID := uuid.MustParse(trip.ID)

	// One member_joined row from the join, then three more fan-outs with
	// the member as actor, so the owner holds four unread notifications.
	code := doJSON(t, trips.JoinByCode, http.MethodPost, "/trip/join", member,
		dto.JoinTripRequest{InviteCode: trip.InviteCode}, nil)
	require.Equal(t, http.StatusOK, code)
	for i := 0; i < 3; i++ {
		require.NoError(t, dispatcher.NotifyTripMembers(context.Background(),
			tripID, member, "trip_confirmed", trip.Name, "confirmed"))
	}

	t.Run("list defaults", func(t *testing.T) {
		var list dto.NotificationsListResponse
		code := doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti", owner, nil, &list)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, list.Notifications, 4)
		assert.Equal(t, 4, list.Pagination.Total)
		assert.Equal(t, 4, list.Pagination.UnreadCount)
		assert.Equal(t, 20, list.Pagination.Limit)
		assert.Equal(t, 0, list.Pagination.Offset)
	})

	t.Run("limit is clamped to 100", func(t *testing.T) {
		var list dto.NotificationsListResponse
		code := doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti?limit=500", owner, nil, &list)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 100, list.Pagination.Limit)
	})

	t.Run("bad limit and offset are rejected", func(t *testing.T) {
		code := doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti?limit=abc", owner, nil, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		code = doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti?limit=-1", owner, nil, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		code = doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti?offset=-2", owner, nil, nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("offset pages through", func(t *testing.T) {
		var list dto.NotificationsListResponse
		code := doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti?limit=2&offset=2", owner, nil, &list)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, list.Notifications, 2)
		assert.Equal(t, 4, list.Pagination.Total)
	})

	// Pick one of the owner's rows to drive the read/delete paths.
	var first dto.NotificationsListResponse
	code = doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti?limit=1", owner, nil, &first)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, first.Notifications)
	notiID := first.Notifications[0].ID
	readPath := "/noti/" + notiID + "/read"

	t.Run("mark read is scoped to the owning user", func(t *testing.T) {
		code := doJSON(t, noti.MarkRead, http.MethodPatch, readPath, member, nil, nil)
		assert.Equal(t, http.StatusNotFound, code, "another user's row must look absent")
	})

	t.Run("mark read then no-op retry", func(t *testing.T) {
		code := doJSON(t, noti.MarkRead, http.MethodPatch, readPath, owner, nil, nil)
		require.Equal(t, http.StatusOK, code)

		var retry dto.MessageResponse
		code = doJSON(t, noti.MarkRead, http.MethodPatch, readPath, owner, nil, &retry)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Notification already read", retry.Message)

		var count dto.UnreadCountResponse
		code = doJSON(t, noti.UnreadCount, http.MethodGet, "/noti/unread-count", owner, nil, &count)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 3, count.UnreadCount)
	})

	t.Run("unread only filter", func(t *testing.T) {
		var list dto.NotificationsListResponse
		code := doJSON(t, noti.ListNotifications, http.MethodGet, "/noti/get-noti?unread_only=true", owner, nil, &list)
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, list.Notifications, 3)
		assert.Equal(t, 3, list.Pagination.Total)
	})

	t.Run("read all", func(t *testing.T) {
		var resp struct {
			Message      string `json:"message"`
			UpdatedCount int64  `json:"updated_count"`
		}
		code := doJSON(t, noti.MarkAllRead, http.MethodPatch, "/noti/read-all", owner, nil, &resp)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, int64(3), resp.UpdatedCount)

		var count dto.UnreadCountResponse
		code = doJSON(t, noti.UnreadCount, http.MethodGet, "/noti/unread-count", owner, nil, &count)
		require.Equal(t, http.StatusOK, code)
		assert.Zero(t, count.UnreadCount)
	})

	t.Run("delete is scoped to the owning user", func(t *testing.T) {
		deletePath := "/noti/notifications/" + notiID

		code := doJSON(t, noti.DeleteNotification, http.MethodDelete, deletePath, member, nil, nil)
		assert.Equal(t, http.StatusNotFound, code)

		code = doJSON(t, noti.DeleteNotification, http.MethodDelete, deletePath, owner, nil, nil)
		require.Equal(t, http.StatusOK, code)

		// Deleting a row that is already gone reports not found.
		code = doJSON(t, noti.DeleteNotification, http.MethodDelete, deletePath, owner, nil, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestOwnerCannotBeRemoved(t *testing.T) {
	pool, trips, _, _ := newHandlers(t)

	owner := seedUser(t, pool, "owner-remove@example.com")
	trip := createTrip(t, trips, owner, "Remove test")

	var ownerMemberID uuid.UUID
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT id FROM trip_members WHERE trip_id = $1 AND role = 'owner'`, trip.ID).Scan(&ownerMemberID))

	path := fmt.Sprintf("/trip/%s/members/%s", trip.ID, ownerMemberID)
	code := doJSON(t, trips.TripScoped, http.MethodDelete, path, owner, nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatusTransitionsAreOneWayAndIdempotent(t *testing.T) {
	pool, trips, _, _ := newHandlers(t)

	owner := seedUser(t, pool, "owner-status@example.com")
	outsider := seedUser(t, pool, "outsider-status@example.com")
	trip := createTrip(t, trips, owner, "Status trip")

	confirm := "/trip/" + trip.ID + "/confirm"

	// Non-members may not drive transitions.
	code := doJSON(t, trips.TripScoped, http.MethodPost, confirm, outsider, nil, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code = doJSON(t, trips.TripScoped, http.MethodPost, confirm, owner, nil, nil)
	require.Equal(t, http.StatusOK, code)

	// Retrying the same transition is a no-op success.
	code = doJSON(t, trips.TripScoped, http.MethodPost, confirm, owner, nil, nil)
	assert.Equal(t, http.StatusOK, code)

	var status string
	var confirmedAt any
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT status, confirmed_at FROM trips WHERE id = $1`, trip.ID).Scan(&status, &confirmedAt))
	assert.Equal(t, "confirmed", status)
	assert.NotNil(t, confirmedAt)

	code = doJSON(t, trips.TripScoped, http.MethodPost, "/trip/"+trip.ID+"/complete", owner, nil, nil)
	require.Equal(t, http.StatusOK, code)

	code = doJSON(t, trips.TripScoped, http.MethodPost, "/trip/"+trip.ID+"/archive", owner, nil, nil)
	require.Equal(t, http.StatusOK, code)

	// Archived trips accept no further transitions.
	code = doJSON(t, trips.TripScoped, http.MethodPost, confirm, owner, nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
