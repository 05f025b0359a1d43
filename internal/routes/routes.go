package routes

import (
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"TRIPMATE_BACK-END/internal/config"
	"TRIPMATE_BACK-END/internal/handlers"
	"TRIPMATE_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	googleAuthHandler *handlers.GoogleAuthHandler,
	tripsHandler *handlers.TripsHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	votingHandler *handlers.VotingHandler,
	notificationsHandler *handlers.NotificationsHandler,
	wsHandler *handlers.WSHandler,
) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/auth/google", googleAuthHandler.GoogleLogin)
	http.HandleFunc("/auth/google/login", googleAuthHandler.GoogleLoginURL)

	// Trip routes
	http.HandleFunc("/trip/AddTrip", middleware.AuthMiddleware(tripsHandler.CreateTrip, jwtCfg))
	http.HandleFunc("/trip/all-my-trips", middleware.AuthMiddleware(tripsHandler.ListMyTrips, jwtCfg))
	http.HandleFunc("/trip/DeleteTrip", middleware.AuthMiddleware(tripsHandler.DeleteTrip, jwtCfg))
	http.HandleFunc("/trip/join", middleware.AuthMiddleware(tripsHandler.JoinByCode, jwtCfg))
	http.HandleFunc("/trip/join-by-link", middleware.AuthMiddleware(tripsHandler.JoinByLink, jwtCfg))
	// Parameterized trip paths: detail, member removal, status transitions
	http.HandleFunc("/trip/", middleware.AuthMiddleware(tripsHandler.TripScoped, jwtCfg))

	// Voting routes
	http.HandleFunc("/vote/submit-availability", middleware.AuthMiddleware(availabilityHandler.SubmitAvailability, jwtCfg))
	http.HandleFunc("/vote/heatmap/", middleware.AuthMiddleware(availabilityHandler.Heatmap, jwtCfg))
	http.HandleFunc("/vote/start-voting", middleware.AuthMiddleware(votingHandler.StartVoting, jwtCfg))
	http.HandleFunc("/vote/close-voting", middleware.AuthMiddleware(votingHandler.CloseVoting, jwtCfg))
	http.HandleFunc("/vote/submit-provinces", middleware.AuthMiddleware(votingHandler.SubmitProvinces, jwtCfg))
	http.HandleFunc("/vote/province-results/", middleware.AuthMiddleware(votingHandler.ProvinceResults, jwtCfg))

	// Notification routes
	http.HandleFunc("/noti/get-noti", middleware.AuthMiddleware(notificationsHandler.ListNotifications, jwtCfg))
	http.HandleFunc("/noti/read-all", middleware.AuthMiddleware(notificationsHandler.MarkAllRead, jwtCfg))
	http.HandleFunc("/noti/unread-count", middleware.AuthMiddleware(notificationsHandler.UnreadCount, jwtCfg))
	http.HandleFunc("/noti/notifications/", middleware.AuthMiddleware(notificationsHandler.DeleteNotification, jwtCfg))
	// PATCH /noti/{id}/read
	http.HandleFunc("/noti/", middleware.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/read") {
			notificationsHandler.MarkRead(w, r)
			return
		}
		http.NotFound(w, r)
	}, jwtCfg))

	// Notification push socket (token authenticated in the handler)
	http.HandleFunc("/ws", wsHandler.Serve)

	// Swagger documentation
	http.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("TripMate backend is running."))
}
