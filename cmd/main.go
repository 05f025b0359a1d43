// @title TripMate Backend API
// @version 1.0
// @description TripMate Backend API for group trip planning
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/cors"

	_ "TRIPMATE_BACK-END/docs" // This is required for swagger
	"TRIPMATE_BACK-END/internal/config"
	"TRIPMATE_BACK-END/internal/handlers"
	"TRIPMATE_BACK-END/internal/routes"
	"TRIPMATE_BACK-END/internal/utils"
	"TRIPMATE_BACK-END/internal/ws"
	"TRIPMATE_BACK-END/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// pgxpool + simple protocol (needed when connecting through PgBouncer)
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "tripmate-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000" // 30s
	poolCfg.MaxConns = 5
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	if err := runMigrations(pool); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// --- Notification plumbing ---

	hub := ws.NewHub()
	go hub.Run()

	var emailService *utils.EmailService
	if cfg.IsEmailConfigured() {
		emailService = utils.NewEmailService(&cfg.Email)
	} else {
		log.Println("SMTP not configured, e-mail notifications disabled")
	}
	dispatcher := handlers.NewDispatcher(pool, emailService, hub)

	// --- HTTP Handlers ---

	healthHandler := handlers.NewHealthHandler(pool)
	googleAuthHandler := handlers.NewGoogleAuthHandler(pool, cfg)
	tripsHandler := handlers.NewTripsHandler(pool, cfg, dispatcher)
	availabilityHandler := handlers.NewAvailabilityHandler(pool)
	votingHandler := handlers.NewVotingHandler(pool)
	notificationsHandler := handlers.NewNotificationsHandler(pool)
	wsHandler := handlers.NewWSHandler(hub, cfg)

	// Setup all routes
	routes.SetupRoutes(cfg, healthHandler, googleAuthHandler, tripsHandler,
		availabilityHandler, votingHandler, notificationsHandler, wsHandler)

	// --- HTTP Server + Graceful Shutdown ---

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	// Wrap the default mux with CORS
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}

// runMigrations applies the embedded goose migrations through a
// database/sql handle borrowed from the pgx pool.
func runMigrations(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return goose.UpContext(ctx, db, ".")
}
