package main

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"parkhub/internal/api"
	"parkhub/internal/auth"
	"parkhub/internal/cache"
	"parkhub/internal/config"
	"parkhub/internal/logger"
	"parkhub/internal/repository"
	"parkhub/internal/service"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open DB", logger.Error(err))
	}
	if err := database.Ping(); err != nil {
		log.Fatal("failed to connect to DB", logger.Error(err))
	}

	redisClient, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn("stats cache disabled", logger.Error(err))
		redisClient = nil
	}

	userRepo := repository.NewUserRepository(database)
	slotRepo := repository.NewSlotRepository(database)
	reservationRepo := repository.NewReservationRepository(database)
	statsRepo := repository.NewStatsRepository(database)
	jobRepo := repository.NewJobRepository(database)

	sender := service.NewSenderService(cfg, log)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	slotSvc := service.NewSlotService(slotRepo)
	reservationSvc := service.NewReservationService(reservationRepo, slotRepo, userRepo, sender, log)
	statsSvc := service.NewStatsService(statsRepo, redisClient, cfg.StatsCacheTTL, log)
	jobSvc := service.NewJobService(jobRepo, log)

	authHandler := api.NewAuthHandler(authSvc)
	slotHandler := api.NewSlotHandler(slotSvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	adminHandler := api.NewAdminHandler(statsSvc)

	mw := auth.NewMiddleware(cfg.JWTSecret)

	// The expiry sweep is what lets lapsed reservations catch up server-side:
	// consumers derive expiry locally and re-query after this flips the rows.
	c := cron.New()
	if _, err := c.AddFunc("@every "+cfg.ExpirySweep.String(), func() {
		if err := jobSvc.SweepExpiredReservations(); err != nil {
			log.Error("expiry sweep failed", logger.Error(err))
		}
	}); err != nil {
		log.Fatal("failed to schedule expiry sweep", logger.Error(err))
	}
	c.Start()
	defer c.Stop()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/slots", slotHandler.ListSlots).Methods("GET")

	// Authenticated endpoints
	user := r.PathPrefix("/api/reservations").Subrouter()
	user.Use(mw.Require)
	user.HandleFunc("", reservationHandler.CreateReservation).Methods("POST")
	user.HandleFunc("", reservationHandler.ListReservations).Methods("GET")
	user.HandleFunc("/{id}", reservationHandler.CancelReservation).Methods("DELETE")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/slots", slotHandler.CreateSlot).Methods("POST")
	admin.HandleFunc("/slots/{id}", slotHandler.DeleteSlot).Methods("DELETE")
	admin.HandleFunc("/admin/stats", adminHandler.GetStats).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Info("server running", logger.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, handlers.RecoveryHandler()(cors(r))); err != nil {
		log.Fatal("server stopped", logger.Error(err))
	}
}
