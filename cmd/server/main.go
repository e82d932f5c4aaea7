package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/clients"
	"github.com/kuldeep27396/prime-backend/internal/config"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/handlers"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	"github.com/kuldeep27396/prime-backend/internal/repositories"
	"github.com/kuldeep27396/prime-backend/internal/routes"
	"github.com/kuldeep27396/prime-backend/internal/services"
	"github.com/kuldeep27396/prime-backend/internal/websocket"
	"github.com/kuldeep27396/prime-backend/internal/worker"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("pinging database")
	}
	cancel()

	dtos.RegisterCustomValidators()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	mentorRepo := repositories.NewMentorRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	roomRepo := repositories.NewVideoRoomRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	skillRepo := repositories.NewSkillAssessmentRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	// External clients and the room presence hub
	videoClient := clients.NewVideoClient(cfg.Video)
	emailClient := clients.NewEmailClient(cfg.Email)
	hub := websocket.NewHub()

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	mentorService := services.NewMentorService(mentorRepo, userRepo)
	notificationService := services.NewNotificationService(emailClient, userRepo)
	roomService := services.NewRoomService(roomRepo, sessionRepo, videoClient, hub)
	bookingService := services.NewBookingService(sessionRepo, mentorRepo, userRepo, roomService, notificationService)
	reviewService := services.NewReviewService(reviewRepo, sessionRepo)
	paymentService := services.NewPaymentService(paymentRepo, sessionRepo, mentorRepo,
		cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo, skillRepo, analyticsRepo)
	mentorHandler := handlers.NewMentorHandler(mentorService, reviewService)
	sessionHandler := handlers.NewSessionHandler(bookingService)
	roomHandler := handlers.NewRoomHandler(roomService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	companyHandler := handlers.NewCompanyHandler(companyRepo, jobRepo)
	emailHandler := handlers.NewEmailHandler(emailClient)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterPublicEndpoints(router,
		healthHandler, authHandler, mentorHandler, companyHandler,
		emailHandler, paymentHandler, webSocketHandler,
		roomRepo, sessionRepo, userRepo, mentorRepo,
		cfg.JWTSecret)
	routes.RegisterProtectedEndpoints(router,
		userHandler, mentorHandler, sessionHandler, roomHandler,
		reviewHandler, companyHandler, paymentHandler,
		cfg.JWTSecret)

	// Background reclamation of rooms whose session window elapsed
	workerCtx, stopWorker := context.WithCancel(context.Background())
	sweeper := worker.NewSweeper(roomService, time.Minute, 15*time.Minute)
	go sweeper.Run(workerCtx)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
