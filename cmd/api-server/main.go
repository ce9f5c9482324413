package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"libraryhub/database"
	"libraryhub/internal/config"
	"libraryhub/internal/events"
	"libraryhub/internal/logger"
	"libraryhub/internal/microservices/http-api/handler"
	"libraryhub/internal/microservices/http-api/middleware"
	"libraryhub/internal/microservices/http-api/repository"
	"libraryhub/internal/microservices/http-api/server"
	"libraryhub/internal/microservices/http-api/service"
	"libraryhub/internal/microservices/websocket"
	"libraryhub/internal/middleware/auth"
	"libraryhub/internal/observability"
)

// @title        LibraryHub API
// @version      1.0
// @description  Book catalog with borrow and return.
// @BasePath     /
func main() {
	if err := run(); err != nil {
		slog.Error("api server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	var publishers events.Fanout
	if cfg.RedisURL != "" {
		rp, err := events.NewRedisPublisher(ctx, cfg.RedisURL, cfg.LoanEventsChannel)
		if err != nil {
			return err
		}
		publishers = append(publishers, rp)
		log.Info("publishing loan events", slog.String("channel", cfg.LoanEventsChannel))
	}

	var loanFeed *websocket.Handler
	if cfg.LoanFeedEnabled {
		hub := websocket.NewHub(log)
		go hub.Run(ctx)
		publishers = append(publishers, hub)
		loanFeed = websocket.NewHandler(hub, cfg.CORSOrigins)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(publishers) > 0 {
		publisher = publishers
	}
	defer publisher.Close()

	var metrics *observability.Metrics
	var recorder service.LoanRecorder
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics("libraryhub")
		recorder = metrics
	}

	bookRepo := repository.NewBookRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	loanRepo := repository.NewLoanRepository(db.DB)

	lending := service.NewLendingService(loanRepo, publisher, recorder, log)
	bookSvc := service.NewBookService(bookRepo)
	userSvc := service.NewUserService(userRepo, lending)

	health := handler.NewHealthHandler(db)

	var authenticator middleware.TokenValidator
	if cfg.AuthEnabled {
		authenticator = auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)
	}

	router := server.NewRouter(server.RouterConfig{
		Config:        cfg,
		Logger:        log,
		Books:         handler.NewBookHandler(bookSvc, cfg.RequestTimeout),
		Users:         handler.NewUserHandler(userSvc, cfg.RequestTimeout),
		Health:        health,
		LoanFeed:      loanFeed,
		Metrics:       metrics,
		Authenticator: authenticator,
	})

	srv := server.New(cfg.HTTPAddr(), router, cfg.RequestTimeout, log)
	health.SetReady(true)

	err = srv.Run(ctx, cfg.ShutdownTimeout)
	health.SetReady(false)
	log.Info("shutdown complete")
	return err
}
