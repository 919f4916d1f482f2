package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/foundersof404/404founders/internal/admin"
	"github.com/foundersof404/404founders/internal/auth"
	"github.com/foundersof404/404founders/internal/config"
	"github.com/foundersof404/404founders/internal/contact"
	"github.com/foundersof404/404founders/internal/db"
	"github.com/foundersof404/404founders/internal/health"
	"github.com/foundersof404/404founders/internal/logger"
	"github.com/foundersof404/404founders/internal/messaging"
	"github.com/foundersof404/404founders/internal/metrics"
	"github.com/foundersof404/404founders/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	engine   *gin.Engine
	server   *http.Server
	db       *bun.DB
	producer *messaging.Producer
	logger   *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext("contact-service", Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	database := db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database, (*admin.Administrator)(nil), (*contact.Contact)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}
	if err := contact.MigrateSchema(ctx, database); err != nil {
		log.Fatal("failed to migrate contacts schema:", err)
	}

	m, err := metrics.New(otel.Meter("contact-service"))
	if err != nil {
		log.Fatal("failed to initialize metrics:", err)
	}

	// Seed the default operator; an existing account is a silent no-op
	adminRepo := admin.NewRepository(database, slogLogger)
	if err := adminRepo.EnsureDefaultAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("failed to ensure default admin:", err)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	authService := auth.NewService(adminRepo, tokens)
	authHandler := auth.NewHandler(authService, slogLogger, m)

	// NATS producer setup (optional, contact events only)
	var producer *messaging.Producer
	var notifier contact.Notifier
	if cfg.NATS.URL != "" {
		producer, err = messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
			producer = nil
		} else {
			notifier = producer
		}
	}

	contactRepo := contact.NewRepository(database)
	contactService := contact.NewService(contactRepo, notifier, slogLogger)
	contactHandler := contact.NewHandler(contactService, slogLogger, m)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Public endpoints
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(engine)
	authHandler.RegisterRoutes(engine)
	contactHandler.RegisterRoutes(engine)

	// Admin endpoints behind token verification
	adminGroup := engine.Group("/api/admin")
	adminGroup.Use(auth.Middleware(tokens, slogLogger))
	authHandler.RegisterProtectedRoutes(adminGroup)
	contactHandler.RegisterAdminRoutes(adminGroup)

	slogLogger.Info("application initialized successfully")

	return &App{
		config:   cfg,
		engine:   engine,
		db:       database,
		producer: producer,
		logger:   slogLogger,
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", a.config.Server.Port),
		Handler: a.engine,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}

	if a.producer != nil {
		_ = a.producer.Close()
	}
	db.Close(a.db)

	return nil
}
