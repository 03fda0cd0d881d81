// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/coursekit/internal/admin"
	"github.com/carterperez-dev/coursekit/internal/config"
	"github.com/carterperez-dev/coursekit/internal/core"
	"github.com/carterperez-dev/coursekit/internal/course"
	"github.com/carterperez-dev/coursekit/internal/dashboard"
	"github.com/carterperez-dev/coursekit/internal/health"
	"github.com/carterperez-dev/coursekit/internal/identity"
	"github.com/carterperez-dev/coursekit/internal/media"
	"github.com/carterperez-dev/coursekit/internal/middleware"
	"github.com/carterperez-dev/coursekit/internal/progress"
	"github.com/carterperez-dev/coursekit/internal/purchase"
	"github.com/carterperez-dev/coursekit/internal/server"
	"github.com/carterperez-dev/coursekit/internal/sweep"
	"github.com/carterperez-dev/coursekit/internal/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting",
		"app", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close() //nolint:errcheck // shutdown path

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer rdb.Close() //nolint:errcheck // shutdown path

	provider := identity.NewHTTPProvider(cfg.Identity)
	gate := middleware.NewGate(cfg.Admin.UserID)

	userRepo := user.NewRepository(db)
	courseRepo := course.NewRepository(db)
	purchaseRepo := purchase.NewRepository(db)
	progressRepo := progress.NewRepository(db)

	mirror := identity.NewMirror(provider, userRepo, cfg.Admin.UserID)
	sweeper := sweep.NewSweeper(userRepo, progressRepo, logger)

	userService := user.NewService(userRepo, courseRepo, mirror, logger)
	courseService := course.NewService(courseRepo, sweeper, purchaseRepo, logger)
	purchaseService := purchase.NewService(
		db, purchaseRepo, courseRepo, userRepo, userRepo, logger,
	)
	progressService := progress.NewService(progressRepo, userRepo)
	dashboardService := dashboard.NewService(
		userRepo, courseRepo, purchaseRepo, logger,
	)

	mediaStore, err := media.NewDiskStore(cfg.Media)
	if err != nil {
		return fmt.Errorf("init media store: %w", err)
	}

	userHandler := user.NewHandler(userService)
	courseHandler := course.NewHandler(courseService, gate)
	purchaseHandler := purchase.NewHandler(purchaseService)
	progressHandler := progress.NewHandler(progressService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	mediaHandler := media.NewHandler(mediaStore, cfg.Media)
	adminHandler := admin.NewHandler(db, rdb, cfg.App.Version)
	webhookHandler := identity.NewWebhookHandler(
		userRepo,
		cfg.Identity.WebhookSecret,
	)

	healthHandler := health.NewHandler(db, rdb, provider)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	r := srv.Router()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(r)
	webhookHandler.RegisterRoutes(r)

	r.Handle("/media/*", http.StripPrefix(
		"/media/",
		http.FileServer(http.Dir(cfg.Media.Dir)),
	))

	publicLimiter := middleware.NewRateLimiter(rdb.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
		),
		KeyFunc:  middleware.KeyByIP,
		FailOpen: true,
	})

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Handler)
			courseHandler.RegisterPublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(provider))
			r.Use(middleware.RoleRateLimiter(
				rdb.Client,
				gate,
				middleware.DefaultRoleBudgets,
			))

			userHandler.RegisterRoutes(r)
			progressHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(gate.RequireInstructor)
				courseHandler.RegisterInstructorRoutes(r)
				purchaseHandler.RegisterInstructorRoutes(r)
				mediaHandler.RegisterInstructorRoutes(r)
				dashboardHandler.RegisterInstructorRoutes(r)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(gate.RequireAdminCandidate)
					userHandler.RegisterBootstrapRoute(r)
				})

				r.Group(func(r chi.Router) {
					r.Use(gate.RequireAdmin)
					userHandler.RegisterAdminRoutes(r)
					courseHandler.RegisterAdminRoutes(r)
					purchaseHandler.RegisterAdminRoutes(r)
					dashboardHandler.RegisterAdminRoutes(r)
					adminHandler.RegisterRoutes(r)
				})
			})
		})
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, 5*time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
