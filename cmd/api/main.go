package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/upk-it/helpdesk/internal/api/http"
	"github.com/upk-it/helpdesk/internal/api/http/handlers"
	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/config"
	"github.com/upk-it/helpdesk/internal/events"
	"github.com/upk-it/helpdesk/internal/mailer"
	"github.com/upk-it/helpdesk/internal/observability"
	"github.com/upk-it/helpdesk/internal/persistence"
	"github.com/upk-it/helpdesk/internal/ratelimit"
	"github.com/upk-it/helpdesk/internal/repository"
	"github.com/upk-it/helpdesk/internal/service"
	"github.com/upk-it/helpdesk/internal/storage"
	"github.com/upk-it/helpdesk/internal/worker"
)

const serviceVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	eventRepo := repository.NewTicketEventRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	metricsRepo := repository.NewMetricsRepository(pool)

	var limiter ratelimit.Limiter = ratelimit.NewNoop()
	if redis.Client != nil {
		limiter = ratelimit.NewRedis(redis.Client,
			cfg.Auth.LoginRateLimit,
			time.Duration(cfg.Auth.LoginRateWindowSec)*time.Second)
	}

	store, err := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		logger.Fatal("failed to init uploads dir", zap.Error(err))
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	dispatcher := events.NewInMemoryDispatcher()
	mail := mailer.New(cfg.SMTP, cfg.App.BaseURL, logger)

	authService := service.NewAuthService(userRepo, tokens, limiter, logger)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		EventRepo:      eventRepo,
		AttachmentRepo: attachmentRepo,
		UserRepo:       userRepo,
		Store:          store,
		Dispatcher:     dispatcher,
	})
	metricsService := service.NewMetricsService(metricsRepo)
	notificationService := service.NewNotificationService(dispatcher, mail, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(tokens, userRepo)

	appMetrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, appMetrics, cfg.App.RequestTimeout())
	app.Static(cfg.Uploads.BaseURL, cfg.Uploads.Dir)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, serviceVersion, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Users:          handlers.NewUsersHandler(userService),
		Profile:        handlers.NewProfileHandler(userService),
		Metrics:        handlers.NewMetricsHandler(metricsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
