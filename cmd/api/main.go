package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Ritik-rajput786/internfinder/internal/api/http"
	"github.com/Ritik-rajput786/internfinder/internal/api/http/handlers"
	"github.com/Ritik-rajput786/internfinder/internal/auth"
	"github.com/Ritik-rajput786/internfinder/internal/config"
	"github.com/Ritik-rajput786/internfinder/internal/events"
	"github.com/Ritik-rajput786/internfinder/internal/gateway"
	"github.com/Ritik-rajput786/internfinder/internal/observability"
	"github.com/Ritik-rajput786/internfinder/internal/persistence"
	"github.com/Ritik-rajput786/internfinder/internal/repository"
	"github.com/Ritik-rajput786/internfinder/internal/service"
	"github.com/Ritik-rajput786/internfinder/internal/storage"
	"github.com/Ritik-rajput786/internfinder/internal/worker"
)

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

	resumeStore, err := storage.NewLocalResumeStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes())
	if err != nil {
		logger.Fatal("failed to init resume store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	providers := []gateway.Provider{
		gateway.NewRemotiveProvider(cfg.Gateway.RemotiveURL),
		gateway.NewArbeitnowProvider(cfg.Gateway.ArbeitnowURL),
	}
	externalGateway := gateway.NewAggregator(providers, redis,
		cfg.Gateway.CacheTTL(), cfg.Gateway.Timeout(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    jobRepo,
		External:   externalGateway,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
		ResumeStore:     resumeStore,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	companyService := service.NewCompanyService()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Upload.MaxSizeBytes()) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService, resumeStore),
		Companies:      handlers.NewCompaniesHandler(companyService),
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
