// Package main is the entry point of the internship placement service.
//
// The architecture follows Clean Architecture and DDD:
//   - Domain: lifecycle rules with no external dependencies
//   - Application: use-case orchestration (Commands/Queries/Sagas)
//   - Infrastructure: postgres persistence, redis cache, messaging
//   - Interface: HTTP API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/intern-hub/intern-placement-hub/config"
	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/application/query"
	"github.com/intern-hub/intern-placement-hub/internal/application/saga"
	"github.com/intern-hub/intern-placement-hub/internal/infrastructure/messaging"
	"github.com/intern-hub/intern-placement-hub/internal/infrastructure/persistence/postgres"
	"github.com/intern-hub/intern-placement-hub/internal/infrastructure/persistence/redis"
	"github.com/intern-hub/intern-placement-hub/internal/infrastructure/service"
	httpserver "github.com/intern-hub/intern-placement-hub/internal/interface/http"
	"github.com/intern-hub/intern-placement-hub/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. Configuration
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. Logging
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(string(cfg.App.Environment), cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	log.Info("starting intern placement hub",
		zap.String("env", string(cfg.App.Environment)),
		zap.String("log_level", cfg.App.LogLevel),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. PostgreSQL
	// ─────────────────────────────────────────────────────────────────────────
	dbCfg := postgres.DefaultConfig()
	dbCfg.Host = cfg.Database.Host
	dbCfg.Port = cfg.Database.Port
	dbCfg.Database = cfg.Database.Name
	dbCfg.User = cfg.Database.User
	dbCfg.Password = cfg.Database.Password
	dbCfg.SSLMode = cfg.Database.SSLMode
	dbCfg.MaxConns = cfg.Database.MaxConns
	dbCfg.MinConns = cfg.Database.MinConns
	dbCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	log.Info("connecting to database")
	dbConn, err := postgres.NewConnection(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbConn.Close()

	if cfg.Database.AutoMigrate {
		log.Info("running database migrations")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. Event bus
	// ─────────────────────────────────────────────────────────────────────────
	eventBus := messaging.NewInMemoryEventBus(cfg.EventBus.Workers, log)
	defer func() { _ = eventBus.Close() }()

	// ─────────────────────────────────────────────────────────────────────────
	// 5. Redis (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var internCache query.InternCache
	if !cfg.Redis.Disabled {
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns

		log.Info("connecting to redis")
		cache, err := redis.NewCache(ctx, redisCfg)
		if err != nil {
			log.Warn("redis unavailable, intern caching disabled", zap.Error(err))
		} else {
			defer cache.Close()
			ic := redis.NewInternCache(cache, cfg.Redis.InternTTL, log)
			internCache = ic
			if err := eventBus.SubscribeAll(ic.InvalidationHandler(ctx)); err != nil {
				return fmt.Errorf("failed to subscribe cache invalidation: %w", err)
			}
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. Notifications
	// ─────────────────────────────────────────────────────────────────────────
	var notifier command.Notifier
	if cfg.Kafka.Disabled {
		notifier = messaging.NopNotifier{}
	} else {
		kafkaCfg := messaging.DefaultKafkaConfig()
		kafkaCfg.Brokers = cfg.Kafka.Brokers
		kafkaCfg.WriteTimeout = cfg.Kafka.WriteTimeout
		kafkaCfg.MaxAttempts = cfg.Kafka.MaxAttempts

		kafkaNotifier := messaging.NewKafkaNotifier(kafkaCfg, log)
		defer func() { _ = kafkaNotifier.Close() }()
		notifier = kafkaNotifier
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. Supporting services
	// ─────────────────────────────────────────────────────────────────────────
	accountIssuer := service.NewLocalAccountIssuer()
	idGen := service.NewUUIDGenerator()
	documents := service.NewDocumentRegistry(log)
	if err := eventBus.SubscribeAll(documents.TrackingHandler(ctx)); err != nil {
		return fmt.Errorf("failed to subscribe document tracking: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. Application layer
	// ─────────────────────────────────────────────────────────────────────────
	uowFactory := postgres.NewUnitOfWorkFactory(dbConn)

	applicationRepo := postgres.NewApplicationRepository(dbConn)
	candidateRepo := postgres.NewCandidateRepository(dbConn)
	internRepo := postgres.NewInternRepository(dbConn)
	submissionRepo := postgres.NewSubmissionRepository(dbConn)

	deps := httpserver.Dependencies{
		CreateApplication:  command.NewCreateApplicationHandler(uowFactory, idGen, eventBus),
		UpdateApplication:  command.NewUpdateApplicationHandler(uowFactory),
		SubmitApplication:  command.NewSubmitApplicationHandler(uowFactory, notifier, eventBus),
		ReviewApplication:  command.NewReviewApplicationHandler(uowFactory, notifier, eventBus),
		ArchiveApplication: command.NewArchiveApplicationHandler(uowFactory, eventBus),

		AddCandidate:    command.NewAddCandidateHandler(uowFactory, idGen, eventBus),
		UpdateCandidate: command.NewUpdateCandidateHandler(uowFactory, eventBus),
		RemoveCandidate: command.NewRemoveCandidateHandler(uowFactory, eventBus),
		ReviewCandidate: command.NewReviewCandidateHandler(uowFactory, notifier, eventBus),

		AssignIntern:        command.NewAssignInternHandler(uowFactory, eventBus),
		UpdateInternProfile: command.NewUpdateInternProfileHandler(uowFactory, eventBus),
		SuspendIntern:       command.NewSuspendInternHandler(uowFactory, eventBus),
		UnsuspendIntern:     command.NewUnsuspendInternHandler(uowFactory, eventBus),
		CompleteIntern:      command.NewCompleteInternHandler(uowFactory, notifier, eventBus),
		TerminateIntern:     command.NewTerminateInternHandler(uowFactory, eventBus),
		IssueCertificate:    command.NewIssueCertificateHandler(uowFactory, notifier, eventBus),

		CreateSubmission: command.NewCreateSubmissionHandler(uowFactory, idGen, eventBus),
		ReviewSubmission: command.NewReviewSubmissionHandler(uowFactory, notifier, eventBus),

		Promotion: saga.NewPromotionSaga(uowFactory, accountIssuer, notifier, eventBus, idGen),

		GetApplication:   query.NewGetApplicationHandler(applicationRepo, candidateRepo),
		ListApplications: query.NewListApplicationsHandler(applicationRepo),
		GetIntern:        query.NewGetInternHandler(internRepo, internCache),
		ListInterns:      query.NewListInternsHandler(internRepo),
		ListSubmissions:  query.NewListSubmissionsHandler(submissionRepo),

		HealthChecker: &healthChecker{db: dbConn},

		Logger: log,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	httpCfg := httpserver.DefaultConfig()
	httpCfg.Host = cfg.HTTP.Host
	httpCfg.Port = cfg.HTTP.Port
	httpCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	httpCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	httpCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	httpCfg.RequestTimeout = cfg.HTTP.RequestTimeout

	server := httpserver.NewServer(httpCfg, deps)
	serverErrCh := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 10. Graceful shutdown
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}

	log.Info("service stopped")
	return nil
}

// healthChecker probes the dependencies readiness depends on.
type healthChecker struct {
	db *postgres.Connection
}

func (h *healthChecker) Check(ctx context.Context) map[string]error {
	return map[string]error{
		"postgres": h.db.Ping(ctx),
	}
}
