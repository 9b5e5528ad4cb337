package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KoustavFrost/devconnector/internal/adapters/cache"
	eventadapter "github.com/KoustavFrost/devconnector/internal/adapters/events"
	httpadapter "github.com/KoustavFrost/devconnector/internal/adapters/http"
	"github.com/KoustavFrost/devconnector/internal/adapters/postgres"
	"github.com/KoustavFrost/devconnector/internal/adapters/security"
	"github.com/KoustavFrost/devconnector/internal/application"
	"github.com/KoustavFrost/devconnector/internal/ports"
)

// Runtime holds the shared dependencies of both binaries. Servers and
// listeners are created inside RunAPI/RunWorker so the worker never touches
// the API's ports.
type Runtime struct {
	cfg       Config
	logger    *slog.Logger
	router    http.Handler
	outbox    *eventadapter.OutboxWorker
	cleanupFn func()
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	redisClient, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	cacheStore := cache.NewRedisCache(redisClient)

	var signer *security.JWTSigner
	if cfg.JWTSecret != "" {
		signer, err = security.NewJWTSigner(cfg.JWTSecret)
	} else {
		logger.WarnContext(ctx, "no jwt secret configured, using ephemeral signing secret")
		signer, err = security.NewEphemeralJWTSigner()
	}
	if err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	repos := postgres.NewRepositories(db)
	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:                cfg.ServiceID,
			TokenTTL:                   cfg.TokenTTL,
			ProfileCacheTTL:            cfg.ProfileCacheTTL,
			RegisterRateLimitThreshold: cfg.RegisterRateLimitThreshold,
			RegisterRateLimitWindow:    cfg.RegisterRateLimitWindow,
		},
		Users:    repos.Users,
		Profiles: repos.Profiles,
		Hasher:   security.NewBcryptHasher(cfg.BcryptCost),
		Signer:   signer,
		Cache:    cacheStore,
	})
	router := httpadapter.NewRouter(httpadapter.NewHandler(service))

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	var closers []io.Closer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"user.registered": cfg.KafkaTopicUserRegistered,
			"user.deleted":    cfg.KafkaTopicUserDeleted,
			"profile.updated": cfg.KafkaTopicProfileUpdated,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}
	outbox := eventadapter.NewOutboxWorker(logger, repos.Outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)

	return &Runtime{
		cfg:    cfg,
		logger: logger,
		router: router,
		outbox: outbox,
		cleanupFn: func() {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

// RunAPI serves HTTP and the grpc health endpoint until a signal arrives.
func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.cleanupFn()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", r.cfg.HTTPPort),
		Handler:           r.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", r.cfg.GRPCPort))
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	return nil
}

// RunWorker drains the outbox until a signal arrives. It binds no ports, so
// api and worker can share a host with the default config.
func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.cleanupFn()

	err := r.outbox.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
