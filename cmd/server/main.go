package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/swolemates/backend/api/handler"
	"github.com/swolemates/backend/internal/config"
	"github.com/swolemates/backend/internal/infrastructure/monitor"
	"github.com/swolemates/backend/internal/infrastructure/outbox"
	pgInfra "github.com/swolemates/backend/internal/infrastructure/postgres"
	redisInfra "github.com/swolemates/backend/internal/infrastructure/redis"
	"github.com/swolemates/backend/internal/messaging"
	"github.com/swolemates/backend/internal/metrics"
	"github.com/swolemates/backend/internal/middleware"
	"github.com/swolemates/backend/internal/router"
	"github.com/swolemates/backend/internal/services"
	"github.com/swolemates/backend/internal/services/lifecycle"
	"github.com/swolemates/backend/pkg/httpcontext"
	"github.com/swolemates/backend/pkg/logger"
	"github.com/swolemates/backend/repository/postgres"
	redisRepo "github.com/swolemates/backend/repository/redis"
	authUC "github.com/swolemates/backend/usecase/auth"
	chatUC "github.com/swolemates/backend/usecase/chat"
	gymUC "github.com/swolemates/backend/usecase/gym"
	matchingUC "github.com/swolemates/backend/usecase/matching"
	notificationUC "github.com/swolemates/backend/usecase/notification"
	profileUC "github.com/swolemates/backend/usecase/profile"
	workoutUC "github.com/swolemates/backend/usecase/workout"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	metrics.Register()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	// The broker is optional: without it notifications are persisted only
	// and clients pick them up by polling.
	natsClient, err := messaging.NewNATSClient(cfg.NATS, zapLogger)
	if err != nil {
		zapLogger.Warn("nats unavailable, realtime push disabled", zap.Error(err))
		natsClient = nil
	} else {
		manager.Register("nats", func(ctx context.Context) error {
			return natsClient.Close()
		})
	}

	outboxStore, err := outbox.Open(cfg.Outbox.Path, "notifications")
	if err != nil {
		zapLogger.Fatal("failed to open outbox store", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return outboxStore.Close()
	})

	mon := monitor.New(pool, redisClient, natsClient, outboxStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	gymRepo := postgres.NewGymRepository(pool)
	workoutRepo := postgres.NewWorkoutRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)
	pairLock := redisRepo.NewPairLock(redisClient, cfg.Matching.PairLockTTL, cfg.Matching.PairLockRetries)
	profileCache := redisRepo.NewProfileCache(redisClient, cfg.Matching.CacheTTL)

	var publisher services.RealtimePublisher
	if natsClient != nil {
		publisher = natsClient
	}
	dispatcher := services.NewNotificationDispatcher(
		outboxStore,
		mon,
		notificationRepo,
		publisher,
		zapLogger,
		services.DispatcherConfig{
			Interval:   cfg.Outbox.DrainInterval,
			BatchSize:  cfg.Outbox.BatchSize,
			MaxRetries: cfg.Outbox.MaxRetry,
		},
	)
	dispatcher.Start()
	manager.Register("notification_dispatcher", func(ctx context.Context) error {
		dispatcher.Stop(ctx)
		return nil
	})

	statsReset := services.NewStatsResetJob(userRepo, zapLogger)
	statsReset.Start()
	manager.Register("stats_reset", func(ctx context.Context) error {
		statsReset.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	profileUseCase := profileUC.New(userRepo, profileCache, zapLogger)
	matchingUseCase := matchingUC.New(userRepo, profileCache, pairLock, dispatcher, zapLogger, matchingUC.Config{
		RadiusKm:       cfg.Matching.RadiusKm,
		CandidateLimit: cfg.Matching.CandidateLimit,
		PoolLimit:      cfg.Matching.PoolLimit,
	})
	chatUseCase := chatUC.New(messageRepo, userRepo, dispatcher, zapLogger)
	workoutUseCase := workoutUC.New(workoutRepo, userRepo, profileCache, dispatcher, zapLogger)
	gymUseCase := gymUC.New(gymRepo, zapLogger)
	notificationUseCase := notificationUC.New(notificationRepo)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:          apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile:       apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Match:         apiHandler.NewMatchHandler(matchingUseCase, ctxAdapter, zapLogger),
		Chat:          apiHandler.NewChatHandler(chatUseCase, ctxAdapter, zapLogger),
		Workout:       apiHandler.NewWorkoutHandler(workoutUseCase, ctxAdapter, zapLogger),
		Gym:           apiHandler.NewGymHandler(gymUseCase, cfg.Matching.GymRadiusKm, ctxAdapter, zapLogger),
		Notification:  apiHandler.NewNotificationHandler(notificationUseCase, ctxAdapter, zapLogger),
		Health:        apiHandler.NewHealthHandler(mon, version, ctxAdapter, zapLogger),
		EnableMetrics: cfg.HTTP.EnableMetrics,
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
