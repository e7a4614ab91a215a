package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/daydone/backend/api/handler"
	"github.com/daydone/backend/internal/config"
	"github.com/daydone/backend/internal/infrastructure/kv"
	"github.com/daydone/backend/internal/infrastructure/monitor"
	"github.com/daydone/backend/internal/infrastructure/notifier"
	pgInfra "github.com/daydone/backend/internal/infrastructure/postgres"
	redisInfra "github.com/daydone/backend/internal/infrastructure/redis"
	"github.com/daydone/backend/internal/middleware"
	"github.com/daydone/backend/internal/router"
	"github.com/daydone/backend/internal/services"
	"github.com/daydone/backend/internal/services/lifecycle"
	"github.com/daydone/backend/pkg/httpcontext"
	"github.com/daydone/backend/pkg/logger"
	"github.com/daydone/backend/repository"
	boltRepo "github.com/daydone/backend/repository/bolt"
	pgRepo "github.com/daydone/backend/repository/postgres"
	redisRepo "github.com/daydone/backend/repository/redis"
	authUC "github.com/daydone/backend/usecase/auth"
	"github.com/daydone/backend/usecase/notify"
	"github.com/daydone/backend/usecase/report"
	"github.com/daydone/backend/usecase/settings"
	"github.com/daydone/backend/usecase/stats"
	todoUC "github.com/daydone/backend/usecase/todo"

	"github.com/jackc/pgx/v5/pgxpool"
	goRedis "github.com/redis/go-redis/v9"
)

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

	store, err := kv.Open(cfg.Storage.BoltPath)
	if err != nil {
		zapLogger.Fatal("failed to open bolt store", zap.Error(err))
	}
	manager.RegisterCloser("bolt", store)

	var pool *pgxpool.Pool
	if cfg.UsesPostgres() {
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
		pool, err = pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
	}

	var redisClient *goRedis.Client
	if cfg.UsesRedis() {
		redisClient, err = redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.RegisterCloser("redis", redisClient)
	}

	mon := monitor.New(store, pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	var todoRepo repository.TodoRepository
	if cfg.UsesPostgres() {
		todoRepo = pgRepo.NewTodoRepository(pool)
	} else {
		todoRepo = boltRepo.NewTodoRepository(store)
	}

	var stateStore repository.StateStore
	if cfg.UsesRedis() {
		stateStore = redisRepo.NewStateStore(redisClient)
	} else {
		stateStore = boltRepo.NewStateStore(store)
	}

	todoService := todoUC.New(todoRepo, zapLogger)
	if err := todoService.Load(appCtx); err != nil {
		zapLogger.Fatal("failed to load todos", zap.Error(err))
	}

	tracker := stats.NewTracker(stateStore, zapLogger)
	settingsService := settings.New(stateStore, zapLogger)

	var sink notify.Notifier = notifier.NewLog(zapLogger)
	if cfg.Notify.WebhookURL != "" {
		sink = notifier.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.WebhookTimeout, zapLogger)
	}
	engine := notify.New(todoService, settingsService, stateStore, sink, cfg.Notify.DueWindow, zapLogger)

	// Order matters: streak state must be current before notifications fire.
	todoService.Subscribe(tracker)
	todoService.Subscribe(engine)

	reportService := report.New(todoService, tracker, zapLogger)
	authUseCase := authUC.New(cfg.Auth.AccessKey, cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, zapLogger)

	checker := services.NewDueChecker(engine, zapLogger, services.CheckerConfig{
		Interval: cfg.Notify.PollInterval,
	})
	checker.Start()
	manager.Register("due_checker", func(ctx context.Context) error {
		checker.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Todo:     apiHandler.NewTodoHandler(todoService, reportService, ctxAdapter, zapLogger),
		Report:   apiHandler.NewReportHandler(reportService, ctxAdapter, zapLogger),
		Settings: apiHandler.NewSettingsHandler(settingsService, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	var secret string
	if authUseCase.Enabled() {
		secret = authUseCase.Secret()
	}
	authMiddleware := middleware.JWTAuth(secret, zapLogger)
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
