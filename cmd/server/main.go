package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"taskvoice/internal/config"
	"taskvoice/internal/dialog"
	"taskvoice/internal/handlers"
	"taskvoice/internal/logger"
	"taskvoice/internal/middleware"
	"taskvoice/internal/session"
	"taskvoice/internal/telemetry"
	"taskvoice/internal/ticktick"
	"taskvoice/internal/vocab"
)

const serviceName = "taskvoice"

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewProductionLogger(*debugMode || cfg.ServerDebugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("session_backend", cfg.SessionBackend),
		zap.Bool("debug", *debugMode || cfg.ServerDebugMode))

	ctx := context.Background()

	var tracerShutdown func(context.Context) error
	if cfg.OTELEnabled {
		tp, err := telemetry.InitTracer(ctx, serviceName, cfg.OTELEndpoint)
		if err != nil {
			zapLogger.Fatal("failed to initialize tracer", zap.Error(err))
		}
		tracerShutdown = func(ctx context.Context) error {
			return telemetry.Shutdown(ctx, tp)
		}
		zapLogger.Info("tracing enabled", zap.String("endpoint", cfg.OTELEndpoint))
	}

	// The redis client is shared between the session store and the rate
	// limiter when the redis backend is selected.
	var redisClient *redis.Client
	if cfg.SessionBackend == config.SessionBackendRedis {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed to parse redis URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zapLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
	}

	store, err := buildSessionStore(cfg, redisClient)
	if err != nil {
		zapLogger.Fatal("failed to initialize session store", zap.Error(err))
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	vocabSets, err := buildVocab(cfg)
	if err != nil {
		zapLogger.Fatal("failed to load vocabulary", zap.Error(err))
	}

	clientOpts := []ticktick.Option{
		ticktick.WithHTTPClient(&http.Client{Timeout: cfg.TickTickTimeout}),
	}
	if cfg.TickTickBaseURL != "" {
		clientOpts = append(clientOpts, ticktick.WithBaseURL(cfg.TickTickBaseURL))
	}
	clientFactory := func(accessToken string) dialog.TaskClient {
		return ticktick.NewClient(accessToken, clientOpts...)
	}

	engine := dialog.NewEngine(store, clientFactory, vocabSets, zapLogger,
		dialog.WithMatchThreshold(cfg.MatchThreshold),
		dialog.WithMaxConfirmRetries(cfg.MaxConfirmRetries))

	commandHandler := handlers.NewCommandHandler(engine, zapLogger)
	healthChecker := handlers.NewHealthChecker(store)

	rateLimitMW, err := buildRateLimiter(cfg, redisClient)
	if err != nil {
		zapLogger.Fatal("failed to initialize rate limiter", zap.Error(err))
	}

	r := mux.NewRouter()

	// Middleware runs in registration order, outermost first.
	if cfg.OTELEnabled {
		r.Use(otelmux.Middleware(serviceName))
	}
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(rateLimitMW)
	api.HandleFunc("/turns", commandHandler.HandleTurn).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
	}
	if tracerShutdown != nil {
		if err := tracerShutdown(shutdownCtx); err != nil {
			zapLogger.Error("tracer shutdown failed", zap.Error(err))
		}
	}

	zapLogger.Info("server stopped")
}

func buildSessionStore(cfg *config.Config, redisClient *redis.Client) (session.Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		return session.NewRedisStoreWithClient(redisClient, cfg.SessionTTL), nil
	case config.SessionBackendPostgres:
		return session.NewPostgresStore(cfg.DatabaseURL, cfg.SessionTTL)
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.SessionBackend)
	}
}

func buildVocab(cfg *config.Config) (*vocab.Sets, error) {
	if cfg.VocabPath == "" {
		return vocab.Default(), nil
	}
	return vocab.Load(cfg.VocabPath)
}

func buildRateLimiter(cfg *config.Config, redisClient *redis.Client) (func(http.Handler) http.Handler, error) {
	if redisClient != nil {
		return middleware.RateLimit(redisClient, cfg.RateLimit)
	}
	return middleware.RateLimitInMemory(cfg.RateLimit)
}
