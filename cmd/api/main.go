// Command api serves the travel request HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/traveldesk/travel-requests/docs"
	"github.com/traveldesk/travel-requests/internal/api"
	"github.com/traveldesk/travel-requests/internal/api/handler"
	"github.com/traveldesk/travel-requests/internal/core/chat"
	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
	"github.com/traveldesk/travel-requests/internal/core/service"
	"github.com/traveldesk/travel-requests/internal/infrastructure/config"
	mongodb "github.com/traveldesk/travel-requests/internal/infrastructure/db/mongo"
	"github.com/traveldesk/travel-requests/internal/infrastructure/db/postgres"
	redisdb "github.com/traveldesk/travel-requests/internal/infrastructure/db/redis"
	"github.com/traveldesk/travel-requests/internal/infrastructure/gemini"
	"github.com/traveldesk/travel-requests/internal/infrastructure/queue"
	"github.com/traveldesk/travel-requests/pkg/logger"
)

const serviceName = "travel-requests"

// @title          Travel Requests API
// @version        1.0
// @description    Travel request submission, staff review, statistics and chat assistant.
// @host           localhost:8080
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	db, err := postgres.Connect(postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	}, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := postgres.Migrate(db, log); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	checks := map[string]handler.Pinger{
		"postgres": sqlDB.PingContext,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}

	// --- Status audit trail (optional) ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var (
		recorder   ports.StatusRecorder
		history    ports.StatusEventRepository
		dispatcher *queue.Dispatcher
	)
	if cfg.AuditEnabled() {
		store, err := mongodb.Open(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		}, log)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		}()

		dispatcher = queue.NewDispatcher(cfg.AuditWorkers, store.Events, log)
		dispatcher.Start(workerCtx)
		recorder, history = dispatcher, store.Events
		checks["mongo"] = store.Ping
	} else {
		log.Warn().Msg("MONGO_URI not set, status audit trail disabled")
	}

	// --- Chat strategy ---
	var responder ports.ChatResponder
	switch cfg.Chat.Strategy {
	case domain.ChatStrategyGenAI:
		gen, err := gemini.New(ctx, gemini.Config{APIKey: cfg.GenAI.APIKey, Model: cfg.GenAI.Model})
		if err != nil {
			return err
		}
		responder = chat.NewAIResponder(gen, cfg.GenAI.Timeout, log)
	default:
		responder = chat.NewRuleResponder()
	}
	log.Info().Str("strategy", cfg.Chat.Strategy).Msg("chat responder selected")

	// --- Services ---
	users := postgres.NewUserRepository(db)
	travelRepo := postgres.NewTravelRequestRepository(db)

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	statsService := service.NewStatsService(travelRepo, redisdb.NewStatsCache(rdb, cfg.StatsCacheTTL), log)

	e := api.NewRouter(api.Deps{
		Logger: log,
		Tokens: tokens,
		Auth:   service.NewAuthService(users, tokens, log),
		Travel: service.NewTravelService(travelRepo, recorder, history, log),
		Export: service.NewExportService(travelRepo, log),
		Stats:  statsService,
		Chat: service.NewChatService(
			redisdb.NewRateLimiter(rdb, cfg.Chat.RateLimit, cfg.Chat.RateWindow),
			statsService,
			responder,
			cfg.Chat.Strategy,
			log,
		),
		Checks: checks,
	})

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// generous enough for a generative chat reply
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
