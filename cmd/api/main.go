// @title        Corporate Banking Back Office API
// @version      1.0
// @description  Client onboarding and credit request review for relationship managers and credit analysts.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/api"
	"github.com/dhanu2426/corporate-banking-system/internal/core/service"
	"github.com/dhanu2426/corporate-banking-system/internal/infrastructure/db/mongo"
	"github.com/dhanu2426/corporate-banking-system/internal/infrastructure/db/redis"
	"github.com/dhanu2426/corporate-banking-system/internal/infrastructure/http/handlers"
	"github.com/dhanu2426/corporate-banking-system/internal/infrastructure/queue"
	"github.com/dhanu2426/corporate-banking-system/internal/pkg/config"
	"github.com/dhanu2426/corporate-banking-system/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "corporate-banking",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	clientRepo := mongo.NewClientRepository(db)
	creditRepo := mongo.NewCreditRepository(db)
	auditRepo := mongo.NewAuditRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, clientRepo, creditRepo, auditRepo); err != nil {
		return err
	}

	// --- Audit trail workers ---
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Credit.AuditWorkers, auditRepo, logger.Component("audit"))
	dispatcher.Start(workersCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	clients := service.NewClientService(clientRepo, logger.Component("clients"))
	e := api.NewRouter(api.Dependencies{
		Tokens:  tokens,
		Auth:    service.NewAuthService(userRepo, service.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, logger.Component("auth")),
		Users:   service.NewUserService(userRepo, logger.Component("users")),
		Clients: clients,
		Credits: service.NewCreditService(creditRepo, clients, logger.Component("credit"),
			service.WithIdempotency(redis.NewIdempotencyStore(rdb), cfg.Credit.IdempotencyTTL),
			service.WithAudit(dispatcher, auditRepo),
		),
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		Logger: logger.Component("http"),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
