// @title           User Service API
// @version         1.0
// @description     Account registration, login and user management.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
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

	"github.com/userhub/user-service/internal/api"
	"github.com/userhub/user-service/internal/core/service"
	"github.com/userhub/user-service/internal/infrastructure/config"
	mongodb "github.com/userhub/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/user-service/internal/infrastructure/db/redis"
	"github.com/userhub/user-service/internal/infrastructure/security"
	"github.com/userhub/user-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("user service failed")
		fmt.Fprintln(os.Stderr, "user service failed:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-service",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongodb.Disconnect(mongoClient); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	mongoUsers := mongodb.NewUserRepository(db)
	if err := mongoUsers.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// Redis only backs the identity cache.
		log.Warn().Err(err).Msg("redis unavailable, identity cache disabled")
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		}()
	}
	users := redisdb.NewCachingUserRepository(rdb, cfg.Redis.CacheTTL, mongoUsers, logger.Component("user_cache"))

	// --- Security ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens, err := security.NewTokenIssuer(cfg.Auth.Secret(), cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	// --- Services ---
	accounts := service.NewAccountService(users, hasher, tokens, logger.Component("accounts"))
	gate := service.NewAuthenticator(tokens, users, logger.Component("auth"))

	e := api.NewRouter(api.Deps{
		Accounts:       accounts,
		Authenticator:  gate,
		Mongo:          db,
		Redis:          rdb,
		Log:            log,
		AllowedOrigin:  cfg.CORS.AllowedOrigin(),
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("graceful shutdown complete")
	return nil
}
