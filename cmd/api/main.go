package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/devtrack/bug-tracking-system/docs"

	"github.com/devtrack/bug-tracking-system/internal/api"
	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/infrastructure/config"
	mongodb "github.com/devtrack/bug-tracking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/devtrack/bug-tracking-system/internal/infrastructure/db/redis"
	"github.com/devtrack/bug-tracking-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Bug Tracking System API
// @version         1.0
// @description     Role-gated REST API for tracking bugs and the employees who report, fix and administer them.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env == "development")

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	bugRepo := mongodb.NewBugRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	if err := bugRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("bug indexes")
	}
	if err := employeeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("employee indexes")
	}

	if err := seedAdministrator(ctx, employeeRepo, cfg.Bootstrap, log); err != nil {
		log.Fatal().Err(err).Msg("bootstrap administrator")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedAdministrator creates the initial Administrator account when the store
// holds none. Without it a fresh deployment has no account allowed to manage
// employees. Skipped unless a bootstrap password is configured.
func seedAdministrator(ctx context.Context, repo *mongodb.EmployeeRepository, cfg config.BootstrapConfig, log zerolog.Logger) error {
	count, err := repo.CountByRole(ctx, domain.RoleAdministrator)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Warn().Msg("no administrator exists and BOOTSTRAP_ADMIN_PASSWORD is unset; employee management is unreachable")
		return nil
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created, err := repo.Create(ctx, &domain.Employee{
		Username:     cfg.AdminUsername,
		PasswordHash: string(digest),
		Role:         domain.RoleAdministrator,
	})
	if err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil
		}
		return err
	}

	log.Info().Int64("employeeId", created.ID).Str("username", created.Username).Msg("seeded bootstrap administrator")
	return nil
}
