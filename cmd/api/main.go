// @title          Personnel API
// @version        1.0
// @description    Registration, authentication and role-gated records for employees, job seekers and users.
// @BasePath       /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in             header
// @name           Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	_ "github.com/orgledger/personnel-api/docs"
	"github.com/orgledger/personnel-api/internal/api"
	"github.com/orgledger/personnel-api/internal/api/handler"
	"github.com/orgledger/personnel-api/internal/core/ports"
	"github.com/orgledger/personnel-api/internal/core/service"
	"github.com/orgledger/personnel-api/internal/core/validation"
	"github.com/orgledger/personnel-api/internal/infrastructure/db/memory"
	mongostore "github.com/orgledger/personnel-api/internal/infrastructure/db/mongo"
	redisstore "github.com/orgledger/personnel-api/internal/infrastructure/db/redis"
	"github.com/orgledger/personnel-api/internal/infrastructure/queue"
	"github.com/orgledger/personnel-api/internal/infrastructure/security"
	"github.com/orgledger/personnel-api/internal/pkg/config"
	"github.com/orgledger/personnel-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		Pretty:      !cfg.IsProduction(),
		Service:     "personnel-api",
		Environment: cfg.Env,
	})
	// A missing .env is normal; a malformed one is worth knowing about.
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg(".env not loaded")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		repo     ports.PrincipalRepository
		seq      ports.Sequence
		orgRepo  ports.OrgUnitRepository
		pingers  []handler.Pinger
		cleanups []func(context.Context)
	)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i](shutdownCtx)
		}
	}()

	// --- Credential store ---
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; data is lost on exit")
		repo, seq = memory.NewPrincipalRepository(), memory.NewSequence()
		orgRepo = memory.NewOrgUnitRepository()
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Store.Timeout,
		})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		})

		principals := mongostore.NewPrincipalRepository(db, cfg.Store.Timeout)
		if err := principals.EnsureIndexes(ctx); err != nil {
			return err
		}
		repo, seq = principals, mongostore.NewSequenceRepository(db, cfg.Store.Timeout)
		orgRepo = mongostore.NewOrgUnitRepository(db, cfg.Store.Timeout)
		pingers = append(pingers, mongostore.NewPinger(db))
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	// --- Sequence backend ---
	if cfg.Store.SequenceDriver == config.SequenceRedis {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Store.Timeout,
		})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		})
		seq = redisstore.NewSequence(rdb, cfg.Store.Timeout)
		pingers = append(pingers, redisstore.NewPinger(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sequences backed by redis")
	}

	// --- Security ---
	if err := security.ValidateCost(cfg.Auth.BcryptCost); err != nil {
		return err
	}
	tokens, err := security.NewJWTIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	poolCtx, stopPool := context.WithCancel(context.Background())
	hashPool := queue.NewHashPool(cfg.Auth.HashWorkers, security.NewBcryptHasher(cfg.Auth.BcryptCost), logger.Component("hash_pool"))
	hashPool.Start(poolCtx)
	cleanups = append(cleanups, func(context.Context) { stopPool() })

	// --- Services ---
	v := validation.New()
	allocator := service.NewBusinessIDAllocator(seq, repo, logger.Component("sequence"))
	if err := allocator.Seed(ctx); err != nil {
		return err
	}

	registration := service.NewRegistrationService(repo, allocator, hashPool, v, logger.Component("registration"))
	authService := service.NewAuthService(repo, hashPool, tokens, v, logger.Component("auth"))
	principals := service.NewPrincipalService(repo, hashPool, v, logger.Component("principals"))
	orgUnits := service.NewOrgUnitService(orgRepo, v, logger.Component("org_units"))
	if err := authService.WarmUp(ctx); err != nil {
		return err
	}

	if cfg.Bootstrap.Enabled() {
		admin, err := registration.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		if err != nil {
			return err
		}
		log.Info().Str("email", admin.Email).Str("business_id", admin.BusinessID).Msg("bootstrap admin ready")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:         authService,
		Registration: registration,
		Principals:   principals,
		OrgUnits:     orgUnits,
		Validator:    v,
		Readiness:    pingers,
		Log:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
