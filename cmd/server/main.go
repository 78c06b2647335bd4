// @title           Property Console API
// @version         1.0
// @description     Role-based access decisions and session lifecycle for the property management dashboard.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/saintdavies/property-console/internal/api"
	"github.com/saintdavies/property-console/internal/api/handler"
	"github.com/saintdavies/property-console/internal/core/ports"
	"github.com/saintdavies/property-console/internal/core/service"
	mongodb "github.com/saintdavies/property-console/internal/infrastructure/db/mongo"
	redisdb "github.com/saintdavies/property-console/internal/infrastructure/db/redis"
	"github.com/saintdavies/property-console/internal/infrastructure/memory"
	"github.com/saintdavies/property-console/internal/infrastructure/queue"
	"github.com/saintdavies/property-console/internal/infrastructure/seed"
	"github.com/saintdavies/property-console/internal/pkg/config"
	"github.com/saintdavies/property-console/pkg/logger"
)

const appName = "property console"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Service: "property-console",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

// backend bundles the storage chosen by STORAGE_BACKEND.
type backend struct {
	accounts ports.AccountRepository
	activity ports.ActivityRepository
	sessions ports.SessionStore
	checks   map[string]handler.Check
	close    func(context.Context)
}

func run(cfg *config.Config, log zerolog.Logger) error {
	displayAppname(appName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close(context.Background())

	accountService := service.NewAccountService(b.accounts)
	if cfg.SeedFile != "" {
		accounts, err := seed.LoadAccounts(cfg.SeedFile)
		if err != nil {
			return err
		}
		n, err := seed.Apply(ctx, accountService, accounts, log)
		if err != nil {
			return err
		}
		log.Info().Int("created", n).Str("file", cfg.SeedFile).Msg("demo accounts seeded")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, service.NewActivityService(b.activity, log), log)
	dispatcher.Start(workerCtx)

	sessions := service.NewSessionManager(
		newAuthenticator(cfg, b.accounts),
		b.sessions,
		log,
		service.WithActivityRecorder(dispatcher),
	)

	e := api.NewRouter(api.Dependencies{
		Sessions:  sessions,
		Tokens:    service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Accounts:  accountService,
		Activity:  b.activity,
		JWTSecret: cfg.JWTSecret,
		Checks:    b.checks,
		Log:       log,
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("auth_mode", cfg.AuthMode).Str("storage", cfg.StorageBackend).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-srvErr:
		if err != nil {
			stopWorkers()
			dispatcher.Wait()
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopWorkers()
	dispatcher.Wait()
	return nil
}

func newAuthenticator(cfg *config.Config, accounts ports.AccountRepository) ports.Authenticator {
	if cfg.AuthMode == config.AuthModeRemote {
		return service.NewRemoteAuthenticator(service.RemoteConfig{
			TokenURL:     cfg.Identity.TokenURL,
			ClientID:     cfg.Identity.ClientID,
			ClientSecret: cfg.Identity.ClientSecret,
			Scopes:       cfg.Identity.Scopes,
			ClaimsSecret: cfg.Identity.ClaimsSecret,
			HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		})
	}
	return service.NewDirectoryAuthenticator(accounts)
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	if cfg.StorageBackend == config.BackendMemory {
		log.Warn().Msg("using in-memory storage; sessions and accounts are lost on restart")
		return &backend{
			accounts: memory.NewAccountRepository(),
			activity: memory.NewActivityRepository(),
			sessions: memory.NewSessionStore(memory.WithTTL(cfg.Redis.SessionTTL)),
			close:    func(context.Context) {},
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "property-console"})
	if err != nil {
		return nil, err
	}
	accounts := mongodb.NewAccountRepository(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := mongodb.EnsureActivityIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &backend{
		accounts: accounts,
		activity: mongodb.NewActivityRepository(db),
		sessions: redisdb.NewSessionStore(rdb, cfg.Redis.KeyPrefix, cfg.Redis.SessionTTL),
		checks: map[string]handler.Check{
			"mongodb": mongodb.Check(db),
			"redis":   redisdb.Check(rdb),
		},
		close: func(ctx context.Context) {
			_ = rdb.Close()
			_ = client.Disconnect(ctx)
		},
	}, nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
