// Package main реализует точку входа сервиса учетных записей.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"accountauth/internal/auth/adapters/cache"
	authhttp "accountauth/internal/auth/adapters/http"
	"accountauth/internal/auth/adapters/postgres"
	"accountauth/internal/auth/adapters/services"
	"accountauth/internal/auth/app"
	"accountauth/internal/auth/config"
	"accountauth/internal/auth/db"
	portcache "accountauth/internal/auth/ports/cache"
	"accountauth/pkg/db/redis"
	"accountauth/pkg/logger"
	"accountauth/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "AUTH_LOGGER_MODE"
	EnvLoggerLevel = "AUTH_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to connect to redis"
	ErrStartHTTP            = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "accounts service started"
	LogServiceShutdownDone = "shutdown"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connection"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing account cache"
	LogCacheDisabled       = "account cache disabled"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	startupCtx, _ := logger.WithRequestID(context.Background(), "")
	ctx, cancel := context.WithCancel(startupCtx)
	defer cancel()

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		accountRepo := postgres.NewRepositoryFactory(database.Pool()).AccountRepository()

		checks := map[string]authhttp.Pinger{"postgres": database}
		hooks := []func(context.Context) error{
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		}

		var accountCache portcache.AccountCache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrInitRedis, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
			accountCache = cache.NewRedisAccountCache(redisClient, cfg.Redis.CacheTTL, cfg.Redis.BreakerConfig())
			checks["redis"] = redisClient
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			})
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(
			cfg.JWT.SecretKey,
			cfg.JWT.GetAccessTokenTTL(),
			cfg.JWT.BCryptCost,
		)
		tokenService := serviceFactory.TokenService()

		log.Info(ctx, LogInitUseCases)
		authUseCase := app.NewAuthUseCase(accountRepo, serviceFactory.PasswordService(), tokenService)
		accountUseCase := app.NewAccountUseCase(accountRepo, tokenService, accountCache)

		log.Info(ctx, LogInitHTTPServer)
		server := authhttp.NewServer(authhttp.ServerConfig{
			Address:      cfg.HTTP.GetAddress(),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		}, authhttp.NewHandler(authUseCase, accountUseCase, checks), accountUseCase)

		serveErr := server.Start(ctx)
		go func() {
			if err, ok := <-serveErr; ok && err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
				exitCode = 1
				cancel()
			}
		}()

		// Сервер останавливается первым, затем закрываются хранилища.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), func(ctx context.Context) error {
			if err := server.Stop(ctx); err != nil {
				log.Error(ctx, err.Error())
			}
			for _, hook := range hooks {
				if err := hook(ctx); err != nil {
					log.Warn(ctx, err.Error())
				}
			}
			return nil
		})

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
