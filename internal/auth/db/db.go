// Package db инициализирует базу данных сервиса учетных записей.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"accountauth/internal/auth/config"
	"accountauth/pkg/db/postgres"
	"accountauth/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing accounts database"
	LogDBInitialized     = "accounts database initialized successfully"
	LogMigrationStarting = "starting database migrations for accounts service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply accounts database migrations"
	ErrDBConnection = "failed to connect to accounts database"
	ErrGetPath      = "failed to get path"
)

// MigrateFunc применяет миграции.
type MigrateFunc func(ctx context.Context, dsn, migrationsPath string) error

// ConnectFunc открывает пул соединений.
type ConnectFunc func(ctx context.Context, dsn string, minConn, maxConn int) (*postgres.Database, error)

// Option настраивает инициализацию базы данных.
type Option func(*options)

type options struct {
	migrate MigrateFunc
	connect ConnectFunc
}

// WithMigrate подменяет запуск миграций.
func WithMigrate(fn MigrateFunc) Option {
	return func(o *options) { o.migrate = fn }
}

// WithConnect подменяет открытие пула.
func WithConnect(fn ConnectFunc) Option {
	return func(o *options) { o.connect = fn }
}

// DB представляет соединение с базой данных сервиса учетных записей.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig, opts ...Option) (*DB, error) {
	o := options{migrate: postgres.MigrateDSN, connect: postgres.New}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Log(ctx)
	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsSource(cfg.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := o.migrate(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := o.connect(ctx, cfg.GetConnectionURL(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

// MigrationsSource возвращает file:// URL каталога миграций.
func MigrationsSource(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
