package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountauth/internal/auth/config"
	"accountauth/internal/auth/db"
	"accountauth/pkg/db/postgres"
)

func testConfig() *config.PostgresConfig {
	return &config.PostgresConfig{
		Host:           "localhost",
		Port:           5432,
		User:           "postgres",
		Password:       "postgres",
		Database:       "auth",
		SSLMode:        "disable",
		MinConn:        1,
		MaxConn:        4,
		MigrationsPath: "migrations/auth",
	}
}

func TestMigrationsSource(t *testing.T) {
	source, err := db.MigrationsSource("migrations/auth")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(source, "file://"))
	path := strings.TrimPrefix(source, "file://")
	assert.True(t, filepath.IsAbs(filepath.FromSlash(path)))
	assert.True(t, strings.HasSuffix(source, "migrations/auth"))
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	t.Run("migrations run before the pool is opened", func(t *testing.T) {
		var calls []string

		database, err := db.New(ctx, cfg,
			db.WithMigrate(func(_ context.Context, dsn, path string) error {
				calls = append(calls, "migrate")
				assert.Equal(t, cfg.GetConnectionURL(), dsn)
				assert.True(t, strings.HasPrefix(path, "file://"))
				return nil
			}),
			db.WithConnect(func(_ context.Context, dsn string, minConn, maxConn int) (*postgres.Database, error) {
				calls = append(calls, "connect")
				assert.Equal(t, 1, minConn)
				assert.Equal(t, 4, maxConn)
				return &postgres.Database{}, nil
			}),
		)

		require.NoError(t, err)
		require.NotNil(t, database)
		assert.Equal(t, []string{"migrate", "connect"}, calls)
	})

	t.Run("migration failure stops initialization", func(t *testing.T) {
		migrateErr := errors.New("dirty database version 1")
		connected := false

		_, err := db.New(ctx, cfg,
			db.WithMigrate(func(context.Context, string, string) error { return migrateErr }),
			db.WithConnect(func(context.Context, string, int, int) (*postgres.Database, error) {
				connected = true
				return &postgres.Database{}, nil
			}),
		)

		require.ErrorIs(t, err, migrateErr)
		assert.Contains(t, err.Error(), db.ErrDBMigrations)
		assert.False(t, connected)
	})

	t.Run("connection failure", func(t *testing.T) {
		connErr := errors.New("connection refused")

		_, err := db.New(ctx, cfg,
			db.WithMigrate(func(context.Context, string, string) error { return nil }),
			db.WithConnect(func(context.Context, string, int, int) (*postgres.Database, error) {
				return nil, connErr
			}),
		)

		require.ErrorIs(t, err, connErr)
		assert.Contains(t, err.Error(), db.ErrDBConnection)
	})
}
