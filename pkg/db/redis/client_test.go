package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountauth/pkg/db/redis"
)

func newTestConfig(t *testing.T) (*miniredis.Miniredis, *redis.Config) {
	t.Helper()

	s := miniredis.RunT(t)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	return s, cfg
}

func TestNewClient(t *testing.T) {
	_, cfg := newTestConfig(t)
	ctx := context.Background()

	client, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(ctx))
}

func TestNewClientConnectionFailure(t *testing.T) {
	cfg := redis.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.Timeout = 100 * time.Millisecond

	client, err := redis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestClientOperations(t *testing.T) {
	s, cfg := newTestConfig(t)
	ctx := context.Background()

	client, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(ctx, "key", "value", time.Minute))

	value, err := client.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	s.FastForward(2 * time.Minute)

	_, err = client.Get(ctx, "key")
	assert.True(t, redis.IsNil(err))

	require.NoError(t, client.Set(ctx, "other", "v", 0))
	require.NoError(t, client.Delete(ctx, "other"))
	assert.False(t, s.Exists("other"))
}

func TestConfigAddress(t *testing.T) {
	cfg := &redis.Config{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.Address())
}
