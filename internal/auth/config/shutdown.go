package config

import (
	"time"
)

// ShutdownConfig содержит настройки для graceful shutdown.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"AUTH_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// GetTimeout возвращает timeout, не меньше одной секунды.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	if s.Timeout < time.Second {
		return time.Second
	}
	return s.Timeout
}
