// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"net"
	"strconv"
	"time"
)

// Значения по умолчанию для Redis.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultDB       = 0
	DefaultPoolSize = 10
	DefaultTimeout  = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		DB:       DefaultDB,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

// Address возвращает адрес host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
