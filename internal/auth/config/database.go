package config

import (
	"net"
	"net/url"
	"strconv"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"AUTH_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"AUTH_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"AUTH_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"AUTH_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"AUTH_POSTGRES_DB" env-default:"auth"`
	SSLMode        string `yaml:"ssl_mode" env:"AUTH_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn        int    `yaml:"min_conn" env:"AUTH_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int    `yaml:"max_conn" env:"AUTH_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"AUTH_POSTGRES_MIGRATIONS_PATH" env-default:"migrations/auth"`
}

// GetConnectionURL возвращает URL-строку подключения для пула и миграций.
// Учетные данные экранируются.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}
