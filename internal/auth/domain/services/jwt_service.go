package services

import (
	"errors"
	"time"
)

// Ошибки проверки токенов.
var (
	ErrInvalidJWTToken    = &AuthError{Message: "invalid token"}
	ErrExpiredJWTToken    = &AuthError{Message: "expired token"}
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// DefaultAccessTokenTTL - время жизни токена доступа по умолчанию.
const DefaultAccessTokenTTL = 30 * time.Minute

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey      []byte
	AccessTokenTTL time.Duration
}

// JWTClaims определяет полезную нагрузку токена доступа.
type JWTClaims struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
