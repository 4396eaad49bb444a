package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
	svc "accountauth/internal/auth/ports/services"
	"accountauth/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssue  = "Issue"
	methodVerify = "Verify"

	msgIssuingToken    = "issuing access token"
	msgVerifyingToken  = "verifying access token"
	msgTokenIssued     = "access token issued"
	msgTokenVerified   = "access token verified"
	msgTokenExpired    = "access token has expired"
	msgTokenRejected   = "access token rejected"
	msgEmptySecretKey  = "empty secret key provided"
	msgEmptyEmailClaim = "email claim is empty"

	errSigningToken       = "error signing token"
	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Option настраивает ServiceJWT.
type Option func(*ServiceJWT)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceJWT) {
		s.now = now
	}
}

// ServiceJWT реализует TokenService на HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL time.Duration, opts ...Option) svc.TokenService {
	if accessTokenTTL <= 0 {
		accessTokenTTL = services.DefaultAccessTokenTTL
	}

	s := &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:      []byte(secretKey),
			AccessTokenTTL: accessTokenTTL,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
}

func jwtToDomainClaims(claims *Claims) *services.JWTClaims {
	result := &services.JWTClaims{Email: claims.Email}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result
}

// Issue подписывает токен с email учетной записи и временем истечения.
func (s *ServiceJWT) Issue(ctx context.Context, account *entities.Account) (*services.AccessToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.Int64("accountID", account.ID))
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return nil, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := s.now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(services.JWTClaims{
		Email:     account.Email,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return &services.AccessToken{
		Token:     tokenString,
		TokenType: services.TokenTypeBearer,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify проверяет подпись и срок действия токена и возвращает его claims.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgVerifyingToken)

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.config.SecretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.Email == "" {
		log.Debug(ctx, msgEmptyEmailClaim)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenVerified)
	return jwtToDomainClaims(claims), nil
}
