package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"accountauth/internal/auth/domain/services"
	svc "accountauth/internal/auth/ports/services"
	"accountauth/pkg/logger"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	msgMalformedHash           = "stored password hash is malformed"
)

// ServiceBcrypt реализует интерфейс PasswordService.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает новый экземпляр сервиса bcrypt.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Cost возвращает рабочий фактор bcrypt.
func (s *ServiceBcrypt) Cost() int {
	return s.cost
}

// Hash хэширует пароль с новой солью при каждом вызове.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}
	if len(password) > services.MaxPasswordBytes {
		return "", services.ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashedBytes), nil
}

// Verify проверяет соответствие пароля хэшу. Любая ошибка сравнения означает отказ.
func (s *ServiceBcrypt) Verify(ctx context.Context, password, hash string) bool {
	if password == "" || hash == "" || len(password) > services.MaxPasswordBytes {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		logger.Log(ctx).Warn(ctx, msgMalformedHash, zap.Error(err))
	}
	return false
}
