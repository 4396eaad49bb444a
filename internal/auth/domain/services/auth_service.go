package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации. Сообщения намеренно не различают причину отказа.
var (
	ErrPasswordMismatch      = &ValidationError{Field: "repeat_password", Message: "password mismatch"}
	ErrRegistrationConflict  = &RegistrationError{Message: "username or email already taken"}
	ErrInvalidCredentials    = &AuthError{Message: "incorrect username or password"}
	ErrUnknownSubject        = &AuthError{Message: "unknown subject"}
	ErrTokenGenerationFailed = errors.New("failed to generate access token")
)

// TokenTypeBearer - тип выдаваемого токена.
const TokenTypeBearer = "bearer"

// ValidationError описывает некорректный или противоречивый ввод.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// RegistrationError описывает отказ в регистрации без раскрытия деталей хранилища.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }

// AuthError описывает отказ в аутентификации.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Registration содержит данные запроса на регистрацию.
type Registration struct {
	FirstName      string
	LastName       string
	Username       string
	Email          string
	Age            int
	Password       string
	RepeatPassword string
}

// AccessToken представляет выданный bearer-токен.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

// CheckPasswordConfirmation проверяет совпадение пароля и его подтверждения.
func CheckPasswordConfirmation(password, repeatPassword string) error {
	if password != repeatPassword {
		return ErrPasswordMismatch
	}
	return nil
}
