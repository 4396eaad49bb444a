// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	FirstName      string `json:"firstname" validate:"required,max=100"`
	LastName       string `json:"lastname" validate:"required,max=100"`
	Username       string `json:"username" validate:"required,max=50"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Password       string `json:"password" validate:"required,max=72"`
	RepeatPassword string `json:"repeat_password" validate:"required"`
	Age            *int   `json:"age" validate:"required,gte=0"`
}

// ToRegistration переводит запрос в доменную модель.
func (r *RegisterRequest) ToRegistration() services.Registration {
	reg := services.Registration{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		RepeatPassword: r.RepeatPassword,
	}
	if r.Age != nil {
		reg.Age = *r.Age
	}
	return reg
}

// RegisterResponse возвращается после успешной регистрации.
type RegisterResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse содержит выданный токен доступа.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewTokenResponse создает ответ из доменного токена.
func NewTokenResponse(token *services.AccessToken) TokenResponse {
	return TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}
}

// AccountResponse содержит публичный профиль учетной записи.
type AccountResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse создает публичный профиль. Верификатор пароля не переносится.
func NewAccountResponse(account *entities.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Username:  account.Username,
		Email:     account.Email,
		Age:       account.Age,
		CreatedAt: account.CreatedAt,
	}
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
