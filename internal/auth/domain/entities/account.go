// Package entities содержит сущности домена учетных записей.
package entities

import (
	"errors"
	"time"
)

// Ошибки хранилища учетных записей.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountConflict = errors.New("account with this username or email already exists")
)

// Account представляет учетную запись пользователя.
// PasswordHash содержит только bcrypt-верификатор, никогда не открытый пароль.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	Email        string
	Age          int
	PasswordHash string
	CreatedAt    time.Time
}

// Public возвращает копию учетной записи без верификатора пароля.
func (a *Account) Public() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	cp.PasswordHash = ""
	return &cp
}
