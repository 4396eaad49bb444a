// Package services содержит доменные типы и ошибки аутентификации.
package services

import "errors"

// Ошибки, связанные с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// MaxPasswordBytes - предел длины пароля для bcrypt.
const MaxPasswordBytes = 72
