// Package services определяет порты криптографических сервисов.
package services

import "context"

// PasswordService хэширует пароли и проверяет их по сохраненному верификатору.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	// Verify возвращает false для несовпадения и для поврежденного верификатора.
	Verify(ctx context.Context, password, hash string) bool
}
