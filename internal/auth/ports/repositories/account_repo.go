// Package repositories определяет порты хранилища учетных записей.
package repositories

import (
	"context"

	"accountauth/internal/auth/domain/entities"
)

// AccountRepository определяет операции хранилища учетных записей.
// Create атомарно проверяет уникальность username и email и вставляет запись;
// при конфликте возвращает entities.ErrAccountConflict.
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) (*entities.Account, error)

	FindByID(ctx context.Context, id int64) (*entities.Account, error)

	FindByUsername(ctx context.Context, username string) (*entities.Account, error)

	FindByEmail(ctx context.Context, email string) (*entities.Account, error)

	List(ctx context.Context, limit, offset int) ([]*entities.Account, error)
}
