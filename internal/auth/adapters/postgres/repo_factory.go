// Package postgres содержит реализации репозиториев на PostgreSQL.
package postgres

import (
	"accountauth/internal/auth/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	accountRepo repositories.AccountRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		accountRepo: NewAccountRepository(pool),
	}
}

// AccountRepository возвращает репозиторий учетных записей.
func (f *RepositoryFactory) AccountRepository() repositories.AccountRepository {
	return f.accountRepo
}
