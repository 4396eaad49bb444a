package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/ports/repositories"
	"accountauth/pkg/db/postgres"
	"accountauth/pkg/logger"
)

const (
	repositoryName = "account"

	msgAccountNotFound  = "account not found"
	msgAccountConflict  = "account violates unique constraint"
	msgAccountCreated   = "account created"
	msgAccountsListed   = "accounts listed"
	errCreatingAccount  = "error creating account"
	errQueryingAccount  = "error querying account"
	errListingAccounts  = "error listing accounts"
	errScanningAccounts = "error scanning account row"
)

const accountColumns = `id, first_name, last_name, username, email, age, password_hash, created_at`

// PgxPoolInterface описывает часть pgxpool.Pool, используемую репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

// AccountRepository реализует интерфейс repositories.AccountRepository для работы с Postgres.
type AccountRepository struct {
	pool PgxPoolInterface
}

// NewAccountRepository создает новый экземпляр репозитория учетных записей.
func NewAccountRepository(pool PgxPoolInterface) repositories.AccountRepository {
	return &AccountRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var account entities.Account
	err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Username,
		&account.Email,
		&account.Age,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create вставляет учетную запись одним запросом. Уникальные индексы по username
// и email делают проверку и вставку атомарными.
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "Create"))

	query := `
        INSERT INTO accounts (first_name, last_name, username, email, age, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + accountColumns

	created, err := scanAccount(r.pool.QueryRow(ctx, query,
		account.FirstName,
		account.LastName,
		account.Username,
		account.Email,
		account.Age,
		account.PasswordHash,
	))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			log.Debug(ctx, msgAccountConflict)
			return nil, entities.ErrAccountConflict
		}
		log.Error(ctx, errCreatingAccount, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreatingAccount, err)
	}

	log.Debug(ctx, msgAccountCreated, zap.Int64("id", created.ID))
	return created, nil
}

func (r *AccountRepository) findOne(ctx context.Context, method, column string, value any) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", method))

	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE ` + column + ` = $1
    `

	account, err := scanAccount(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgAccountNotFound)
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, errQueryingAccount, zap.Error(err))
		return nil, fmt.Errorf("%s by %s: %w", errQueryingAccount, column, err)
	}

	return account, nil
}

// FindByID находит учетную запись по ID.
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*entities.Account, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

// FindByUsername находит учетную запись по имени пользователя.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*entities.Account, error) {
	return r.findOne(ctx, "FindByUsername", "username", username)
}

// FindByEmail находит учетную запись по email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

// List возвращает страницу учетных записей, упорядоченных по ID.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "List"))

	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        ORDER BY id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		log.Error(ctx, errListingAccounts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingAccounts, err)
	}
	defer rows.Close()

	accounts := make([]*entities.Account, 0, max(limit, 0))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			log.Error(ctx, errScanningAccounts, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errScanningAccounts, err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, errListingAccounts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errListingAccounts, err)
	}

	log.Debug(ctx, msgAccountsListed, zap.Int("count", len(accounts)))
	return accounts, nil
}
