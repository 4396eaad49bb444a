package app_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, account *entities.Account) (*entities.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id int64) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountRepository) FindByUsername(ctx context.Context, username string) (*entities.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountRepository) List(ctx context.Context, limit, offset int) ([]*entities.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Account), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) bool {
	args := m.Called(ctx, password, hash)
	return args.Bool(0)
}

// dummyVerifier возвращается хэшером при создании AuthUseCase.
const dummyVerifier = "$2a$10$dummyverifier"

// newPasswordMock ожидает построение верификатора для неизвестных имен,
// которое выполняет NewAuthUseCase.
func newPasswordMock() *mockPasswordService {
	pwd := new(mockPasswordService)
	pwd.On("Hash", mock.Anything, mock.Anything).Return(dummyVerifier, nil).Once()
	return pwd
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, account *entities.Account) (*services.AccessToken, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AccessToken), args.Error(1)
}

func (m *mockTokenService) Verify(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

type mockAccountCache struct {
	mock.Mock
}

func (m *mockAccountCache) Get(ctx context.Context, email string) (*entities.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountCache) Set(ctx context.Context, account *entities.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *mockAccountCache) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

// memoryAccountRepository хранит учетные записи в памяти с теми же
// гарантиями уникальности, что и уникальные индексы Postgres.
type memoryAccountRepository struct {
	mu       sync.Mutex
	nextID   int64
	accounts []*entities.Account
}

func (r *memoryAccountRepository) Create(_ context.Context, account *entities.Account) (*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return nil, entities.ErrAccountConflict
		}
	}
	r.nextID++
	created := *account
	created.ID = r.nextID
	r.accounts = append(r.accounts, &created)
	cp := created
	return &cp, nil
}

func (r *memoryAccountRepository) find(match func(*entities.Account) bool) (*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if match(existing) {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, entities.ErrAccountNotFound
}

func (r *memoryAccountRepository) FindByID(_ context.Context, id int64) (*entities.Account, error) {
	return r.find(func(a *entities.Account) bool { return a.ID == id })
}

func (r *memoryAccountRepository) FindByUsername(_ context.Context, username string) (*entities.Account, error) {
	return r.find(func(a *entities.Account) bool { return a.Username == username })
}

func (r *memoryAccountRepository) FindByEmail(_ context.Context, email string) (*entities.Account, error) {
	return r.find(func(a *entities.Account) bool { return a.Email == email })
}

// remove имитирует удаление учетной записи администратором.
func (r *memoryAccountRepository) remove(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.accounts[:0]
	for _, a := range r.accounts {
		if a.Email != email {
			kept = append(kept, a)
		}
	}
	r.accounts = kept
}

func (r *memoryAccountRepository) List(_ context.Context, limit, offset int) ([]*entities.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offset >= len(r.accounts) {
		return []*entities.Account{}, nil
	}
	end := min(offset+limit, len(r.accounts))
	result := make([]*entities.Account, 0, end-offset)
	for _, a := range r.accounts[offset:end] {
		cp := *a
		result = append(result, &cp)
	}
	return result, nil
}
