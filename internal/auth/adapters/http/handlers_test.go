package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authhttp "accountauth/internal/auth/adapters/http"
	"accountauth/internal/auth/adapters/http/middleware"
	"accountauth/internal/auth/domain/entities"
	"accountauth/internal/auth/domain/services"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, reg services.Registration) (*entities.Account, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, username, password string) (*services.AccessToken, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AccessToken), args.Error(1)
}

type mockAccountUseCase struct {
	mock.Mock
}

func (m *mockAccountUseCase) Authenticate(ctx context.Context, token string) (*entities.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountUseCase) ResolveAccount(ctx context.Context, claims *services.JWTClaims) (*entities.Account, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*entities.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Account), args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type testServer struct {
	app      *fiber.App
	auth     *mockAuthUseCase
	accounts *mockAccountUseCase
}

func newTestServer(checks map[string]authhttp.Pinger) *testServer {
	auth := new(mockAuthUseCase)
	accounts := new(mockAccountUseCase)
	handler := authhttp.NewHandler(auth, accounts, checks)
	return &testServer{
		app:      authhttp.NewApp(authhttp.ServerConfig{}, handler, accounts),
		auth:     auth,
		accounts: accounts,
	}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

const registerBody = `{"firstname":"Alice","lastname":"Liddell","username":"alice","email":"a@x.com",
	"password":"pw1","repeat_password":"pw1","age":30}`

func TestRegisterHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		s := newTestServer(nil)
		s.auth.On("Register", mock.Anything, mock.MatchedBy(func(r services.Registration) bool {
			return r.Username == "alice" && r.Age == 30 && r.Password == "pw1" && r.RepeatPassword == "pw1"
		})).Return(&entities.Account{ID: 1}, nil).Once()

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/register", registerBody))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.InDelta(t, 1, body["id"], 0)
		assert.Equal(t, "user registered successfully", body["message"])
		assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
	})

	t.Run("password mismatch", func(t *testing.T) {
		s := newTestServer(nil)
		s.auth.On("Register", mock.Anything, mock.Anything).
			Return(nil, errors.Join(errors.New("validating registration"), services.ErrPasswordMismatch)).Once()

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/register", registerBody))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "password mismatch", body["error"])
		assert.Equal(t, "repeat_password", body["field"])
	})

	t.Run("conflict does not name the field", func(t *testing.T) {
		s := newTestServer(nil)
		s.auth.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrRegistrationConflict).Once()

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/register", registerBody))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "username or email already taken", body["error"])
		assert.Nil(t, body["field"])
	})

	t.Run("schema validation happens before the workflow", func(t *testing.T) {
		s := newTestServer(nil)

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/register",
			`{"firstname":"Alice","lastname":"Liddell","username":"alice","email":"nope",
			"password":"pw1","repeat_password":"pw1","age":30}`))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "email", body["field"])
		s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("names are required", func(t *testing.T) {
		s := newTestServer(nil)

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/register",
			`{"lastname":"Liddell","username":"alice","email":"a@x.com","password":"pw1","repeat_password":"pw1","age":30}`))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "firstname", body["field"])
		s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(nil)

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/register", `{"username":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid request body", body["error"])
	})

	t.Run("internal failure is not leaked", func(t *testing.T) {
		s := newTestServer(nil)
		s.auth.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("pq: connection refused")).Once()

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/register", registerBody))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "internal server error", body["error"])
	})
}

func TestLoginHandlers(t *testing.T) {
	expiresAt := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)
	token := &services.AccessToken{Token: "a.b.c", TokenType: services.TokenTypeBearer, ExpiresAt: expiresAt}

	t.Run("json login", func(t *testing.T) {
		s := newTestServer(nil)
		s.auth.On("Login", mock.Anything, "alice", "pw1").Return(token, nil).Once()

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/login", `{"username":"alice","password":"pw1"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "a.b.c", body["access_token"])
		assert.Equal(t, "bearer", body["token_type"])
		assert.Equal(t, expiresAt.Format(time.RFC3339), body["expires_at"])
	})

	t.Run("form token endpoint", func(t *testing.T) {
		s := newTestServer(nil)
		s.auth.On("Login", mock.Anything, "alice", "pw1").Return(token, nil).Once()

		form := url.Values{"username": {"alice"}, "password": {"pw1"}}
		req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, body := s.do(t, req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "a.b.c", body["access_token"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		s := newTestServer(nil)
		s.auth.On("Login", mock.Anything, "alice", "wrong").Return(nil, services.ErrInvalidCredentials).Once()

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "incorrect username or password", body["error"])
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("missing password", func(t *testing.T) {
		s := newTestServer(nil)

		resp, body := s.do(t, jsonRequest(http.MethodPost, "/login", `{"username":"alice"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "password", body["field"])
	})
}

func TestProtectedRoutes(t *testing.T) {
	account := &entities.Account{ID: 4, Username: "alice", Email: "a@x.com"}

	t.Run("me with valid token", func(t *testing.T) {
		s := newTestServer(nil)
		s.accounts.On("Authenticate", mock.Anything, "good-token").Return(account, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, body := s.do(t, req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice", body["username"])
		assert.NotContains(t, body, "password_hash")
		assert.NotContains(t, body, "password")
	})

	t.Run("missing header", func(t *testing.T) {
		s := newTestServer(nil)

		resp, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/users/me", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		s.accounts.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		s := newTestServer(nil)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Basic YWxpY2U6cHcx")
		resp, _ := s.do(t, req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		s := newTestServer(nil)
		s.accounts.On("Authenticate", mock.Anything, "old").Return(nil, services.ErrExpiredJWTToken).Once()

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "bearer old")
		resp, body := s.do(t, req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "expired token", body["error"])
	})

	t.Run("list accounts", func(t *testing.T) {
		s := newTestServer(nil)
		s.accounts.On("Authenticate", mock.Anything, "good-token").Return(account, nil).Once()
		s.accounts.On("ListAccounts", mock.Anything, 10, 5).
			Return([]*entities.Account{account, {ID: 5, Username: "bob"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users?limit=10&offset=5", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, err := s.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var profiles []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&profiles))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, profiles, 2)
		assert.Equal(t, "bob", profiles[1]["username"])
	})

	t.Run("list accounts with bad limit", func(t *testing.T) {
		s := newTestServer(nil)
		s.accounts.On("Authenticate", mock.Anything, "good-token").Return(account, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users?limit=ten", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		resp, body := s.do(t, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "limit", body["field"])
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(map[string]authhttp.Pinger{
			"postgres": pingerFunc(func(context.Context) error { return nil }),
		})

		resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("dependency down", func(t *testing.T) {
		s := newTestServer(map[string]authhttp.Pinger{
			"redis": pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
		})

		resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "redis", body["dependency"])
	})
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	resp, _ := s.do(t, req)

	assert.Equal(t, "req-123", resp.Header.Get(middleware.HeaderRequestID))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(nil)

	resp, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPanicIsRecovered(t *testing.T) {
	s := newTestServer(nil)
	s.app.Get("/panic", func(fiber.Ctx) error { panic("boom") })

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", body["error"])
}
