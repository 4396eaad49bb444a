package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountauth/internal/auth/ports/api"
	"accountauth/pkg/logger"
)

const (
	appName = "accountauth"

	LogStartingServer = "starting HTTP server"
	LogStoppingServer = "stopping HTTP server"
	ErrServe          = "failed to serve HTTP"
	ErrShutdown       = "failed to shutdown HTTP server"
)

// ServerConfig содержит параметры HTTP сервера.
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server представляет HTTP сервер.
type Server struct {
	app     *fiber.App
	address string
}

// NewApp создает fiber приложение с обработчиком ошибок и маршрутами.
func NewApp(cfg ServerConfig, handler *Handler, accounts api.AccountUseCase) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: ErrorHandler,
	})
	SetupRouter(app, handler, accounts)
	return app
}

// NewServer создает новый HTTP сервер.
func NewServer(cfg ServerConfig, handler *Handler, accounts api.AccountUseCase) *Server {
	return &Server{
		app:     NewApp(cfg, handler, accounts),
		address: cfg.Address,
	}
}

// Start запускает сервер в отдельной горутине. Ошибка запуска передается в канал.
func (s *Server) Start(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	logger.Log(ctx).Info(ctx, LogStartingServer, zap.String("address", s.address))

	go func() {
		defer close(errCh)
		if err := s.app.Listen(s.address); err != nil {
			logger.Log(ctx).Error(ctx, ErrServe, zap.Error(err))
			errCh <- fmt.Errorf("%s: %w", ErrServe, err)
		}
	}()

	return errCh
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogStoppingServer)
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrShutdown, err)
	}
	return nil
}

// App возвращает fiber приложение.
func (s *Server) App() *fiber.App {
	return s.app
}
