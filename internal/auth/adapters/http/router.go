// Package http содержит HTTP транспорт сервиса учетных записей.
package http

import (
	"github.com/gofiber/fiber/v3"

	"accountauth/internal/auth/adapters/http/middleware"
	"accountauth/internal/auth/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, handler *Handler, accounts api.AccountUseCase) {
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", handler.Health)

	// Публичные маршруты.
	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)
	app.Post("/token", handler.Token)

	// Защищенные маршруты.
	users := app.Group("/users", middleware.NewAuthMiddleware(accounts))
	users.Get("/me", handler.Me)
	users.Get("/", handler.ListAccounts)
}
