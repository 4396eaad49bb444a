// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountauth/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const localsRequestContext = "requestContext"

// NewRequestIDMiddleware создает контекст запроса с идентификатором и logger,
// к которому привязаны путь и метод запроса.
// Идентификатор берется из заголовка X-Request-ID или генерируется.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx, requestID := logger.WithRequestID(ctx.Context(), ctx.Get(HeaderRequestID))
		requestLogger := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("http_method", ctx.Method()),
		)
		requestCtx = logger.NewContext(requestCtx, requestLogger)

		ctx.Locals(localsRequestContext, requestCtx)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст текущего запроса.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
