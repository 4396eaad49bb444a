package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountauth/pkg/logger"
)

const (
	LogRequestStarted   = "request started"
	LogRequestCompleted = "request completed"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// Ошибка обработчика возвращается дальше в ErrorHandler без изменений.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		start := time.Now()

		log := logger.Log(requestCtx).With(zap.String("ip", ctx.IP()))
		log.Debug(requestCtx, LogRequestStarted)

		err := ctx.Next()

		fields := []zap.Field{zap.Duration("latency", time.Since(start))}
		if err != nil {
			log.Info(requestCtx, LogRequestFailed, append(fields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, LogRequestCompleted, append(fields, zap.Int("status", ctx.Response().StatusCode()))...)
		return nil
	}
}
