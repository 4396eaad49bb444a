package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountauth/pkg/logger"
)

// ErrPanicRecovered возвращается вместо паники обработчика.
var ErrPanicRecovered = errors.New("panic recovered")

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(ctx)
				logger.Log(requestCtx).Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = ErrPanicRecovered
			}
		}()

		return ctx.Next()
	}
}
