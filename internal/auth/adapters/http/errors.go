package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"accountauth/internal/auth/adapters/http/dto"
	"accountauth/internal/auth/adapters/http/middleware"
	"accountauth/internal/auth/domain/services"
	"accountauth/pkg/logger"
)

const (
	ErrorInvalidRequest  = "invalid request body"
	ErrorInternal        = "internal server error"
	LogUnhandledError    = "unhandled request error"
	headerAuthenticate   = "WWW-Authenticate"
	authenticateScheme   = "Bearer"
	logMsgFailedResponse = "failed to send error response"
)

// ErrMalformedBody возвращается, если тело запроса не удалось разобрать.
var ErrMalformedBody = errors.New(ErrorInvalidRequest)

// ErrorHandler переводит ошибки домена в HTTP ответы.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	status, body := classify(err)

	if status >= fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, LogUnhandledError, zap.Error(err))
	}
	if status == fiber.StatusUnauthorized {
		ctx.Set(headerAuthenticate, authenticateScheme)
	}

	if sendErr := ctx.Status(status).JSON(body); sendErr != nil {
		logger.Log(requestCtx).Error(requestCtx, logMsgFailedResponse, zap.Error(sendErr))
		return sendErr
	}
	return nil
}

func classify(err error) (int, dto.ErrorResponse) {
	var (
		validationErr   *services.ValidationError
		registrationErr *services.RegistrationError
		authErr         *services.AuthError
		fiberErr        *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Error: validationErr.Message, Field: validationErr.Field}
	case errors.Is(err, ErrMalformedBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: ErrorInvalidRequest}
	case errors.As(err, &registrationErr):
		return fiber.StatusConflict, dto.ErrorResponse{Error: registrationErr.Message}
	case errors.As(err, &authErr):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Error: authErr.Message}
	case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
		return fiberErr.Code, dto.ErrorResponse{Error: fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Error: ErrorInternal}
	}
}
