package logger

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	loggerKey    struct{}
	requestIDKey struct{}
)

var (
	mu       sync.RWMutex
	global   *Logger
	fallback = newFallback()
)

// newFallback пишет только предупреждения и ошибки, пока глобальный логгер не задан.
func newFallback() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	return &Logger{l: zl.With(zap.String("logger", "fallback"))}
}

// SetGlobalLogger заменяет глобальный логгер. nil возвращает резервный.
func SetGlobalLogger(l *Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// NewContext привязывает логгер к контексту.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Log возвращает логгер контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
			return l
		}
	}

	mu.RLock()
	defer mu.RUnlock()
	if global != nil {
		return global
	}
	return fallback
}

// WithRequestID сохраняет идентификатор запроса в контексте и возвращает его.
// Пустой идентификатор заменяется новым UUID.
func WithRequestID(ctx context.Context, id string) (context.Context, string) {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey{}, id), id
}

func requestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
