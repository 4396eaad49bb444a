// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"accountauth/pkg/logger"
)

const (
	msgShutdownSignal   = "shutdown signal received"
	msgShutdownContext  = "shutdown requested by context"
	msgHookFailed       = "shutdown hook failed"
	msgShutdownTimedOut = "shutdown timed out"
)

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем параллельно выполняет хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, msgShutdownSignal, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, msgShutdownContext)
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn func(context.Context) error) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, msgHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, msgShutdownTimedOut, zap.Duration("timeout", timeout))
	}
}
