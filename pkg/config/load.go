// Package config предоставляет загрузку конфигурации из YAML-файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"accountauth/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgConfigFileMissing       = "configuration file not found, using environment only"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет конфигурацию типа T.
// Если path указывает на существующий файл, значения читаются из него и
// перекрываются переменными окружения; иначе используются только переменные окружения
// и значения env-default.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	var cfg T

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
			}
			log.Info(ctx, msgConfigurationLoaded)
			return &cfg, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
		}
		log.Warn(ctx, msgConfigFileMissing, zap.String(attrPath, path))
	}

	log.Info(ctx, msgLoadingConfiguration)
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
