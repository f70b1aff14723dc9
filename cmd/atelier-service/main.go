package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/atelier/internal/app"
	"github.com/vladislavdragonenkov/atelier/internal/version"
)

// Переменные окружения сервиса.
const (
	envHTTPAddr            = "ATELIER_HTTP_ADDR"
	envMetricsAddr         = "ATELIER_METRICS_ADDR"
	envStorageDriver       = "ATELIER_STORAGE_DRIVER"
	envDataDir             = "ATELIER_DATA_DIR"
	envPostgresDSN         = "ATELIER_POSTGRES_DSN"
	envPostgresAutoMigrate = "ATELIER_POSTGRES_AUTO_MIGRATE"
	envNotifierInterval    = "ATELIER_NOTIFIER_INTERVAL"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения из переменных
// окружения. Некорректные значения не прерывают запуск: поле остаётся
// со значением по умолчанию, а причина возвращается в warnings.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if v, ok := lookupTrimmed(lookup, envHTTPAddr); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := lookupTrimmed(lookup, envMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookupTrimmed(lookup, envStorageDriver); ok {
		cfg.StorageDriver = strings.ToLower(v)
	}
	if v, ok := lookupTrimmed(lookup, envDataDir); ok {
		cfg.DataDir = v
	}
	if v, ok := lookupTrimmed(lookup, envPostgresDSN); ok {
		cfg.PostgresDSN = v
	}

	if raw, ok := lookupTrimmed(lookup, envPostgresAutoMigrate); ok {
		value, err := parseBool(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envPostgresAutoMigrate, err))
		} else {
			cfg.PostgresAutoMigrate = value
		}
	}

	if raw, ok := lookupTrimmed(lookup, envNotifierInterval); ok {
		value, err := parseDuration(raw, func(v time.Duration) bool { return v > 0 }, "must be > 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envNotifierInterval, err))
		} else {
			cfg.NotifierInterval = value
		}
	}

	return cfg, warnings
}

func lookupTrimmed(lookup envLookup, key string) (string, bool) {
	raw, ok := lookup(key)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	return value, true
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	if !valid(value) {
		return 0, fmt.Errorf("duration %q %s", raw, rule)
	}
	return value, nil
}

func main() {
	setupLogger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("не удалось прочитать .env")
	}

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"build":          version.String(),
	}).Info("запускаем atelier")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("atelier остановлен")
}
