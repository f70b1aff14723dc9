package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
	"github.com/vladislavdragonenkov/atelier/internal/storage/file"
	"github.com/vladislavdragonenkov/atelier/internal/storage/memory"
	"github.com/vladislavdragonenkov/atelier/internal/storage/postgres"
)

// runtimeDependencies содержит инфраструктурные зависимости приложения,
// выбранные по конфигурации.
type runtimeDependencies struct {
	kv      domain.KVStorage
	pgStore *postgres.Store
}

// close освобождает ресурсы хранилища.
func (d *runtimeDependencies) close(logger *log.Entry) {
	if d.pgStore == nil {
		return
	}
	if err := d.pgStore.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
	}
}

// initRuntimeDependencies инициализирует хранилище по указанному драйверу.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		logger.Info("используем хранилище в памяти")
		return &runtimeDependencies{kv: memory.NewKVStorage()}, nil

	case StorageDriverFile:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("file storage driver requires a data directory")
		}
		kv, err := file.NewKVStorage(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		logger.WithField("data_dir", cfg.DataDir).Info("используем файловое хранилище")
		return &runtimeDependencies{kv: kv}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage driver requires a DSN")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}

		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure postgres schema: %w", err)
			}
		}

		logger.Info("используем хранилище postgres")
		return &runtimeDependencies{
			kv:      postgres.NewKVStorage(store),
			pgStore: store,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.StorageDriver)
	}
}
