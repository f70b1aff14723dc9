package app

import "time"

// Драйверы хранилища, поддерживаемые приложением.
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver string
	// DataDir используется драйвером file.
	DataDir string
	// PostgresDSN используется драйвером postgres.
	PostgresDSN         string
	PostgresAutoMigrate bool

	NotifierInterval time.Duration
}

// DefaultConfig возвращает базовые настройки: HTTP API, метрики и
// хранилище в памяти.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		DataDir:             "./data",
		PostgresAutoMigrate: true,
		NotifierInterval:    time.Minute,
	}
}
