package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, log.WithField("test", "memory-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(memory) failed: %v", err)
	}
	if deps.kv == nil {
		t.Fatal("kv should not be nil for memory storage")
	}
	if deps.pgStore != nil {
		t.Fatal("pgStore should be nil for memory storage")
	}
}

func TestInitRuntimeDependencies_File(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverFile,
		DataDir:       t.TempDir(),
	}, log.WithField("test", "file-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(file) failed: %v", err)
	}
	if deps.kv == nil {
		t.Fatal("kv should not be nil for file storage")
	}
}

func TestInitRuntimeDependencies_FileRequiresDataDir(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverFile,
	}, log.WithField("test", "file-missing-dir"))
	if err == nil {
		t.Fatal("expected error when file driver is selected without data dir")
	}
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	if err == nil {
		t.Fatal("expected error when postgres driver is selected without DSN")
	}
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	if err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}
