package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

// kvStorageOnDisk хранит по одному файлу на ключ в каталоге данных.
// Это локальный односерверный бэкенд: аналог браузерного key-value
// хранилища, из которого выросла система.
type kvStorageOnDisk struct {
	mu  sync.Mutex
	dir string
}

// NewKVStorage создаёт файловое KV-хранилище в каталоге dir.
func NewKVStorage(dir string) (domain.KVStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file storage: data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file storage: create data dir: %w", err)
	}
	return &kvStorageOnDisk{dir: dir}, nil
}

// Read возвращает содержимое файла ключа или (nil, nil), если файла нет.
func (s *kvStorageOnDisk) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("file storage: read %q: %w", key, err)
	}
	return data, nil
}

// Write записывает значение атомарно: во временный файл с последующим rename.
func (s *kvStorageOnDisk) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("file storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("file storage: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("file storage: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("file storage: rename %q: %w", key, err)
	}
	return nil
}

// Delete удаляет файл ключа. Отсутствующий файл — не ошибка.
func (s *kvStorageOnDisk) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file storage: delete %q: %w", key, err)
	}
	return nil
}

// path превращает ключ в безопасное имя файла внутри каталога данных.
// Разделители путей и двоеточия ключей заменяются, выход за пределы
// каталога невозможен.
func (s *kvStorageOnDisk) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}

var _ domain.KVStorage = (*kvStorageOnDisk)(nil)
