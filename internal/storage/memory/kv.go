package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

// kvStorageInMemory — простая in-memory реализация KVStorage.
type kvStorageInMemory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewKVStorage возвращает in-memory KV-хранилище для локальной разработки и тестов.
func NewKVStorage() domain.KVStorage {
	return &kvStorageInMemory{
		items: make(map[string][]byte),
	}
}

// Read возвращает значение по ключу или (nil, nil), если ключа нет.
func (s *kvStorageInMemory) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	// Отдаём копию, чтобы избежать непредсказуемых мутаций извне.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Write сохраняет копию значения по ключу.
func (s *kvStorageInMemory) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.items[key] = stored
	return nil
}

// Delete удаляет ключ. Отсутствующий ключ — не ошибка.
func (s *kvStorageInMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

var _ domain.KVStorage = (*kvStorageInMemory)(nil)
