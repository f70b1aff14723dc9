package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

const opTimeout = 5 * time.Second

// kvStorage — PostgreSQL-реализация KVStorage поверх таблицы atelier_kv.
// Коллекции хранятся так же, как в остальных бэкендах: одно значение на ключ.
type kvStorage struct {
	db *sql.DB
}

// NewKVStorage создаёт PostgreSQL-реализацию KVStorage.
func NewKVStorage(store *Store) domain.KVStorage {
	return &kvStorage{db: store.DB()}
}

// Read возвращает значение по ключу или (nil, nil), если ключа нет.
func (s *kvStorage) Read(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value
		FROM atelier_kv
		WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select kv value: %w", err)
	}

	return value, nil
}

// Write сохраняет значение по ключу (upsert).
func (s *kvStorage) Write(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO atelier_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
	`, key, value); err != nil {
		return fmt.Errorf("upsert kv value: %w", err)
	}

	return nil
}

// Delete удаляет ключ. Отсутствующий ключ — не ошибка.
func (s *kvStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM atelier_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete kv value: %w", err)
	}

	return nil
}

var _ domain.KVStorage = (*kvStorage)(nil)
