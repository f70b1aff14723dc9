package domain

import "context"

// KVStorage — порт к key-value хранилищу, в котором лежат сериализованные
// коллекции. Read для несуществующего ключа возвращает (nil, nil):
// отсутствие данных — не ошибка.
type KVStorage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Ключи коллекций в KV-хранилище. По одному JSON-массиву на сущность.
const (
	CustomersKey = "atelier:customers"
	OrdersKey    = "atelier:orders"
)
