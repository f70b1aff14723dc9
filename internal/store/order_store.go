package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
	"github.com/vladislavdragonenkov/atelier/internal/metrics"
)

// OrderStore реализует domain.OrderRepository поверх KV-бэкенда.
// Устроен зеркально CustomerStore и добавляет два производных запроса
// по дате сдачи.
type OrderStore struct {
	mu      sync.Mutex
	kv      domain.KVStorage
	logger  *log.Entry
	clock   func() time.Time
	metrics *metrics.StoreMetrics
}

// NewOrderStore создаёт хранилище заказов.
func NewOrderStore(kv domain.KVStorage, options ...Option) *OrderStore {
	opts := buildOptions("order-store", options)
	return &OrderStore{
		kv:      kv,
		logger:  opts.Logger,
		clock:   opts.Clock,
		metrics: opts.Metrics,
	}
}

// List возвращает все заказы в порядке добавления. Сортировка и фильтры
// списочных представлений — ответственность вызывающего слоя.
func (s *OrderStore) List() ([]domain.Order, error) {
	started := time.Now()
	orders, err := s.readAll()
	s.metrics.RecordOp(metrics.EntityOrder, metrics.OpList, started, err)
	return orders, err
}

// Get возвращает заказ по идентификатору или ErrOrderNotFound.
func (s *OrderStore) Get(id string) (domain.Order, error) {
	started := time.Now()
	orders, _ := s.readAll()
	for _, order := range orders {
		if order.ID == id {
			s.metrics.RecordOp(metrics.EntityOrder, metrics.OpGet, started, nil)
			return order, nil
		}
	}
	s.metrics.RecordOp(metrics.EntityOrder, metrics.OpGet, started, domain.ErrOrderNotFound)
	return domain.Order{}, domain.ErrOrderNotFound
}

// Create присваивает id и таймстемпы, добавляет заказ в конец коллекции
// и сохраняет её целиком. Пустой статус означает pending.
func (s *OrderStore) Create(order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	orders := s.readAllCoalesced()

	now := s.clock().UTC()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	orders = append(orders, order)
	err := s.persist(orders)
	s.metrics.RecordOp(metrics.EntityOrder, metrics.OpCreate, started, err)
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Update накладывает patch на существующий заказ и обновляет updatedAt.
// Переходы статуса не проверяются: любой статус можно сменить на любой,
// включая возврат completed в работу.
func (s *OrderStore) Update(id string, patch domain.OrderPatch) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	orders := s.readAllCoalesced()

	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.metrics.RecordOp(metrics.EntityOrder, metrics.OpUpdate, started, domain.ErrOrderNotFound)
		return domain.Order{}, domain.ErrOrderNotFound
	}

	order := orders[idx]
	if patch.CustomerID != nil {
		order.CustomerID = *patch.CustomerID
	}
	if patch.CustomerName != nil {
		order.CustomerName = *patch.CustomerName
	}
	if patch.ContactNumber != nil {
		order.ContactNumber = *patch.ContactNumber
	}
	if patch.ItemDetails != nil {
		order.ItemDetails = *patch.ItemDetails
	}
	if patch.DueDate != nil {
		order.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Images != nil {
		order.Images = *patch.Images
	}
	order.UpdatedAt = s.clock().UTC()

	orders[idx] = order
	err := s.persist(orders)
	s.metrics.RecordOp(metrics.EntityOrder, metrics.OpUpdate, started, err)
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Delete удаляет заказ и сохраняет отфильтрованную коллекцию.
// false — если заказа не было (коллекция не перезаписывается).
func (s *OrderStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	orders := s.readAllCoalesced()

	filtered := orders[:0:0]
	for _, order := range orders {
		if order.ID != id {
			filtered = append(filtered, order)
		}
	}
	if len(filtered) == len(orders) {
		s.metrics.RecordOp(metrics.EntityOrder, metrics.OpDelete, started, nil)
		return false, nil
	}

	err := s.persist(filtered)
	s.metrics.RecordOp(metrics.EntityOrder, metrics.OpDelete, started, err)
	if err != nil {
		return false, err
	}
	return true, nil
}

// DueToday возвращает незавершённые заказы со сдачей сегодня.
// Сравнение строковое, только по календарной дате.
func (s *OrderStore) DueToday() ([]domain.Order, error) {
	started := time.Now()
	today := s.clock().Format(domain.DueDateLayout)

	orders, err := s.readAll()
	due := make([]domain.Order, 0)
	for _, order := range orders {
		if order.DueDate == today && order.Status != domain.OrderStatusCompleted {
			due = append(due, order)
		}
	}
	s.metrics.RecordOp(metrics.EntityOrder, metrics.OpDueToday, started, err)
	return due, err
}

// DueSoon возвращает незавершённые заказы со сдачей сегодня или завтра.
func (s *OrderStore) DueSoon() ([]domain.Order, error) {
	started := time.Now()
	now := s.clock()
	today := now.Format(domain.DueDateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(domain.DueDateLayout)

	orders, err := s.readAll()
	due := make([]domain.Order, 0)
	for _, order := range orders {
		if (order.DueDate == today || order.DueDate == tomorrow) && order.Status != domain.OrderStatusCompleted {
			due = append(due, order)
		}
	}
	s.metrics.RecordOp(metrics.EntityOrder, metrics.OpDueSoon, started, err)
	return due, err
}

func (s *OrderStore) readAll() ([]domain.Order, error) {
	data, err := s.kv.Read(context.Background(), domain.OrdersKey)
	if err != nil {
		s.logger.WithError(err).Warn("orders read failed, serving empty collection")
		return []domain.Order{}, domain.ErrCorruptData
	}
	if len(data) == 0 {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		s.logger.WithError(err).Warn("orders collection is corrupt, serving empty collection")
		s.metrics.RecordCorruptRead(metrics.EntityOrder)
		return []domain.Order{}, domain.ErrCorruptData
	}
	return orders, nil
}

func (s *OrderStore) readAllCoalesced() []domain.Order {
	orders, _ := s.readAll()
	return orders
}

func (s *OrderStore) persist(orders []domain.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return s.kv.Write(context.Background(), domain.OrdersKey, data)
}

var _ domain.OrderRepository = (*OrderStore)(nil)
