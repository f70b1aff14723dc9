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

// CustomerStore реализует domain.CustomerRepository поверх KV-бэкенда.
// Мьютекс сериализует read-modify-write внутри процесса; два процесса
// над одним бэкендом по-прежнему могут затирать изменения друг друга —
// это принятое ограничение, унаследованное от исходной системы.
type CustomerStore struct {
	mu      sync.Mutex
	kv      domain.KVStorage
	logger  *log.Entry
	clock   func() time.Time
	metrics *metrics.StoreMetrics
}

// NewCustomerStore создаёт хранилище клиентов.
func NewCustomerStore(kv domain.KVStorage, options ...Option) *CustomerStore {
	opts := buildOptions("customer-store", options)
	return &CustomerStore{
		kv:      kv,
		logger:  opts.Logger,
		clock:   opts.Clock,
		metrics: opts.Metrics,
	}
}

// List возвращает всех клиентов в порядке добавления. Отсутствие данных —
// пустой список; повреждённые данные — пустой список вместе с ErrCorruptData.
func (s *CustomerStore) List() ([]domain.Customer, error) {
	started := time.Now()
	customers, err := s.readAll()
	s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpList, started, err)
	return customers, err
}

// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
func (s *CustomerStore) Get(id string) (domain.Customer, error) {
	started := time.Now()
	customers, _ := s.readAll()
	for _, customer := range customers {
		if customer.ID == id {
			s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpGet, started, nil)
			return customer, nil
		}
	}
	s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpGet, started, domain.ErrCustomerNotFound)
	return domain.Customer{}, domain.ErrCustomerNotFound
}

// Create присваивает id и таймстемпы, добавляет запись в конец коллекции
// и сохраняет её целиком. Переданные клиентом id/createdAt игнорируются.
func (s *CustomerStore) Create(customer domain.Customer) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	customers := s.readAllCoalesced()

	now := s.clock().UTC()
	customer.ID = uuid.NewString()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	customers = append(customers, customer)
	err := s.persist(customers)
	s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpCreate, started, err)
	if err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// Update накладывает patch на существующую запись и обновляет updatedAt.
// ErrCustomerNotFound — без побочных эффектов. id и createdAt неизменяемы
// по построению patch-типа.
func (s *CustomerStore) Update(id string, patch domain.CustomerPatch) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	customers := s.readAllCoalesced()

	idx := -1
	for i := range customers {
		if customers[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpUpdate, started, domain.ErrCustomerNotFound)
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	customer := customers[idx]
	if patch.Name != nil {
		customer.Name = *patch.Name
	}
	if patch.Phone != nil {
		customer.Phone = *patch.Phone
	}
	if patch.Email != nil {
		customer.Email = *patch.Email
	}
	if patch.Address != nil {
		customer.Address = *patch.Address
	}
	if patch.Measurements != nil {
		// Мерки заменяются целиком: merge одноуровневый, как в исходной системе.
		customer.Measurements = *patch.Measurements
	}
	customer.UpdatedAt = s.clock().UTC()

	customers[idx] = customer
	err := s.persist(customers)
	s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpUpdate, started, err)
	if err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// Delete удаляет запись и сохраняет отфильтрованную коллекцию.
// false — если записи не было (коллекция не перезаписывается).
func (s *CustomerStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	customers := s.readAllCoalesced()

	filtered := customers[:0:0]
	for _, customer := range customers {
		if customer.ID != id {
			filtered = append(filtered, customer)
		}
	}
	if len(filtered) == len(customers) {
		s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpDelete, started, nil)
		return false, nil
	}

	err := s.persist(filtered)
	s.metrics.RecordOp(metrics.EntityCustomer, metrics.OpDelete, started, err)
	if err != nil {
		return false, err
	}
	return true, nil
}

// readAll читает коллекцию. Повреждённые данные не валят путь чтения:
// возвращается пустой список и информационный ErrCorruptData.
func (s *CustomerStore) readAll() ([]domain.Customer, error) {
	data, err := s.kv.Read(context.Background(), domain.CustomersKey)
	if err != nil {
		s.logger.WithError(err).Warn("customers read failed, serving empty collection")
		return []domain.Customer{}, domain.ErrCorruptData
	}
	if len(data) == 0 {
		return []domain.Customer{}, nil
	}

	var customers []domain.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		s.logger.WithError(err).Warn("customers collection is corrupt, serving empty collection")
		s.metrics.RecordCorruptRead(metrics.EntityCustomer)
		return []domain.Customer{}, domain.ErrCorruptData
	}
	return customers, nil
}

// readAllCoalesced — чтение для мутаций: повреждённая коллекция считается
// пустой, первая же успешная запись перезапишет её валидным JSON.
func (s *CustomerStore) readAllCoalesced() []domain.Customer {
	customers, _ := s.readAll()
	return customers
}

func (s *CustomerStore) persist(customers []domain.Customer) error {
	data, err := json.Marshal(customers)
	if err != nil {
		return err
	}
	return s.kv.Write(context.Background(), domain.CustomersKey, data)
}

var _ domain.CustomerRepository = (*CustomerStore)(nil)
