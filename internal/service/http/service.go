// Package httpsvc реализует JSON API сервиса поверх доменных хранилищ.
// Списочные представления (поиск, фильтры, сортировка по дате сдачи,
// признаки "просрочен"/"скоро сдача") считаются здесь, на вызывающем
// слое: хранилища отдают коллекции в порядке добавления.
package httpsvc

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

// Service агрегирует зависимости HTTP-обработчиков.
type Service struct {
	customers domain.CustomerRepository
	orders    domain.OrderRepository
	logger    *log.Entry
	clock     func() time.Time
}

// ServiceOptions задаёт необязательные параметры сервиса.
type ServiceOptions struct {
	Logger *log.Entry
	Clock  func() time.Time
}

// ServiceOption настраивает Service.
type ServiceOption func(*ServiceOptions)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.Logger = logger
	}
}

// WithClock задаёт источник текущего времени для презентационных
// предикатов по датам.
func WithClock(clock func() time.Time) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.Clock = clock
	}
}

// NewService конструирует сервис с зависимостями.
func NewService(customers domain.CustomerRepository, orders domain.OrderRepository, options ...ServiceOption) *Service {
	opts := ServiceOptions{}
	for _, option := range options {
		option(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "http-service")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Service{
		customers: customers,
		orders:    orders,
		logger:    opts.Logger,
		clock:     opts.Clock,
	}
}
