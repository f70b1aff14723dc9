// Package store реализует хранилища записей ателье: по одной JSON-коллекции
// на сущность под фиксированным ключом KV-бэкенда. Каждая мутация читает
// коллекцию целиком, меняет её и записывает обратно — при малых объёмах
// данных этого достаточно, а схема хранения остаётся совместимой с
// исходным приложением.
package store

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/atelier/internal/metrics"
)

// Options задаёт общие параметры хранилищ записей.
type Options struct {
	Logger  *log.Entry
	Clock   func() time.Time
	Metrics *metrics.StoreMetrics
}

// Option настраивает хранилище.
type Option func(*Options)

// WithLogger задаёт logger хранилища.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithClock задаёт источник текущего времени. Используется тестами
// производных запросов, завязанных на календарную дату.
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// WithMetrics подключает метрики операций хранилища.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

func buildOptions(component string, options []Option) Options {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", component)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return opts
}
