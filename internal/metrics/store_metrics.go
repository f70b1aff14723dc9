package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Имена сущностей и операций для лейблов метрик хранилища.
const (
	EntityCustomer = "customer"
	EntityOrder    = "order"

	OpList     = "list"
	OpGet      = "get"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpDueToday = "due_today"
	OpDueSoon  = "due_soon"
)

// StoreMetrics содержит метрики операций хранилища записей.
// nil-получатель безопасен: метрики можно не подключать.
type StoreMetrics struct {
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
	corrupt  *prometheus.CounterVec
}

// NewStoreMetrics создаёт метрики хранилища в default registry.
func NewStoreMetrics() *StoreMetrics {
	return newStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		ops: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "atelier_store_operations_total",
			Help: "Total number of record store operations grouped by entity, operation and result.",
		}, []string{"entity", "op", "result"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "atelier_store_operation_duration_seconds",
			Help:    "Duration of record store operations in seconds.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"entity", "op"}),
		corrupt: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "atelier_store_corrupt_reads_total",
			Help: "Total number of reads that found an unparseable persisted collection.",
		}, []string{"entity"}),
	}
}

// RecordOp фиксирует исход и длительность операции хранилища.
func (m *StoreMetrics) RecordOp(entity, op string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ops.WithLabelValues(entity, op, result).Inc()
	m.duration.WithLabelValues(entity, op).Observe(time.Since(started).Seconds())
}

// RecordCorruptRead фиксирует чтение повреждённой коллекции.
func (m *StoreMetrics) RecordCorruptRead(entity string) {
	if m == nil {
		return
	}
	m.corrupt.WithLabelValues(entity).Inc()
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
