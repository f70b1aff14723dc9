package notifier

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

// Интервал повторяет исходный badge: пересчёт раз в минуту.
const defaultPollInterval = time.Minute

var (
	notifierPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_notifier_polls_total",
		Help: "Total number of due-soon notifier polls grouped by result.",
	}, []string{"result"})
	notifierDueSoonOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "atelier_orders_due_soon",
		Help: "Number of uncompleted orders due today or tomorrow.",
	})
)

// WorkerOptions задаёт параметры воркера уведомлений.
type WorkerOptions struct {
	Logger   *log.Entry
	Interval time.Duration
}

// Option настраивает Worker.
type Option func(*WorkerOptions)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *WorkerOptions) {
		opts.Logger = logger
	}
}

// WithInterval задаёт интервал между опросами.
func WithInterval(interval time.Duration) Option {
	return func(opts *WorkerOptions) {
		opts.Interval = interval
	}
}

// Worker периодически пересчитывает количество "срочных" заказов
// (сдача сегодня или завтра, не завершены) и публикует его в метрику.
// Кооперативный фоновый цикл без ретраев: следующий тик исправит
// разовый сбой чтения.
type Worker struct {
	repo      domain.OrderRepository
	logger    *log.Entry
	interval  time.Duration
	lastCount int
}

// NewWorker создаёт воркер уведомлений.
func NewWorker(repo domain.OrderRepository, options ...Option) *Worker {
	opts := WorkerOptions{
		Interval: defaultPollInterval,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "due-soon-notifier")
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultPollInterval
	}

	return &Worker{
		repo:      repo,
		logger:    logger,
		interval:  opts.Interval,
		lastCount: -1,
	}
}

// Run запускает периодический опрос до отмены ctx. Первый опрос — сразу.
func (w *Worker) Run(ctx context.Context) {
	if w.repo == nil {
		w.logger.Warn("due-soon notifier is disabled: repo is nil")
		return
	}

	w.poll()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Worker) poll() {
	count, err := w.Poll()
	if err != nil {
		// Повреждённая коллекция читается как пустая: это информационный
		// сигнал, а не сбой опроса.
		if !domain.IsCorruptData(err) {
			notifierPollsTotal.WithLabelValues("error").Inc()
			w.logger.WithError(err).Warn("due-soon poll failed")
			return
		}
	}

	notifierPollsTotal.WithLabelValues("ok").Inc()
	notifierDueSoonOrders.Set(float64(count))

	if count != w.lastCount {
		w.logger.WithField("due_soon", count).Info("urgent order count changed")
		w.lastCount = count
	}
}

// Poll выполняет один пересчёт и возвращает количество срочных заказов.
func (w *Worker) Poll() (int, error) {
	orders, err := w.repo.DueSoon()
	if err != nil {
		return len(orders), err
	}
	return len(orders), nil
}
