package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/atelier/internal/health"
	"github.com/vladislavdragonenkov/atelier/internal/metrics"
	httpsvc "github.com/vladislavdragonenkov/atelier/internal/service/http"
	"github.com/vladislavdragonenkov/atelier/internal/service/notifier"
	"github.com/vladislavdragonenkov/atelier/internal/store"
	"github.com/vladislavdragonenkov/atelier/internal/version"
)

// Run запускает приложение целиком: хранилище, HTTP API, нотификатор
// сроков сдачи и сервер метрик. Блокируется до отмены контекста или
// фатальной ошибки сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	storeMetrics := metrics.NewStoreMetrics()
	customers := store.NewCustomerStore(deps.kv,
		store.WithLogger(logger.WithField("store", "customers")),
		store.WithMetrics(storeMetrics),
	)
	orders := store.NewOrderStore(deps.kv,
		store.WithLogger(logger.WithField("store", "orders")),
		store.WithMetrics(storeMetrics),
	)

	dueWorker := notifier.NewWorker(orders,
		notifier.WithLogger(logger.WithField("component", "notifier")),
		notifier.WithInterval(cfg.NotifierInterval),
	)
	go dueWorker.Run(ctx)

	service := httpsvc.NewService(customers, orders,
		httpsvc.WithLogger(logger.WithField("layer", "http")),
	)

	v, _, _ := version.Info()
	healthHandler := healthcheck.NewHandler(v)
	healthHandler.RegisterChecker("storage", healthcheck.NewStorageChecker(deps.kv))

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: service.Router()}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus
// вместе с health-пробами.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("server shutdown with error")
	}
}
