package main

import (
	"context"
	"io"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ecolog/freightquote/internal/config"
	"github.com/ecolog/freightquote/internal/domain"
	"github.com/ecolog/freightquote/internal/http"
	"github.com/ecolog/freightquote/internal/http/middleware"
	"github.com/ecolog/freightquote/internal/metrics"
	"github.com/ecolog/freightquote/internal/observability"
	"github.com/ecolog/freightquote/internal/rates"
	"github.com/ecolog/freightquote/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, quotationStore domain.QuotationStore, logger *zap.Logger) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- server.Start()
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", observability.Error(err))
			}
		}

		if closer, ok := quotationStore.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close quotation store", observability.Error(err))
			}
		}
		_ = logger.Sync()
		return nil
	})
	if err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}
	if err := container.Provide(metrics.New); err != nil {
		log.Fatalf("Failed to provide metrics: %v", err)
	}
	if err := container.Provide(func(m *metrics.Metrics) domain.QuotationRecorder {
		return m
	}); err != nil {
		log.Fatalf("Failed to provide quotation recorder: %v", err)
	}

	// Rates and estimator
	if err := container.Provide(rates.Load); err != nil {
		log.Fatalf("Failed to provide rate table: %v", err)
	}
	if err := container.Provide(func(table domain.RateTable) domain.Estimator {
		return domain.NewFreightEstimator(table)
	}); err != nil {
		log.Fatalf("Failed to provide estimator: %v", err)
	}

	// Quotation history
	if err := container.Provide(store.Open); err != nil {
		log.Fatalf("Failed to provide quotation store: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewQuotationService); err != nil {
		log.Fatalf("Failed to provide quotation service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

