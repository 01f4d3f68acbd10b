// Package store implements the quotation history backends.
package store

import (
	"context"
	"fmt"

	"github.com/ecolog/freightquote/internal/config"
	"github.com/ecolog/freightquote/internal/domain"
	"github.com/ecolog/freightquote/internal/observability"
)

// DefaultHistoryLimit is the number of quotations kept when no limit is configured.
const DefaultHistoryLimit = 100

// Backend names accepted by STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Open builds the configured quotation store (DI constructor).
func Open(
	storeCfg *config.StoreConfig,
	redisCfg *config.RedisConfig,
	postgresCfg *config.PostgresConfig,
) (domain.QuotationStore, error) {
	ctx := context.Background()
	logger := observability.FromContext(ctx)

	backend := storeCfg.Backend
	if backend == "" {
		backend = BackendMemory
	}
	logger.Info("opening quotation store",
		observability.String("backend", backend),
		observability.Int("history_limit", storeCfg.HistoryLimit))

	switch backend {
	case BackendMemory:
		return NewMemory(storeCfg.HistoryLimit), nil
	case BackendRedis:
		return NewRedisFromConfig(ctx, redisCfg, storeCfg.HistoryLimit)
	case BackendPostgres:
		return NewPostgres(ctx, postgresCfg.DSN, storeCfg.HistoryLimit)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
