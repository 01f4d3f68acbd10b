package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ecolog/freightquote/internal/config"
	"github.com/ecolog/freightquote/internal/domain"
	"github.com/ecolog/freightquote/internal/observability"
)

// Redis stores each quotation as a JSON string and keeps a capped list of IDs, newest first.
type Redis struct {
	client    *redis.Client
	keyPrefix string
	limit     int
}

// NewRedisFromConfig connects to Redis and verifies the connection.
func NewRedisFromConfig(ctx context.Context, cfg *config.RedisConfig, limit int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewRedis(client, cfg.KeyPrefix, limit), nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, keyPrefix string, limit int) *Redis {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if keyPrefix == "" {
		keyPrefix = "freightquote"
	}
	return &Redis{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
	}
}

func (r *Redis) listKey() string {
	return r.keyPrefix + ":quotations"
}

func (r *Redis) itemKey(id string) string {
	return r.keyPrefix + ":quotation:" + id
}

// Save stores a quotation at the head of the history and evicts entries beyond the limit.
func (r *Redis) Save(ctx context.Context, quotation *domain.Quotation) error {
	if quotation == nil || quotation.ID == "" {
		return errors.New("quotation id cannot be empty")
	}

	data, err := json.Marshal(quotation)
	if err != nil {
		return fmt.Errorf("failed to marshal quotation: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.itemKey(quotation.ID), data, 0)
		pipe.LRem(ctx, r.listKey(), 0, quotation.ID)
		pipe.LPush(ctx, r.listKey(), quotation.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save quotation: %w", err)
	}

	return r.evict(ctx)
}

func (r *Redis) evict(ctx context.Context) error {
	evicted, err := r.client.LRange(ctx, r.listKey(), int64(r.limit), -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read evicted quotations: %w", err)
	}
	if len(evicted) == 0 {
		return nil
	}

	keys := make([]string, 0, len(evicted))
	for _, id := range evicted {
		keys = append(keys, r.itemKey(id))
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LTrim(ctx, r.listKey(), 0, int64(r.limit-1))
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to evict quotations: %w", err)
	}

	observability.FromContext(ctx).Debug("evicted quotations from history",
		observability.Int("count", len(evicted)))
	return nil
}

// List returns up to limit quotations, newest first.
func (r *Redis) List(ctx context.Context, limit int) ([]*domain.Quotation, error) {
	if limit <= 0 || limit > r.limit {
		limit = r.limit
	}

	ids, err := r.client.LRange(ctx, r.listKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list quotation ids: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Quotation{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.itemKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load quotations: %w", err)
	}

	out := make([]*domain.Quotation, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Listed but expired or deleted concurrently.
			continue
		}
		var q domain.Quotation
		if unmarshalErr := json.Unmarshal([]byte(raw), &q); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to unmarshal quotation %s: %w", ids[i], unmarshalErr)
		}
		out = append(out, &q)
	}
	return out, nil
}

// Get retrieves a quotation by ID.
func (r *Redis) Get(ctx context.Context, id string) (*domain.Quotation, error) {
	data, err := r.client.Get(ctx, r.itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrQuotationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	var q domain.Quotation
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quotation: %w", err)
	}
	return &q, nil
}

// Delete removes a quotation by ID.
func (r *Redis) Delete(ctx context.Context, id string) error {
	var removed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.LRem(ctx, r.listKey(), 0, id)
		pipe.Del(ctx, r.itemKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	if removed.Val() == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
