package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/redis/go-redis/v9"
)

// RedisProcessedStore shares processed event keys between consumer replicas.
type RedisProcessedStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisProcessedStore connects to url and verifies the connection.
func NewRedisProcessedStore(
	url, prefix string,
	ttl time.Duration,
	logger *slog.Logger,
) (*RedisProcessedStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisProcessedStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("store", "redis"),
	}, nil
}

func (r *RedisProcessedStore) key(key string) string {
	return r.prefix + "processed:" + key
}

func (r *RedisProcessedStore) Seen(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		r.logger.Error("Redis processed lookup error", "key", key, "error", err)
		return false, err
	}
	return n > 0, nil
}

func (r *RedisProcessedStore) MarkProcessed(ctx context.Context, key string) error {
	if err := r.client.Set(ctx, r.key(key), time.Now().UTC().Format(time.RFC3339Nano), r.ttl).Err(); err != nil {
		r.logger.Error("Redis processed set error", "key", key, "error", err)
		return err
	}
	return nil
}

// Close releases the client.
func (r *RedisProcessedStore) Close() error {
	return r.client.Close()
}

var _ repository.ProcessedEventStore = (*RedisProcessedStore)(nil)
