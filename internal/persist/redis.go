package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/record"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	// Addr is the Redis server address in "host:port" format.
	Addr string

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number.
	DB int

	// DialTimeout bounds connection setup and the initial ping.
	DialTimeout time.Duration
}

// Redis keeps the slot in a single Redis string key.
type Redis struct {
	client *redis.Client
	key    string
}

// OpenRedis connects to Redis and pings it.
func OpenRedis(ctx context.Context, cfg RedisConfig, key string) (*Redis, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		MaxRetries:  -1, // operations are never retried
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	if key == "" {
		key = DefaultSlot
	}
	return &Redis{client: client, key: key}, nil
}

// Load reads the key. A missing key loads as an empty sequence.
func (r *Redis) Load(ctx context.Context) ([]record.Record, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load key %q: %w", r.key, err)
	}
	return decodeSlot(data)
}

// Save overwrites the key without expiry.
func (r *Redis) Save(ctx context.Context, recs []record.Record) error {
	data, err := codec.EncodeCompact(recs)
	if err != nil {
		return fmt.Errorf("save key %q: %w", r.key, err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save key %q: %w", r.key, err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
