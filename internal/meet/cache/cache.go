// Package cache stores built scoreboards in Redis. Entries are keyed by a
// generation counter; any meet mutation bumps the counter, which orphans every
// earlier entry until its TTL runs out.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "clubswim:scoreboard"
	defaultTTL    = 5 * time.Minute
)

type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

func NewRedis(client redis.UniversalClient, opts ...Option) *Redis {
	r := &Redis{client: client, prefix: defaultPrefix, ttl: defaultTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) generationKey() string {
	return r.prefix + ":generation"
}

func (r *Redis) entryKey(generation int64, key string) string {
	return r.prefix + ":" + strconv.FormatInt(generation, 10) + ":" + key
}

// Generation returns the current generation; 0 before the first mutation.
func (r *Redis) Generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, r.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read scoreboard generation: %w", err)
	}
	return gen, nil
}

// Get decodes the entry for key into dst. It reports false on a miss.
func (r *Redis) Get(ctx context.Context, generation int64, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, r.entryKey(generation, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read scoreboard %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode scoreboard %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under the generation it was built from. A build that raced
// a mutation lands in a generation nobody reads anymore.
func (r *Redis) Set(ctx context.Context, generation int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode scoreboard %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.entryKey(generation, key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("write scoreboard %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Incr(ctx, r.generationKey()).Err(); err != nil {
		return fmt.Errorf("bump scoreboard generation: %w", err)
	}
	return nil
}
