package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/alter-ego/internal/redis"
)

const keyPrefix = "ratelimit:"

// fixedWindowScript runs the whole decision atomically.
// KEYS[1] identity hash, ARGV now(ms), window(ms), capacity, expiry(ms).
var fixedWindowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local capacity = tonumber(ARGV[3])

local start = tonumber(redis.call('HGET', KEYS[1], 'start'))
if start == nil or now - start > window then
  redis.call('HSET', KEYS[1], 'count', 1, 'start', ARGV[1])
  redis.call('PEXPIRE', KEYS[1], ARGV[4])
  return 1
end

local count = tonumber(redis.call('HGET', KEYS[1], 'count'))
if count >= capacity then
  return 0
end

redis.call('HINCRBY', KEYS[1], 'count', 1)
return 1
`)

// Redis is a Limiter shared by every server instance pointed at the same redis
type Redis struct {
	client redisclient.Client
	clock  clock.Clock
	limits Config
	prefix string
}

// RedisConfig configures NewRedis
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	Limits Config

	// Prefix namespaces keys; defaults to "ratelimit:"
	Prefix string
}

// Validate ensures the config is usable
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Prefix == "" {
		c.Prefix = keyPrefix
	}
	return c.Limits.Validate()
}

// NewRedis creates a redis-backed limiter
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid rate limiter config")
	}

	return &Redis{
		client: cfg.Client,
		clock:  cfg.Clock,
		limits: cfg.Limits,
		prefix: cfg.Prefix,
	}, nil
}

// CheckAndConsume implements Limiter
func (l *Redis) CheckAndConsume(ctx context.Context, identity string) (bool, error) {
	key := fmt.Sprintf("%s%s", l.prefix, NormalizeIdentity(identity))

	allowed, err := fixedWindowScript.Run(ctx, l.client, []string{key},
		l.clock.Now().UnixMilli(),
		l.limits.Window.Milliseconds(),
		l.limits.Capacity,
		(2 * l.limits.Window).Milliseconds(),
	).Int()
	if err != nil {
		return false, errors.Wrapf(err, "failed to check rate limit for %s", identity)
	}

	return allowed == 1, nil
}
