package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the redis connection shared by the rate limiter and the game store
type Client interface {
	redis.UniversalClient
}
