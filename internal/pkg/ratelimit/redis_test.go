package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
	"github.com/KirkDiggler/alter-ego/internal/pkg/ratelimit"
	"github.com/KirkDiggler/alter-ego/internal/redis"
	"github.com/KirkDiggler/alter-ego/internal/testutils"
)

type RedisLimiterTestSuite struct {
	suite.Suite
	client  redis.Client
	cleanup func()
	limiter *ratelimit.Redis
	ctx     context.Context
	now     time.Time
}

func TestRedisLimiterSuite(t *testing.T) {
	suite.Run(t, new(RedisLimiterTestSuite))
}

func (s *RedisLimiterTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var err error
	s.limiter, err = ratelimit.NewRedis(&ratelimit.RedisConfig{
		Client: s.client,
		Clock:  clock.Func(func() time.Time { return s.now }),
	})
	s.Require().NoError(err)
}

func (s *RedisLimiterTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisLimiterTestSuite) consume(identity string) bool {
	allowed, err := s.limiter.CheckAndConsume(s.ctx, identity)
	s.Require().NoError(err)
	return allowed
}

func (s *RedisLimiterTestSuite) TestMatchesFixedWindow() {
	start := s.now
	for i := 0; i < 5; i++ {
		s.Assert().True(s.consume("1.2.3.4"), "call %d", i+1)
	}
	s.Assert().False(s.consume("1.2.3.4"))
	s.Assert().True(s.consume("5.6.7.8"))

	s.now = start.Add(ratelimit.DefaultWindow + time.Millisecond)
	s.Assert().True(s.consume("1.2.3.4"))

	count, err := s.client.HGet(s.ctx, "ratelimit:1.2.3.4", "count").Int()
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *RedisLimiterTestSuite) TestSetsExpiry() {
	s.Require().True(s.consume("1.2.3.4"))

	ttl, err := s.client.PTTL(s.ctx, "ratelimit:1.2.3.4").Result()
	s.Require().NoError(err)
	s.Assert().Equal(2*ratelimit.DefaultWindow, ttl)
}

func (s *RedisLimiterTestSuite) TestRequiresClient() {
	_, err := ratelimit.NewRedis(&ratelimit.RedisConfig{})
	s.Assert().Error(err)
}
