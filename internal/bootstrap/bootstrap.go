// Package bootstrap assembles the generation pipeline and its collaborators
// from configuration. Both the server and the in-process play mode use it.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/alter-ego/internal/clients/content"
	"github.com/KirkDiggler/alter-ego/internal/clients/gemini"
	"github.com/KirkDiggler/alter-ego/internal/clients/manifest"
	"github.com/KirkDiggler/alter-ego/internal/config"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	"github.com/KirkDiggler/alter-ego/internal/pkg/observability"
	"github.com/KirkDiggler/alter-ego/internal/pkg/ratelimit"
	"github.com/KirkDiggler/alter-ego/internal/redis"
)

// Limiter is a request gate plus whatever must run or close alongside it
type Limiter struct {
	ratelimit.Limiter

	sweeper *ratelimit.Sweeper
	client  redis.Client
}

// NewLimiter builds the redis limiter when an address is configured and the
// in-process fixed window otherwise. The fixed window is swept on a schedule.
func NewLimiter(ctx context.Context, cfg config.Limits) (*Limiter, error) {
	limits := ratelimit.Config{Window: cfg.Window, Capacity: cfg.Capacity}

	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrapf(err, "failed to reach redis at %s", cfg.RedisAddr)
		}
		limiter, err := ratelimit.NewRedis(&ratelimit.RedisConfig{Client: client, Limits: limits})
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		slog.InfoContext(ctx, "rate limiter ready", "backend", "redis", "addr", cfg.RedisAddr)
		return &Limiter{Limiter: limiter, client: client}, nil
	}

	limiter, err := ratelimit.NewFixedWindow(&ratelimit.FixedWindowConfig{Limits: limits})
	if err != nil {
		return nil, err
	}
	sweeper, err := ratelimit.NewSweeper(&ratelimit.SweeperConfig{Target: limiter, Interval: cfg.SweepInterval})
	if err != nil {
		return nil, err
	}
	sweeper.Start()
	slog.InfoContext(ctx, "rate limiter ready", "backend", "memory", "window", limits.Window, "capacity", limits.Capacity)
	return &Limiter{Limiter: limiter, sweeper: sweeper}, nil
}

// Close stops the sweeper and closes any redis connection
func (l *Limiter) Close(ctx context.Context) {
	if l.sweeper != nil {
		l.sweeper.Stop(ctx)
	}
	if l.client != nil {
		_ = l.client.Close()
	}
}

// GenerationConfig holds what NewGenerationService needs
type GenerationConfig struct {
	Config  *config.Config
	Limiter ratelimit.Limiter

	// Optional
	Metrics *observability.Metrics
}

// NewGenerationService wires the gemini provider, content client, request
// builder and manifest into a generation orchestrator
func NewGenerationService(ctx context.Context, cfg *GenerationConfig) (generation.Service, error) {
	if cfg == nil || cfg.Config == nil || cfg.Limiter == nil {
		return nil, errors.InvalidArgument("config and limiter are required")
	}

	provider, err := gemini.New(ctx, &gemini.Config{
		APIKey:     cfg.Config.Gemini.APIKey,
		Model:      cfg.Config.Gemini.Model,
		MaxRetries: cfg.Config.Gemini.MaxRetries,

		RequestsPerMinute: cfg.Config.Gemini.RequestsPerMinute,
	})
	if err != nil {
		return nil, err
	}

	client, err := content.NewClient(&content.Config{Provider: provider})
	if err != nil {
		return nil, err
	}

	avatars := manifest.Load(ctx, cfg.Config.Manifest)

	return generation.NewOrchestrator(&generation.Config{
		Limiter: cfg.Limiter,
		Content: client,
		Builder: content.NewBuilder(&content.BuilderConfig{
			Manifest:  avatars.Context(),
			Grounding: cfg.Config.Gemini.Grounding,
		}),
		Metrics: cfg.Metrics,
	})
}
