package bootstrap

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/alter-ego/internal/config"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
	"github.com/KirkDiggler/alter-ego/internal/redis"
	"github.com/KirkDiggler/alter-ego/internal/repositories/gamestate"
)

// Store is a game state repository and the func that releases it
type Store struct {
	gamestate.Repository

	closeFn func() error
}

// Close releases the backend
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// NewStore opens the configured game state backend
func NewStore(ctx context.Context, cfg config.Store, clk clock.Clock) (*Store, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		slog.DebugContext(ctx, "game store ready", "backend", cfg.Backend)
		return &Store{Repository: gamestate.NewInMemory()}, nil

	case config.StoreRedis:
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrapf(err, "failed to reach redis at %s", cfg.RedisAddr)
		}
		slog.DebugContext(ctx, "game store ready", "backend", cfg.Backend, "addr", cfg.RedisAddr)
		return &Store{Repository: gamestate.NewRedisRepository(client), closeFn: client.Close}, nil

	case config.StoreSQLite, "":
		repo, err := gamestate.OpenSQLite(ctx, cfg.Path, clk)
		if err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "game store ready", "backend", config.StoreSQLite, "path", cfg.Path)
		return &Store{Repository: repo, closeFn: repo.Close}, nil

	default:
		return nil, errors.InvalidArgumentf("unknown store backend %q", cfg.Backend)
	}
}
