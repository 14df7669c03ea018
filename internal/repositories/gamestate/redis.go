package gamestate

import (
	"context"
	stderrors "errors"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	redisclient "github.com/KirkDiggler/alter-ego/internal/redis"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed game state repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if err := validateLoad(input); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, Key(input.DeviceID)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("no game state for device %s", input.DeviceID)
		}
		return nil, errors.Wrapf(err, "failed to get game state")
	}

	doc, err := decode(result)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Document: doc}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := encode(input.Document)
	if err != nil {
		return nil, err
	}

	// Player state never expires
	if err := r.client.Set(ctx, Key(input.DeviceID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save game state")
	}

	return &SaveOutput{}, nil
}
