package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const autosaveKey = "game:autosave"

type redisGame struct {
	client *redis.Client
}

// NewRedisRepository - stores the snapshot under a single redis key.
func NewRedisRepository(client *redis.Client) GameRepository {
	return &redisGame{
		client: client,
	}
}

func (that *redisGame) Save(ctx context.Context, game *entity.Game) error {
	raw, err := json.Marshal(game.Snapshot())
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, autosaveKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *redisGame) Load(ctx context.Context) (*entity.Game, error) {
	response, err := that.client.Get(ctx, autosaveKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSaveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrCorruptSave, err)
	}

	game, err := entity.RestoreGame(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}

func (that *redisGame) Delete(ctx context.Context) error {
	if err := that.client.Del(ctx, autosaveKey).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
