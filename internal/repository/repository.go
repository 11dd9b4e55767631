package repository

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

var ErrSaveNotFound = errors.New("no saved game found")

// GameRepository is the one-slot autosave store. Save overwrites the
// previous snapshot after every accepted move; Load restores it once
// at menu time; Delete clears it when a game finishes.
type GameRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	Load(ctx context.Context) (*entity.Game, error)
	Delete(ctx context.Context) error
}
