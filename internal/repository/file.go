package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

type fileGame struct {
	path string
}

// NewFileRepository - stores the snapshot as a JSON file at path.
func NewFileRepository(path string) GameRepository {
	return &fileGame{
		path: path,
	}
}

func (that *fileGame) Save(_ context.Context, game *entity.Game) error {
	raw, err := json.Marshal(game.Snapshot())
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = os.WriteFile(that.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}

	return nil
}

func (that *fileGame) Load(_ context.Context) (*entity.Game, error) {
	raw, err := os.ReadFile(that.path)

	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSaveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrCorruptSave, err)
	}

	game, err := entity.RestoreGame(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}

func (that *fileGame) Delete(_ context.Context) error {
	err := os.Remove(that.path)

	if errors.Is(err, os.ErrNotExist) {
		return ErrSaveNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to delete save file: %w", err)
	}

	return nil
}
