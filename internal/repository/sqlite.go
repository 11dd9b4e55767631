package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// The table holds at most one row: the autosave slot.
const autosaveSlot = 1

type sqliteGame struct {
	conn *sql.DB
}

// NewSQLiteRepository - stores the snapshot in a single-row table.
func NewSQLiteRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) Save(ctx context.Context, game *entity.Game) error {
	raw, err := json.Marshal(game.Snapshot())
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	query := `INSERT INTO snapshots (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`

	if _, err = that.conn.ExecContext(ctx, query, autosaveSlot, string(raw)); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

func (that *sqliteGame) Load(ctx context.Context) (*entity.Game, error) {
	var raw string

	query := `SELECT data FROM snapshots WHERE id = ?`

	err := that.conn.QueryRowContext(ctx, query, autosaveSlot).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to select snapshot: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrCorruptSave, err)
	}

	game, err := entity.RestoreGame(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, nil
}

func (that *sqliteGame) Delete(ctx context.Context) error {
	query := `DELETE FROM snapshots WHERE id = ?`

	if _, err := that.conn.ExecContext(ctx, query, autosaveSlot); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
