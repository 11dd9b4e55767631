package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) GameRepository {
	t.Helper()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "savegame.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	require.NoError(t, st.Init(context.Background()))

	return NewSQLiteRepository(st.Connection)
}

func TestSQLiteRepository_SaveLoad(t *testing.T) {
	t.Run("Round-trips a game through the snapshots table", func(t *testing.T) {
		// Given: a sqlite repository on a temp database
		repo := newSQLiteRepo(t)
		game := newTestGame(t)

		// When: saving and loading
		require.NoError(t, repo.Save(context.Background(), game))
		loaded, err := repo.Load(context.Background())

		// Then: the loaded game equals the saved one
		require.NoError(t, err)
		assert.Equal(t, game, loaded)
	})

	t.Run("Save upserts the single autosave row", func(t *testing.T) {
		// Given: a saved game
		repo := newSQLiteRepo(t)
		game := newTestGame(t)
		require.NoError(t, repo.Save(context.Background(), game))

		// When: the next move is saved
		require.NoError(t, game.Board.PlaceMark(2, 0, entity.PlayerX))
		require.NoError(t, repo.Save(context.Background(), game))

		// Then: the newest state wins
		loaded, err := repo.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, loaded.Board[2][0])
	})

	t.Run("Error when the slot is empty", func(t *testing.T) {
		// Given: a fresh repository
		repo := newSQLiteRepo(t)

		// When: loading
		_, err := repo.Load(context.Background())

		// Then: ErrSaveNotFound is returned
		require.ErrorIs(t, err, ErrSaveNotFound)
	})

	t.Run("Error on a corrupt stored snapshot", func(t *testing.T) {
		// Given: junk planted in the autosave row
		st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "savegame.db"))
		require.NoError(t, err)
		t.Cleanup(func() { require.NoError(t, st.Close()) })
		require.NoError(t, st.Init(context.Background()))

		_, err = st.Connection.ExecContext(context.Background(),
			`INSERT INTO snapshots (id, data) VALUES (1, '{broken')`)
		require.NoError(t, err)

		repo := NewSQLiteRepository(st.Connection)

		// When: loading
		_, err = repo.Load(context.Background())

		// Then: the save is corrupt
		require.ErrorIs(t, err, apperror.ErrCorruptSave)
	})

	t.Run("Delete clears the slot", func(t *testing.T) {
		// Given: a saved game
		repo := newSQLiteRepo(t)
		require.NoError(t, repo.Save(context.Background(), newTestGame(t)))

		// When: deleting
		require.NoError(t, repo.Delete(context.Background()))

		// Then: loading finds nothing
		_, err := repo.Load(context.Background())
		require.ErrorIs(t, err, ErrSaveNotFound)
	})
}
