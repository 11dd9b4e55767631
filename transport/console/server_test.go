package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepository is an in-memory stand-in for the save file.
type memRepository struct {
	snapshot *entity.Snapshot
}

func (that *memRepository) Save(_ context.Context, game *entity.Game) error {
	snapshot := game.Snapshot()
	that.snapshot = &snapshot
	return nil
}

func (that *memRepository) Load(_ context.Context) (*entity.Game, error) {
	if that.snapshot == nil {
		return nil, repository.ErrSaveNotFound
	}

	return entity.RestoreGame(*that.snapshot)
}

func (that *memRepository) Delete(_ context.Context) error {
	that.snapshot = nil
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runServer(t *testing.T, repo repository.GameRepository, input string) string {
	t.Helper()

	out := &bytes.Buffer{}
	server := New(testLogger(), repo, strings.NewReader(input), out)

	require.NoError(t, server.Start(context.Background()))

	return out.String()
}

func TestServer_Exit(t *testing.T) {
	// Given: a user going straight for exit
	output := runServer(t, &memRepository{}, "3\n")

	// Then: the menu greeted and said goodbye
	assert.Contains(t, output, "Welcome to Tic-Tac-Toe!")
	assert.Contains(t, output, "Exiting the game...")
}

func TestServer_MenuRejectsJunk(t *testing.T) {
	// Given: junk menu answers before a valid exit
	output := runServer(t, &memRepository{}, "9\nbanana\n\n3\n")

	// Then: the menu re-prompted until it got 1, 2 or 3
	assert.Equal(t, 4, strings.Count(output, "Enter 1, 2 or 3: "))
	assert.Contains(t, output, "Exiting the game...")
}

func TestServer_MultiplayerGame(t *testing.T) {
	// Given: a scripted two-human game where X takes the top row
	input := strings.Join([]string{
		"1", // new game
		"2", // multiplayer
		"0", "0", // X
		"1", "0", // O
		"0", "1", // X
		"1", "1", // O
		"0", "2", // X wins
		"no",
	}, "\n") + "\n"

	repo := &memRepository{}
	output := runServer(t, repo, input)

	// Then: the winner is announced and the session ends politely
	assert.Contains(t, output, "Player 1 wins!")
	assert.Contains(t, output, "Thanks for playing!")

	// Then: the finished game left no resumable save behind
	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrSaveNotFound)
}

func TestServer_OccupiedCellRetries(t *testing.T) {
	// Given: O aims at X's cell before correcting
	input := strings.Join([]string{
		"1", "2",
		"0", "0", // X takes (0,0)
		"0", "0", // O tries the same cell
		"1", "0", // O corrects
		"0", "1", // X
		"1", "1", // O
		"0", "2", // X wins
		"no",
	}, "\n") + "\n"

	output := runServer(t, &memRepository{}, input)

	// Then: the occupied cell was reported and play went on
	assert.Contains(t, output, "Error:")
	assert.Contains(t, output, "cell is already occupied")
	assert.Contains(t, output, "Player 1 wins!")
}

func TestServer_DrawGame(t *testing.T) {
	// Given: nine moves with no three-in-a-row
	input := strings.Join([]string{
		"1", "2",
		"0", "0", // X
		"0", "1", // O
		"0", "2", // X
		"1", "1", // O
		"1", "0", // X
		"1", "2", // O
		"2", "1", // X
		"2", "0", // O
		"2", "2", // X fills the board
		"no",
	}, "\n") + "\n"

	output := runServer(t, &memRepository{}, input)

	// Then: the draw is announced
	assert.Contains(t, output, "It's a draw!")
}

func TestServer_LoadGame(t *testing.T) {
	t.Run("No saved game falls back to the menu", func(t *testing.T) {
		// Given: load chosen with an empty repository
		output := runServer(t, &memRepository{}, "2\n3\n")

		// Then: the miss is explained and the menu returned
		assert.Contains(t, output, "No saved game found.")
		assert.Contains(t, output, "Exiting the game...")
	})

	t.Run("Finished save is blocked and menu returns", func(t *testing.T) {
		// Given: a snapshot holding a game X already won
		repo := &memRepository{snapshot: &entity.Snapshot{
			Board: [][]string{
				{entity.PlayerX, entity.PlayerX, entity.PlayerX},
				{entity.PlayerO, entity.PlayerO, ""},
				{"", "", ""},
			},
			CurrentPlayer: entity.PlayerO,
		}}

		// When: the user tries to load it
		output := runServer(t, repo, "2\n3\n")

		// Then: resuming is refused with a fallback hint
		assert.Contains(t, output, "Cannot load saved game: it is already finished!")
		assert.Contains(t, output, "start a new game instead")
	})

	t.Run("Unfinished save resumes with the right turn", func(t *testing.T) {
		// Given: a save where X holds (0,0) and (0,1) and O holds (1,0); X to move
		repo := &memRepository{snapshot: &entity.Snapshot{
			Board: [][]string{
				{entity.PlayerX, entity.PlayerX, ""},
				{entity.PlayerO, entity.PlayerO, ""},
				{"", "", ""},
			},
			CurrentPlayer: entity.PlayerX,
		}}

		// When: loading in multiplayer mode and X completes the row
		input := strings.Join([]string{
			"2", // load
			"2", // multiplayer
			"0", "2", // X wins immediately
			"no",
		}, "\n") + "\n"

		output := runServer(t, repo, input)

		// Then: the restored position finished in one move
		assert.Contains(t, output, "Loaded saved game successfully!")
		assert.Contains(t, output, "Player 1 wins!")
	})
}

func TestServer_PlayAgain(t *testing.T) {
	// Given: a quick win followed by "yes" and then an exit via EOF on
	// the second mode prompt being answered with a full second game
	input := strings.Join([]string{
		"1", "2",
		"0", "0",
		"1", "0",
		"0", "1",
		"1", "1",
		"0", "2", // X wins game one
		"yes",
		"1", "2",
		"0", "0",
		"1", "0",
		"0", "1",
		"1", "1",
		"0", "2", // X wins game two
		"no",
	}, "\n") + "\n"

	output := runServer(t, &memRepository{}, input)

	// Then: two games were played to completion
	assert.Equal(t, 2, strings.Count(output, "Player 1 wins!"))
	assert.Contains(t, output, "Thanks for playing!")
}
