package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Game is the state of one session: the grid, whose turn it is and
// the terminal status once a line is completed or the board fills up.
type Game struct {
	Board  Board  `json:"board"`
	Turn   string `json:"current_player"`
	Winner string `json:"winner,omitempty"`
	Status string `json:"status"`
}

// NewGame - returns a fresh game; X always moves first.
func NewGame() *Game {
	return &Game{
		Turn:   PlayerX,
		Status: StatusOngoing,
	}
}

// UpdateState - recomputes Winner and Status after a move. The turn
// marker is owned by the game controller and is not touched here.
func (that *Game) UpdateState() {
	switch winner := that.Board.Winner(); winner {
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
	default:
		if that.Board.IsFull() {
			that.Winner = PlayerTie
			that.Status = StatusFinished
			return
		}

		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// Snapshot is the persisted form of a game. The board is kept as a
// row-major slice-of-slices so a save with wrong dimensions fails
// validation instead of being silently clipped by the JSON decoder.
type Snapshot struct {
	Board         [][]string `json:"board"`
	CurrentPlayer string     `json:"current_player"`
	Winner        string     `json:"winner,omitempty"`
	Status        string     `json:"status,omitempty"`
}

// Snapshot - captures the exact cell contents and the active player.
func (that *Game) Snapshot() Snapshot {
	board := make([][]string, BoardSize)
	for row := range that.Board {
		board[row] = make([]string, BoardSize)
		copy(board[row], that.Board[row][:])
	}

	return Snapshot{
		Board:         board,
		CurrentPlayer: that.Turn,
		Winner:        that.Winner,
		Status:        that.Status,
	}
}

// RestoreGame - rebuilds a game from a snapshot. Dimensions, cell
// values and the active player marker are validated; the terminal
// status is recomputed from the grid rather than trusted from the
// stored fields.
func RestoreGame(snapshot Snapshot) (*Game, error) {
	if len(snapshot.Board) != BoardSize {
		return nil, fmt.Errorf("%w: board has %d rows", apperror.ErrCorruptSave, len(snapshot.Board))
	}

	game := &Game{}

	for row, cells := range snapshot.Board {
		if len(cells) != BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells", apperror.ErrCorruptSave, row, len(cells))
		}

		for col, cell := range cells {
			if cell != EmptyCell && cell != PlayerX && cell != PlayerO {
				return nil, fmt.Errorf("%w: unrecognized mark %q", apperror.ErrCorruptSave, cell)
			}

			game.Board[row][col] = cell
		}
	}

	if snapshot.CurrentPlayer != PlayerX && snapshot.CurrentPlayer != PlayerO {
		return nil, fmt.Errorf("%w: unrecognized current player %q", apperror.ErrCorruptSave, snapshot.CurrentPlayer)
	}

	game.Turn = snapshot.CurrentPlayer
	game.UpdateState()

	return game, nil
}

// ToggleMark - returns the opposing mark.
func ToggleMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}

	return PlayerX
}
