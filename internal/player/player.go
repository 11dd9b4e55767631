package player

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Player is the capability every participant implements: given the
// current board, pick a cell. Legality of the chosen cell is not the
// player's concern; Board.PlaceMark rejects illegal moves and the
// controller re-solicits.
type Player interface {
	Name() string
	Mark() string
	IsHuman() bool
	ChooseMove(board *entity.Board) (entity.Move, error)
}
