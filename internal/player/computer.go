package player

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// ComputerPlayer selects uniformly at random among the empty cells.
// The random source is injected so tests can be deterministic.
type ComputerPlayer struct {
	name string
	mark string

	rng *rand.Rand
}

func NewComputerPlayer(name, mark string, rng *rand.Rand) *ComputerPlayer {
	return &ComputerPlayer{
		name: name,
		mark: mark,
		rng:  rng,
	}
}

func (that *ComputerPlayer) Name() string { return that.name }

func (that *ComputerPlayer) Mark() string { return that.mark }

func (that *ComputerPlayer) IsHuman() bool { return false }

func (that *ComputerPlayer) ChooseMove(board *entity.Board) (entity.Move, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Move{}, ErrNoAvailableMoves
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}
